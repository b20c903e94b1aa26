package notification

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

// PDFGenerator renders debit-note PDFs from the text template.
type PDFGenerator struct {
	templatePath string
	outputDir    string
	log          *logger.Logger
}

// NewPDFGenerator creates a PDF generator writing files into outputDir.
func NewPDFGenerator(templatePath, outputDir string, log *logger.Logger) *PDFGenerator {
	return &PDFGenerator{
		templatePath: templatePath,
		outputDir:    outputDir,
		log:          log,
	}
}

// Generate renders the debit note for one customer and returns the path
// of the produced PDF file.
func (g *PDFGenerator) Generate(customer domain.Customer, status domain.Status, prices domain.PriceBreakdown) (string, error) {
	context := map[string]any{
		"user": map[string]any{
			"id":              customer.ID,
			"name":            customer.Name,
			"email":           customer.Email,
			"address":         customer.Address,
			"phone":           customer.Phone,
			"services":        customer.ServiceList(),
			"expiration_date": customer.ExpirationDate,
			"status":          string(status),
		},
		"prices": map[string]any{
			"total_price": prices.TotalPrice,
			"discount":    prices.Discount,
			"tax":         prices.Tax,
			"final_price": prices.FinalPrice,
		},
	}

	content, err := RenderTemplate(g.templatePath, context)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("notification: failed to create output dir: %w", err)
	}

	filename := fmt.Sprintf("%d_nota_debito.pdf", customer.ID)
	path := filepath.Join(g.outputDir, filename)

	if err := writePDF(content, path); err != nil {
		// do not leave a half-written file behind
		if removeErr := os.Remove(path); removeErr != nil && !os.IsNotExist(removeErr) {
			g.log.Warnw("Failed to remove partial PDF", "error", removeErr, "path", path)
		}
		g.log.Errorw("Failed to render debit note PDF", "error", err, "customerID", customer.ID)
		return "", fmt.Errorf("notification: failed to render PDF: %w", err)
	}

	g.log.Infow("Debit note PDF generated", "path", path, "customerID", customer.ID)
	return path, nil
}

func writePDF(content, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Nota de Débito", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	translate := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(content, "\n") {
		pdf.MultiCell(190, 6, translate(line), "", "L", false)
	}

	return pdf.OutputFileAndClose(path)
}
