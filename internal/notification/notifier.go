package notification

import (
	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

// Notifier is the batch processor's view of the notification subsystem:
// produce a debit-note document for a customer and dispatch it by email.
type Notifier interface {
	GenerateDebitNote(customer domain.Customer, status domain.Status, prices domain.PriceBreakdown) (string, error)
	Send(to, subject, body, attachment string) error
}

// DebitNoteNotifier combines the PDF generator and a mailer.
type DebitNoteNotifier struct {
	pdf    *PDFGenerator
	mailer Mailer
	log    *logger.Logger
}

// NewDebitNoteNotifier creates the production notifier.
func NewDebitNoteNotifier(pdf *PDFGenerator, mailer Mailer, log *logger.Logger) *DebitNoteNotifier {
	return &DebitNoteNotifier{
		pdf:    pdf,
		mailer: mailer,
		log:    log,
	}
}

// GenerateDebitNote renders the customer's debit note and returns the
// path of the generated PDF.
func (n *DebitNoteNotifier) GenerateDebitNote(customer domain.Customer, status domain.Status, prices domain.PriceBreakdown) (string, error) {
	return n.pdf.Generate(customer, status, prices)
}

// Send dispatches the email through the configured mailer.
func (n *DebitNoteNotifier) Send(to, subject, body, attachment string) error {
	return n.mailer.Send(to, subject, body, attachment)
}
