package domain

import "strings"

// Base prices per service code. Codes outside the table are still billed
// at defaultBasePrice rather than rejected.
var basePrices = map[string]float64{
	"A": 100,
	"B": 200,
	"C": 300,
	"D": 400,
	"E": 500,
}

const defaultBasePrice = 50

// premiumToken is matched case-sensitively against the raw service
// entries; it is a discount modifier, not a priced service code.
const premiumToken = "Premium"

// PriceBreakdown is the ephemeral result of one pricing pass. It is
// recomputed from scratch on every batch run and never persisted.
type PriceBreakdown struct {
	TotalPrice float64 `json:"total_price"`
	Discount   float64 `json:"discount"`
	Tax        float64 `json:"tax"`
	FinalPrice float64 `json:"final_price"`
}

// CalculatePrice computes the price breakdown for a customer's service
// entries and age. Entries are trimmed of surrounding whitespace before
// the price lookup; duplicates are billed each time. Customers over 60
// get 10% off, a "Premium" entry adds another 5%, and a 20% tax is
// charged on the discounted amount. Pure function, safe for concurrent
// use.
func CalculatePrice(services []string, age int) PriceBreakdown {
	var total float64
	for _, svc := range services {
		if price, ok := basePrices[strings.TrimSpace(svc)]; ok {
			total += price
		} else {
			total += defaultBasePrice
		}
	}

	var discount float64
	if age > 60 {
		discount = 0.10 * total
	}
	for _, svc := range services {
		if svc == premiumToken {
			discount += 0.05 * total
			break
		}
	}

	tax := (total - discount) * 0.20

	return PriceBreakdown{
		TotalPrice: total,
		Discount:   discount,
		Tax:        tax,
		FinalPrice: total - discount + tax,
	}
}
