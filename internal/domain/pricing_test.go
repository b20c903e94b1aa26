package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const priceEpsilon = 1e-9

func TestCalculatePrice(t *testing.T) {
	tests := []struct {
		name     string
		services []string
		age      int
		total    float64
		discount float64
		tax      float64
		final    float64
	}{
		{
			name:     "two known services, no discount",
			services: []string{"A", "B"},
			age:      30,
			total:    300,
			discount: 0,
			tax:      60,
			final:    360,
		},
		{
			name:     "premium token billed at default price, senior premium discount",
			services: []string{"A", "Premium"},
			age:      70,
			total:    150,
			discount: 22.5,
			tax:      25.5,
			final:    153,
		},
		{
			name:     "unknown code billed at default price",
			services: []string{"Z"},
			age:      30,
			total:    50,
			discount: 0,
			tax:      10,
			final:    60,
		},
		{
			name:     "duplicates billed twice",
			services: []string{"C", "C"},
			age:      40,
			total:    600,
			discount: 0,
			tax:      120,
			final:    720,
		},
		{
			name:     "age 60 is not a senior",
			services: []string{"E"},
			age:      60,
			total:    500,
			discount: 0,
			tax:      100,
			final:    600,
		},
		{
			name:     "age 61 gets the senior discount",
			services: []string{"E"},
			age:      61,
			total:    500,
			discount: 50,
			tax:      90,
			final:    540,
		},
		{
			name:     "premium alone gives 5 percent",
			services: []string{"B", "Premium"},
			age:      25,
			total:    250,
			discount: 12.5,
			tax:      47.5,
			final:    285,
		},
		{
			name:     "whitespace around a code is trimmed for the lookup",
			services: []string{"A", " B"},
			age:      30,
			total:    300,
			discount: 0,
			tax:      60,
			final:    360,
		},
		{
			name:     "empty service list yields zero",
			services: []string{},
			age:      80,
			total:    0,
			discount: 0,
			tax:      0,
			final:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePrice(tt.services, tt.age)
			assert.InDelta(t, tt.total, got.TotalPrice, priceEpsilon)
			assert.InDelta(t, tt.discount, got.Discount, priceEpsilon)
			assert.InDelta(t, tt.tax, got.Tax, priceEpsilon)
			assert.InDelta(t, tt.final, got.FinalPrice, priceEpsilon)
		})
	}
}

func TestCalculatePriceInvariants(t *testing.T) {
	serviceLists := [][]string{
		{"A"}, {"A", "B", "C"}, {"D", "E", "X"}, {"B", "Premium"}, {"Premium"},
	}
	ages := []int{1, 30, 60, 61, 99}

	for _, services := range serviceLists {
		for _, age := range ages {
			got := CalculatePrice(services, age)

			// tax is always 20% of the discounted amount
			require.InDelta(t, 0.20*(got.TotalPrice-got.Discount), got.Tax, priceEpsilon)
			require.InDelta(t, got.TotalPrice-got.Discount+got.Tax, got.FinalPrice, priceEpsilon)

			premium := false
			for _, s := range services {
				if s == "Premium" {
					premium = true
				}
			}
			var want float64
			if age > 60 {
				want += 0.10 * got.TotalPrice
			}
			if premium {
				want += 0.05 * got.TotalPrice
			}
			require.InDelta(t, want, got.Discount, priceEpsilon)
		}
	}
}

func TestCalculatePricePremiumIsCaseSensitive(t *testing.T) {
	got := CalculatePrice([]string{"A", "premium"}, 30)
	assert.InDelta(t, 0.0, got.Discount, priceEpsilon)
	// still billed as an unknown code
	assert.InDelta(t, 150.0, got.TotalPrice, priceEpsilon)
}
