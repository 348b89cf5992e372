package utils_test

import (
	"testing"

	"bitbucket.org/mmdatafocus/quotes_backend/utils"
	"github.com/shopspring/decimal"
)

func TestCalculateLineAmounts(t *testing.T) {
	cases := []struct {
		name        string
		quantity    string
		unitPrice   string
		supplyPrice string
		tax         string
	}{
		{"two at 1000", "2", "1000", "2000", "200"},
		{"one at 333 rounds down", "1", "333", "333", "33"},
		{"one at 335 rounds up", "1", "335", "335", "34"},
		{"fractional quantity", "2.5", "1000", "2500", "250"},
		{"zero quantity", "0", "1000", "0", "0"},
		{"negative quantity coerced", "-3", "1000", "0", "0"},
		{"negative unit price coerced", "2", "-500", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quantity, _ := decimal.NewFromString(tc.quantity)
			unitPrice, _ := decimal.NewFromString(tc.unitPrice)

			supplyPrice, tax := utils.CalculateLineAmounts(quantity, unitPrice)

			if supplyPrice.String() != tc.supplyPrice {
				t.Errorf("supply price = %s, want %s", supplyPrice, tc.supplyPrice)
			}
			if tax.String() != tc.tax {
				t.Errorf("tax = %s, want %s", tax, tc.tax)
			}
		})
	}
}

func TestCalculateLineAmountsTaxIsRoundedSupplyPriceIsNot(t *testing.T) {
	// 1.5 x 333 = 499.5: the supply price keeps the fraction, only the tax
	// is rounded to whole units.
	supplyPrice, tax := utils.CalculateLineAmounts(decimal.NewFromFloat(1.5), decimal.NewFromInt(333))

	if supplyPrice.String() != "499.5" {
		t.Errorf("supply price = %s, want 499.5", supplyPrice)
	}
	// 499.5 * 0.1 = 49.95 -> 50
	if tax.String() != "50" {
		t.Errorf("tax = %s, want 50", tax)
	}
}
