package utils

import (
	"github.com/shopspring/decimal"
)

// VAT rate printed on the quote. Whole-won currency, no subunits.
var QuoteTaxRate = decimal.NewFromFloat(0.1)

// CalculateLineAmounts derives a line's supply price and tax from quantity and
// unit rate. Negative inputs are coerced to zero instead of rejected; required
// field checks belong to the form layer, not here. The supply price is exact
// (no rounding), the tax is rounded half-up to whole currency units.
func CalculateLineAmounts(quantity decimal.Decimal, unitPrice decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if quantity.IsNegative() {
		quantity = decimal.Zero
	}
	if unitPrice.IsNegative() {
		unitPrice = decimal.Zero
	}

	supplyPrice := quantity.Mul(unitPrice)
	tax := supplyPrice.Mul(QuoteTaxRate).Round(0)

	return supplyPrice, tax
}
