package services

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimal places, half away from zero. It is applied at
// every aggregation boundary (line, cart subtotal, grand total) rather than
// once at the end, so displayed lines always sum exactly to displayed totals.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// UnitPrice is the configured per-unit price: base plus the selected option
// deltas. Frozen into the cart line at creation time.
func UnitPrice(base decimal.Decimal, deltas []decimal.Decimal) decimal.Decimal {
	sum := base
	for _, d := range deltas {
		sum = sum.Add(d)
	}
	return Round2(sum)
}

func LineSubtotal(priceAtAdd decimal.Decimal, qty int) decimal.Decimal {
	return Round2(priceAtAdd.Mul(decimal.NewFromInt(int64(qty))))
}

// CartSubtotal sums already-rounded line subtotals.
func CartSubtotal(lines []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l)
	}
	return Round2(sum)
}

func GrandTotal(subtotal, deliveryFee decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Add(deliveryFee))
}
