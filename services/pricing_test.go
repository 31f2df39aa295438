package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"-1.005", "-1.01"},
		{"2.675", "2.68"},
		{"10.994", "10.99"},
		{"10.995", "11.00"},
		{"0.1", "0.10"},
		{"100", "100.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Round2(d(tc.in)).StringFixed(2), "round2(%s)", tc.in)
	}
}

func TestRound2Idempotent(t *testing.T) {
	for _, s := range []string{"1.005", "99.999", "-3.335", "0.01", "123.456789"} {
		once := Round2(d(s))
		assert.True(t, Round2(once).Equal(once), "round2(round2(%s))", s)
	}
}

func TestUnitPriceWithAddon(t *testing.T) {
	// base 100.00, optional addon +25.50
	unit := UnitPrice(d("100.00"), []decimal.Decimal{d("25.50")})
	assert.Equal(t, "125.50", unit.StringFixed(2))

	assert.Equal(t, "376.50", LineSubtotal(unit, 3).StringFixed(2))
}

func TestUnitPriceNoSelections(t *testing.T) {
	assert.Equal(t, "89.90", UnitPrice(d("89.90"), nil).StringFixed(2))
}

// Summing already-rounded line subtotals must equal the rounded sum of the
// unrounded inputs within 0.01 — the binary-float 0.1+0.2 drift must not exist.
func TestCartSubtotalNoDrift(t *testing.T) {
	lines := make([]decimal.Decimal, 0, 1000)
	raw := decimal.Zero
	for i := 0; i < 1000; i++ {
		unit := UnitPrice(d("0.10"), []decimal.Decimal{d("0.20")})
		sub := LineSubtotal(unit, 1)
		lines = append(lines, sub)
		raw = raw.Add(d("0.10").Add(d("0.20")))
	}

	got := CartSubtotal(lines)
	assert.Equal(t, "300.00", got.StringFixed(2))
	assert.True(t, got.Sub(Round2(raw)).Abs().LessThanOrEqual(d("0.01")))
}

func TestGrandTotal(t *testing.T) {
	assert.Equal(t, "396.50", GrandTotal(d("376.50"), d("20.00")).StringFixed(2))
	// empty cart carries no fee at the service layer; the helper itself is dumb
	assert.Equal(t, "0.00", GrandTotal(decimal.Zero, decimal.Zero).StringFixed(2))
}
