package service

import (
	"github.com/shopspring/decimal"
)

const MaxDiscountPercent = 15

// GSTRate is the fixed goods and services tax applied to the subtotal.
var GSTRate = decimal.RequireFromString("0.09")

var hundred = decimal.NewFromInt(100)

// Totals is the money breakdown of an order. Every field is rounded to 2 places.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	GST             decimal.Decimal `json:"gst"`
	BeforeDiscount  decimal.Decimal `json:"before_discount"`
	DiscountPercent int32           `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
}

// ComputeTotals sums line prices (already quantity-scaled), adds GST, then
// applies the percentage discount to the taxed amount.
//
// Total is subtotal x 1.09 x (1 - discount/100) rounded once, half away from
// zero, to 2 places. GST and BeforeDiscount are rounded for display, and
// DiscountAmount is BeforeDiscount - Total so the printed lines add up.
func ComputeTotals(linePrices []decimal.Decimal, discountPercent int32) (Totals, error) {
	if discountPercent < 0 || discountPercent > MaxDiscountPercent {
		return Totals{}, ErrInvalidDiscount
	}

	subtotal := decimal.Zero
	for _, p := range linePrices {
		subtotal = subtotal.Add(p)
	}

	taxed := subtotal.Mul(decimal.NewFromInt(1).Add(GSTRate))
	keep := hundred.Sub(decimal.NewFromInt32(discountPercent)).Div(hundred)
	total := taxed.Mul(keep).Round(2)

	before := taxed.Round(2)
	return Totals{
		Subtotal:        subtotal.Round(2),
		GST:             before.Sub(subtotal.Round(2)),
		BeforeDiscount:  before,
		DiscountPercent: discountPercent,
		DiscountAmount:  before.Sub(total),
		Total:           total,
	}, nil
}
