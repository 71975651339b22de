package services

import (
	"github.com/shopspring/decimal"
)

// DefaultVATRate is the Kenyan standard VAT rate applied at the till.
const DefaultVATRate = 0.16

type Line struct {
	UnitPrice float64
	Qty       int
}

type Totals struct {
	LineTotals []decimal.Decimal
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Taxable    decimal.Decimal
	VAT        decimal.Decimal
	Total      decimal.Decimal
}

// CalculateTotals prices a basket. The discount is clamped to [0, subtotal];
// VAT is charged on what remains and rounded to cents.
func CalculateTotals(lines []Line, discount float64, vatRate float64) Totals {
	totals := Totals{
		LineTotals: make([]decimal.Decimal, len(lines)),
		Subtotal:   decimal.Zero,
	}

	for i, line := range lines {
		lineTotal := decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(int64(line.Qty)))
		totals.LineTotals[i] = lineTotal
		totals.Subtotal = totals.Subtotal.Add(lineTotal)
	}

	d := decimal.NewFromFloat(discount)
	if d.IsNegative() {
		d = decimal.Zero
	}
	totals.Discount = decimal.Min(d, totals.Subtotal)

	totals.Taxable = totals.Subtotal.Sub(totals.Discount)
	totals.VAT = totals.Taxable.Mul(decimal.NewFromFloat(vatRate)).Round(2)
	totals.Total = totals.Taxable.Add(totals.VAT).Round(2)
	return totals
}
