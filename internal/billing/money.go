package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineAmounts holds the derived monetary values of a single line item.
type LineAmounts struct {
	Base     decimal.Decimal // rate * quantity
	Discount decimal.Decimal
	Taxable  decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeLine derives the monetary values of one line. No validation is
// performed here; callers needing quantity > 0 must enforce it first.
func ComputeLine(rate decimal.Decimal, quantity int, discountPercent decimal.Decimal, gstRate int) LineAmounts {
	base := rate.Mul(decimal.NewFromInt(int64(quantity)))
	discount := base.Mul(discountPercent).Div(hundred)
	taxable := base.Sub(discount)
	tax := taxable.Mul(decimal.NewFromInt(int64(gstRate))).Div(hundred)
	return LineAmounts{
		Base:     base,
		Discount: discount,
		Taxable:  taxable,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}
}

// Totals are the invoice-level aggregates over a finalized item list.
type Totals struct {
	SubTotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	NetTotal      decimal.Decimal
	RoundOff      decimal.Decimal // signed, may be negative
	GrandTotal    decimal.Decimal // whole currency units
}

// ComputeTotals aggregates the lines. The sub-total is built from raw
// rate * quantity, not from the already-discounted per-line base. The grand
// total rounds the net total to the nearest whole unit, ties away from zero.
func ComputeTotals(items []InvoiceItem) Totals {
	subTotal := decimal.Zero
	totalTax := decimal.Zero
	for _, it := range items {
		subTotal = subTotal.Add(it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity))))
		totalTax = totalTax.Add(it.TaxAmount)
	}
	netTotal := subTotal.Add(totalTax)
	grandTotal := netTotal.Round(0)
	return Totals{
		SubTotal:      subTotal,
		TotalDiscount: decimal.Zero,
		TotalTax:      totalTax,
		NetTotal:      netTotal,
		RoundOff:      grandTotal.Sub(netTotal),
		GrandTotal:    grandTotal,
	}
}
