package billing

import (
	"github.com/shopspring/decimal"
)

// GSTRates are the tax slabs a product can carry.
var GSTRates = []int{0, 5, 12, 18, 28}

// PaymentMode tags how an invoice was settled.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "Cash"
	PaymentUPI    PaymentMode = "UPI"
	PaymentCard   PaymentMode = "Card"
	PaymentCredit PaymentMode = "Credit"
)

// Product is a catalog entry. Rate is the selling price excluding tax.
type Product struct {
	ID          string
	Name        string
	Category    string
	Brand       string
	BatchNumber string
	ExpiryDate  string
	PackSize    string
	HSNCode     string
	Rate        decimal.Decimal
	GSTRate     int
	Stock       int
	MinStock    int
}

type Customer struct {
	ID      string
	Name    string
	Mobile  string
	Email   string
	Address string
	GSTIN   string // empty for B2C sales
	State   string
}

// InvoiceItem is a snapshot of the product at invoice time plus the
// transaction fields. Catalog edits never touch saved invoices.
type InvoiceItem struct {
	Product
	Quantity        int
	DiscountPercent decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
}

// Recalculate refreshes the derived fields from rate, quantity and GST rate.
// Lines are independent; recalculating one never touches its siblings.
// DiscountPercent is carried on the model but not applied to the amounts.
func (it *InvoiceItem) Recalculate() {
	amounts := ComputeLine(it.Rate, it.Quantity, decimal.Zero, it.GSTRate)
	it.TaxAmount = amounts.Tax
	it.TotalAmount = amounts.Total
}

type Invoice struct {
	ID            string
	InvoiceNumber string
	Date          string
	CustomerID    string
	CustomerName  string
	CustomerGST   string
	Items         []InvoiceItem
	SubTotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	RoundOff      decimal.Decimal
	GrandTotal    decimal.Decimal
	PaymentMode   PaymentMode
	Notes         string
}

// NewInvoice assembles an invoice from a customer snapshot and its line
// items, running a full computation pass. The invoice number is assigned
// once at creation and preserved on later edits.
func NewInvoice(number, date string, customer Customer, items []InvoiceItem, mode PaymentMode, notes string) *Invoice {
	inv := &Invoice{
		InvoiceNumber: number,
		Date:          date,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerGST:   customer.GSTIN,
		Items:         items,
		PaymentMode:   mode,
		Notes:         notes,
	}
	inv.Recalculate()
	return inv
}

// Recalculate recomputes every line and then the invoice aggregates. The
// aggregates are authoritative: the stored per-item totals are informational
// and a caller-mutated item total never leaks into the grand total without
// this pass.
func (inv *Invoice) Recalculate() {
	for i := range inv.Items {
		inv.Items[i].Recalculate()
	}
	t := ComputeTotals(inv.Items)
	inv.SubTotal = t.SubTotal
	inv.TotalDiscount = t.TotalDiscount
	inv.TotalTax = t.TotalTax
	inv.RoundOff = t.RoundOff
	inv.GrandTotal = t.GrandTotal
}

// TotalQuantity sums the line quantities, as printed in the summary box.
func (inv *Invoice) TotalQuantity() int {
	total := 0
	for _, it := range inv.Items {
		total += it.Quantity
	}
	return total
}

// Settings is the issuer-side data consumed by the renderer. It is passed
// explicitly into every render call, never read from ambient state.
type Settings struct {
	PharmacyName   string
	Address        string
	GSTIN          string
	DLNumber       string
	Phone          string
	Email          string
	BankName       string
	AccountNumber  string
	IFSC           string
	Terms          string
	State          string
	SignatureImage string // base64 PNG, optionally with a data-URI prefix
}

// DefaultSettings is substituted when the settings store has no record.
func DefaultSettings() Settings {
	return Settings{
		PharmacyName:  "MediCare Plus Pharmacy",
		Address:       "Shop 12, Wellness Plaza, Andheri East, Mumbai 400069",
		GSTIN:         "27ABCDE1234F1Z5",
		DLNumber:      "MH-MZ1-123456",
		Phone:         "9876543210",
		Email:         "billing@medicareplus.com",
		BankName:      "HDFC Bank",
		AccountNumber: "50100123456789",
		IFSC:          "HDFC0001234",
		Terms:         "Goods once sold will not be taken back. Keep in cool dry place.",
		State:         "Maharashtra",
	}
}
