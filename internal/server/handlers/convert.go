package handlers

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pharmacare-system/internal/billing"
	"pharmacare-system/internal/database/models"
)

// newID mirrors the timestamp identifiers the data set already carries.
func newID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func validGSTRate(rate int) bool {
	for _, r := range billing.GSTRates {
		if r == rate {
			return true
		}
	}
	return false
}

// invoiceToDomain rehydrates a stored invoice for rendering, export or a
// recompute pass. Items come back in entry order.
func invoiceToDomain(m *models.Invoice) (*billing.Invoice, error) {
	sort.Slice(m.Items, func(i, j int) bool { return m.Items[i].Position < m.Items[j].Position })

	inv := &billing.Invoice{
		ID:            m.ID,
		InvoiceNumber: m.InvoiceNumber,
		Date:          m.Date,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		CustomerGST:   m.CustomerGST,
		PaymentMode:   billing.PaymentMode(m.PaymentMode),
	}
	if m.Notes != nil {
		inv.Notes = *m.Notes
	}

	for _, it := range m.Items {
		rate, err := parseMoney(it.Rate)
		if err != nil {
			return nil, fmt.Errorf("invoice %s: bad rate %q: %w", m.InvoiceNumber, it.Rate, err)
		}
		discount, err := parseMoney(it.DiscountPercent)
		if err != nil {
			return nil, fmt.Errorf("invoice %s: bad discount %q: %w", m.InvoiceNumber, it.DiscountPercent, err)
		}
		tax, _ := parseMoney(it.TaxAmount)
		total, _ := parseMoney(it.TotalAmount)

		inv.Items = append(inv.Items, billing.InvoiceItem{
			Product: billing.Product{
				ID:          it.ProductID,
				Name:        it.Name,
				Category:    it.Category,
				Brand:       it.Brand,
				BatchNumber: it.BatchNumber,
				ExpiryDate:  it.ExpiryDate,
				PackSize:    it.PackSize,
				HSNCode:     it.HSNCode,
				Rate:        rate,
				GSTRate:     it.GSTRate,
			},
			Quantity:        it.Quantity,
			DiscountPercent: discount,
			TaxAmount:       tax,
			TotalAmount:     total,
		})
	}

	sub, _ := parseMoney(m.SubTotal)
	disc, _ := parseMoney(m.TotalDiscount)
	tax, _ := parseMoney(m.TotalTax)
	round, _ := parseMoney(m.RoundOff)
	grand, _ := parseMoney(m.GrandTotal)
	inv.SubTotal, inv.TotalDiscount, inv.TotalTax, inv.RoundOff, inv.GrandTotal = sub, disc, tax, round, grand

	return inv, nil
}

// invoiceToModel freezes a computed invoice for storage.
func invoiceToModel(inv *billing.Invoice) *models.Invoice {
	m := &models.Invoice{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Date:          inv.Date,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		CustomerGST:   inv.CustomerGST,
		SubTotal:      inv.SubTotal.StringFixed(2),
		TotalDiscount: inv.TotalDiscount.StringFixed(2),
		TotalTax:      inv.TotalTax.StringFixed(2),
		RoundOff:      inv.RoundOff.StringFixed(2),
		GrandTotal:    inv.GrandTotal.StringFixed(2),
		PaymentMode:   string(inv.PaymentMode),
	}
	if inv.Notes != "" {
		notes := inv.Notes
		m.Notes = &notes
	}

	for i, it := range inv.Items {
		m.Items = append(m.Items, models.InvoiceItem{
			InvoiceID:       inv.ID,
			Position:        i,
			ProductID:       it.ID,
			Name:            it.Name,
			Category:        it.Category,
			Brand:           it.Brand,
			BatchNumber:     it.BatchNumber,
			ExpiryDate:      it.ExpiryDate,
			PackSize:        it.PackSize,
			HSNCode:         it.HSNCode,
			Rate:            it.Rate.StringFixed(2),
			GSTRate:         it.GSTRate,
			Quantity:        it.Quantity,
			DiscountPercent: it.DiscountPercent.StringFixed(2),
			TaxAmount:       it.TaxAmount.StringFixed(2),
			TotalAmount:     it.TotalAmount.StringFixed(2),
		})
	}
	return m
}

func settingToDomain(m *models.Setting) billing.Settings {
	return billing.Settings{
		PharmacyName:   m.PharmacyName,
		Address:        m.Address,
		GSTIN:          m.GSTIN,
		DLNumber:       m.DLNumber,
		Phone:          m.Phone,
		Email:          m.Email,
		BankName:       m.BankName,
		AccountNumber:  m.AccountNumber,
		IFSC:           m.IFSC,
		Terms:          m.Terms,
		State:          m.State,
		SignatureImage: m.SignatureImage,
	}
}
