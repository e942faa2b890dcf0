package billing

import (
	"strconv"
	"strings"
)

var csvHeader = "Invoice No,Date,Customer Name,Customer GST,Payment Mode,Item Name,Batch,HSN,Expiry,Quantity,Rate,GST Rate,Tax Amount,Total Amount"

// ExportCSV flattens invoices into one row per line item. Name fields are
// double-quoted since they routinely contain commas.
func ExportCSV(invoices []Invoice) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, inv := range invoices {
		for _, item := range inv.Items {
			row := []string{
				inv.InvoiceNumber,
				inv.Date,
				`"` + inv.CustomerName + `"`,
				inv.CustomerGST,
				string(inv.PaymentMode),
				`"` + item.Name + `"`,
				item.BatchNumber,
				item.HSNCode,
				item.ExpiryDate,
				strconv.Itoa(item.Quantity),
				item.Rate.String(),
				strconv.Itoa(item.GSTRate) + "%",
				item.TaxAmount.StringFixed(2),
				item.TotalAmount.StringFixed(2),
			}
			b.WriteString(strings.Join(row, ","))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
