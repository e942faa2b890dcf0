package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pharmacare-system/internal/billing"
	"pharmacare-system/internal/database/models"
	"pharmacare-system/internal/render"
)

type InvoiceHandler struct {
	db  *gorm.DB
	seq billing.SequenceStrategy
}

func NewInvoiceHandler(db *gorm.DB, seq billing.SequenceStrategy) *InvoiceHandler {
	return &InvoiceHandler{db: db, seq: seq}
}

type InvoiceItemRequest struct {
	ProductID   string `json:"productId"`
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	BatchNumber string `json:"batchNumber"`
	ExpiryDate  string `json:"expiryDate"`
	PackSize    string `json:"packSize"`
	HSNCode     string `json:"hsnCode"`
	Rate        string `json:"rate" binding:"required"`
	GSTRate     int    `json:"gstRate"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type InvoiceRequest struct {
	InvoiceNumber string               `json:"invoiceNumber"` // assigned by the sequencer when empty
	Date          string               `json:"date" binding:"required"`
	CustomerID    string               `json:"customerId"`
	CustomerName  string               `json:"customerName" binding:"required"`
	CustomerGST   string               `json:"customerGst"`
	PaymentMode   string               `json:"paymentMode" binding:"required,oneof=Cash UPI Card Credit"`
	Notes         string               `json:"notes"`
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var invoices []models.Invoice
	if err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).Order("invoice_number desc").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list invoices"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Invoices retrieved successfully", invoices))
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, successResponse("Invoice retrieved successfully", invoice))
}

// NextNumber proposes the next invoice number from the numbers issued so
// far. It is a proposal only; the save path re-checks for collisions.
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	numbers, err := h.existingNumbers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to read invoice numbers"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Next invoice number", gin.H{
		"invoiceNumber": h.seq.Next(numbers),
	}))
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	items, err := buildItems(req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	number := req.InvoiceNumber
	if number == "" {
		numbers, err := h.existingNumbers()
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse("Failed to read invoice numbers"))
			return
		}
		number = h.seq.Next(numbers)
	}

	var count int64
	h.db.Model(&models.Invoice{}).Where("invoice_number = ?", number).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, errorResponse(fmt.Sprintf("Invoice number %s already exists", number)))
		return
	}

	customer := billing.Customer{
		ID:    req.CustomerID,
		Name:  req.CustomerName,
		GSTIN: req.CustomerGST,
	}
	inv := billing.NewInvoice(number, req.Date, customer, items, billing.PaymentMode(req.PaymentMode), req.Notes)
	inv.ID = newID()

	model := invoiceToModel(inv)
	if err := h.db.Create(model).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save invoice"))
		return
	}

	c.JSON(http.StatusCreated, successResponse("Invoice created successfully", model))
}

// Update replaces the item list and runs a fresh computation pass. The
// invoice number assigned at creation is preserved.
func (h *InvoiceHandler) Update(c *gin.Context) {
	existing, ok := h.load(c)
	if !ok {
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	items, err := buildItems(req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	customer := billing.Customer{
		ID:    req.CustomerID,
		Name:  req.CustomerName,
		GSTIN: req.CustomerGST,
	}
	inv := billing.NewInvoice(existing.InvoiceNumber, req.Date, customer, items, billing.PaymentMode(req.PaymentMode), req.Notes)
	inv.ID = existing.ID

	model := invoiceToModel(inv)
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", existing.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		newItems := model.Items
		model.Items = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return tx.Create(&newItems).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save invoice"))
		return
	}

	updated, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, successResponse("Invoice updated successfully", updated))
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoice, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.db.Select("Items").Delete(invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete invoice"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Invoice deleted successfully", nil))
}

// RenderPDF produces the printable document. mode=view returns it inline
// for preview; anything else is an attachment download named after the
// invoice number.
func (h *InvoiceHandler) RenderPDF(c *gin.Context) {
	invoice, ok := h.load(c)
	if !ok {
		return
	}

	inv, err := invoiceToDomain(invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse(err.Error()))
		return
	}

	mode := render.ModeDownload
	if c.Query("mode") == "view" {
		mode = render.ModePreview
	}

	doc, err := render.Generate(inv, loadSettings(h.db), mode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to render invoice"))
		return
	}

	disposition := "attachment"
	if doc.Inline {
		disposition = "inline"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// ExportCSV flattens every invoice into one row per line item.
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	var invoices []models.Invoice
	if err := h.db.Preload("Items").Order("invoice_number asc").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list invoices"))
		return
	}

	domain := make([]billing.Invoice, 0, len(invoices))
	for i := range invoices {
		inv, err := invoiceToDomain(&invoices[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse(err.Error()))
			return
		}
		domain = append(domain, *inv)
	}

	c.Header("Content-Disposition", `attachment; filename="invoices.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(billing.ExportCSV(domain)))
}

func (h *InvoiceHandler) load(c *gin.Context) (*models.Invoice, bool) {
	var invoice models.Invoice
	err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).First(&invoice, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Invoice not found"))
		return nil, false
	}
	return &invoice, true
}

func (h *InvoiceHandler) existingNumbers() ([]string, error) {
	var numbers []string
	err := h.db.Model(&models.Invoice{}).Pluck("invoice_number", &numbers).Error
	return numbers, err
}

func buildItems(reqs []InvoiceItemRequest) ([]billing.InvoiceItem, error) {
	items := make([]billing.InvoiceItem, 0, len(reqs))
	for i, r := range reqs {
		rate, err := parseMoney(r.Rate)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid rate %q", i+1, r.Rate)
		}
		if !validGSTRate(r.GSTRate) {
			return nil, fmt.Errorf("item %d: GST rate must be one of 0, 5, 12, 18, 28", i+1)
		}
		items = append(items, billing.InvoiceItem{
			Product: billing.Product{
				ID:          r.ProductID,
				Name:        r.Name,
				Category:    r.Category,
				Brand:       r.Brand,
				BatchNumber: r.BatchNumber,
				ExpiryDate:  r.ExpiryDate,
				PackSize:    r.PackSize,
				HSNCode:     r.HSNCode,
				Rate:        rate,
				GSTRate:     r.GSTRate,
			},
			Quantity: r.Quantity,
		})
	}
	return items, nil
}
