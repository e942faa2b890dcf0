package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pharmacare-system/internal/billing"
	"pharmacare-system/internal/database/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Customer{},
		&models.Invoice{}, &models.InvoiceItem{}, &models.Setting{},
	))
	return db
}

func setupInvoiceRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	handler := NewInvoiceHandler(db, billing.NewPrefixSequence())

	router := gin.New()
	router.GET("/invoices", handler.List)
	router.POST("/invoices", handler.Create)
	router.GET("/invoices/next-number", handler.NextNumber)
	router.GET("/invoices/export/csv", handler.ExportCSV)
	router.GET("/invoices/:id", handler.Get)
	router.PUT("/invoices/:id", handler.Update)
	router.DELETE("/invoices/:id", handler.Delete)
	router.GET("/invoices/:id/pdf", handler.RenderPDF)
	return router, db
}

func invoicePayload() map[string]interface{} {
	return map[string]interface{}{
		"date":         "2024-06-01",
		"customerName": "Sharma Medical Store",
		"customerGst":  "27AAAPL1234C1ZV",
		"paymentMode":  "Cash",
		"items": []map[string]interface{}{
			{
				"name":        "Paracetamol 500mg",
				"batchNumber": "B123",
				"hsnCode":     "3004",
				"expiryDate":  "2025-12",
				"rate":        "25.50",
				"gstRate":     12,
				"quantity":    2,
			},
		},
	}
}

func doJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func createdInvoiceID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Data models.Invoice `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.ID)
	return resp.Data.ID
}

func TestCreateInvoiceComputesAndNumbers(t *testing.T) {
	router, db := setupInvoiceRouter(t)

	w := doJSON(router, "POST", "/invoices", invoicePayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved models.Invoice
	require.NoError(t, db.Preload("Items").First(&saved).Error)
	assert.Equal(t, "INV-001", saved.InvoiceNumber)
	assert.Equal(t, "51.00", saved.SubTotal)
	assert.Equal(t, "6.12", saved.TotalTax)
	assert.Equal(t, "57.00", saved.GrandTotal)
	assert.Equal(t, "-0.12", saved.RoundOff)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "57.12", saved.Items[0].TotalAmount)
	assert.Equal(t, "0.00", saved.Items[0].DiscountPercent)

	// the sequence advances for the next sale
	w = doJSON(router, "POST", "/invoices", invoicePayload())
	require.Equal(t, http.StatusCreated, w.Code)
	var count int64
	db.Model(&models.Invoice{}).Where("invoice_number = ?", "INV-002").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateInvoiceRejectsDuplicateNumber(t *testing.T) {
	router, _ := setupInvoiceRouter(t)

	payload := invoicePayload()
	payload["invoiceNumber"] = "INV-100"
	require.Equal(t, http.StatusCreated, doJSON(router, "POST", "/invoices", payload).Code)

	w := doJSON(router, "POST", "/invoices", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INV-100")
}

func TestCreateInvoiceValidation(t *testing.T) {
	router, _ := setupInvoiceRouter(t)

	noItems := invoicePayload()
	noItems["items"] = []map[string]interface{}{}
	assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/invoices", noItems).Code)

	noCustomer := invoicePayload()
	delete(noCustomer, "customerName")
	assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/invoices", noCustomer).Code)

	badMode := invoicePayload()
	badMode["paymentMode"] = "Cheque"
	assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/invoices", badMode).Code)

	badRate := invoicePayload()
	badRate["items"].([]map[string]interface{})[0]["rate"] = "abc"
	assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/invoices", badRate).Code)

	badGST := invoicePayload()
	badGST["items"].([]map[string]interface{})[0]["gstRate"] = 7
	assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/invoices", badGST).Code)
}

func TestNextNumberProposal(t *testing.T) {
	router, _ := setupInvoiceRouter(t)

	w := doJSON(router, "GET", "/invoices/next-number", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-001")

	require.Equal(t, http.StatusCreated, doJSON(router, "POST", "/invoices", invoicePayload()).Code)

	w = doJSON(router, "GET", "/invoices/next-number", nil)
	assert.Contains(t, w.Body.String(), "INV-002")
}

func TestUpdateInvoicePreservesNumber(t *testing.T) {
	router, db := setupInvoiceRouter(t)

	id := createdInvoiceID(t, doJSON(router, "POST", "/invoices", invoicePayload()))

	payload := invoicePayload()
	payload["invoiceNumber"] = "INV-999" // must be ignored
	payload["items"] = []map[string]interface{}{
		{"name": "Cough Syrup", "rate": "80", "gstRate": 5, "quantity": 3},
	}
	w := doJSON(router, "PUT", "/invoices/"+id, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var saved models.Invoice
	require.NoError(t, db.Preload("Items").First(&saved, "id = ?", id).Error)
	assert.Equal(t, "INV-001", saved.InvoiceNumber)
	assert.Equal(t, "240.00", saved.SubTotal)
	assert.Equal(t, "12.00", saved.TotalTax)
	assert.Equal(t, "252.00", saved.GrandTotal)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "Cough Syrup", saved.Items[0].Name)
}

func TestDeleteInvoiceRemovesItems(t *testing.T) {
	router, db := setupInvoiceRouter(t)

	id := createdInvoiceID(t, doJSON(router, "POST", "/invoices", invoicePayload()))
	require.Equal(t, http.StatusOK, doJSON(router, "DELETE", "/invoices/"+id, nil).Code)

	var invoiceCount, itemCount int64
	db.Model(&models.Invoice{}).Count(&invoiceCount)
	db.Model(&models.InvoiceItem{}).Count(&itemCount)
	assert.Zero(t, invoiceCount)
	assert.Zero(t, itemCount)
}

func TestRenderInvoicePDF(t *testing.T) {
	router, _ := setupInvoiceRouter(t)

	id := createdInvoiceID(t, doJSON(router, "POST", "/invoices", invoicePayload()))

	w := doJSON(router, "GET", "/invoices/"+id+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "INV-001.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doJSON(router, "GET", "/invoices/"+id+"/pdf?mode=view", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "inline"))
}

func TestExportInvoicesCSV(t *testing.T) {
	router, _ := setupInvoiceRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(router, "POST", "/invoices", invoicePayload()).Code)

	w := doJSON(router, "GET", "/invoices/export/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "Invoice No,Date,Customer Name"))
	assert.Contains(t, body, `INV-001,2024-06-01,"Sharma Medical Store"`)
	assert.Contains(t, body, "12%,6.12,57.12")
}
