package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pharmacare-system/internal/database/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Summary reports today's sales, overall counts and the low-stock alarm.
func (h *DashboardHandler) Summary(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var todayInvoices []models.Invoice
	if err := h.db.Where("date = ?", today).Find(&todayInvoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to read invoices"))
		return
	}

	todaySales := decimal.Zero
	for _, inv := range todayInvoices {
		total, err := parseMoney(inv.GrandTotal)
		if err != nil {
			continue
		}
		todaySales = todaySales.Add(total)
	}

	var invoiceCount, customerCount, lowStockCount int64
	h.db.Model(&models.Invoice{}).Count(&invoiceCount)
	h.db.Model(&models.Customer{}).Count(&customerCount)
	h.db.Model(&models.Product{}).Where("stock <= min_stock").Count(&lowStockCount)

	c.JSON(http.StatusOK, successResponse("Dashboard summary", gin.H{
		"todaySales":    todaySales.StringFixed(2),
		"todayInvoices": len(todayInvoices),
		"invoiceCount":  invoiceCount,
		"customerCount": customerCount,
		"lowStockCount": lowStockCount,
	}))
}
