package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pharmacare-system/internal/database/models"
)

type BackupHandler struct {
	db *gorm.DB
}

func NewBackupHandler(db *gorm.DB) *BackupHandler {
	return &BackupHandler{db: db}
}

// Get dumps every collection in one JSON document for offline backup.
func (h *BackupHandler) Get(c *gin.Context) {
	var products []models.Product
	var customers []models.Customer
	var invoices []models.Invoice

	if err := h.db.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to read products"))
		return
	}
	if err := h.db.Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to read customers"))
		return
	}
	if err := h.db.Preload("Items").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to read invoices"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"customers": customers,
		"invoices":  invoices,
		"settings":  loadSettings(h.db),
	})
}
