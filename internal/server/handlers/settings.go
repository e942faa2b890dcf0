package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pharmacare-system/internal/billing"
	"pharmacare-system/internal/database/models"
)

// The issuer record is a single row.
const settingsRowID = 1

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

type SettingsRequest struct {
	PharmacyName   string `json:"pharmacyName" binding:"required"`
	Address        string `json:"address"`
	GSTIN          string `json:"gstin"`
	DLNumber       string `json:"dlNumber"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	BankName       string `json:"bankName"`
	AccountNumber  string `json:"accountNumber"`
	IFSC           string `json:"ifsc"`
	Terms          string `json:"terms"`
	State          string `json:"state"`
	SignatureImage string `json:"signatureImage"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse("Settings retrieved successfully", loadSettings(h.db)))
}

func (h *SettingsHandler) Put(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	setting := models.Setting{
		ID:             settingsRowID,
		PharmacyName:   req.PharmacyName,
		Address:        req.Address,
		GSTIN:          req.GSTIN,
		DLNumber:       req.DLNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		IFSC:           req.IFSC,
		Terms:          req.Terms,
		State:          req.State,
		SignatureImage: req.SignatureImage,
	}
	if err := h.db.Save(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save settings"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Settings saved successfully", settingToDomain(&setting)))
}

// loadSettings falls back to the documented default issuer record when
// nothing has been stored yet; the renderer is never invoked without one.
func loadSettings(db *gorm.DB) billing.Settings {
	var setting models.Setting
	if err := db.First(&setting, settingsRowID).Error; err != nil {
		return billing.DefaultSettings()
	}
	return settingToDomain(&setting)
}
