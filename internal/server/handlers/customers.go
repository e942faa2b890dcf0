package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pharmacare-system/internal/database/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin"`
	State   string `json:"state"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	var customers []models.Customer
	if err := h.db.Order("name asc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list customers"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Customers retrieved successfully", customers))
}

func (h *CustomerHandler) Get(c *gin.Context) {
	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Customer not found"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Customer retrieved successfully", customer))
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	customer := models.Customer{
		ID:      newID(),
		Name:    req.Name,
		Mobile:  req.Mobile,
		Email:   req.Email,
		Address: req.Address,
		GSTIN:   req.GSTIN,
		State:   req.State,
	}
	if err := h.db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save customer"))
		return
	}
	c.JSON(http.StatusCreated, successResponse("Customer created successfully", customer))
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Customer not found"))
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	customer.Name = req.Name
	customer.Mobile = req.Mobile
	customer.Email = req.Email
	customer.Address = req.Address
	customer.GSTIN = req.GSTIN
	customer.State = req.State

	if err := h.db.Save(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save customer"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Customer updated successfully", customer))
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Customer{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete customer"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorResponse("Customer not found"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Customer deleted successfully", nil))
}
