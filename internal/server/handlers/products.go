package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"pharmacare-system/internal/database/models"
)

const (
	productCacheKey = "billing:products"
	productCacheTTL = 30 * time.Minute
)

type ProductHandler struct {
	db  *gorm.DB
	rdb *redis.Client // nil when the cache is unavailable
}

func NewProductHandler(db *gorm.DB, rdb *redis.Client) *ProductHandler {
	return &ProductHandler{db: db, rdb: rdb}
}

type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	BatchNumber string `json:"batchNumber"`
	ExpiryDate  string `json:"expiryDate"`
	PackSize    string `json:"packSize"`
	HSNCode     string `json:"hsnCode"`
	Rate        string `json:"rate" binding:"required"`
	GSTRate     int    `json:"gstRate"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"minStock"`
}

func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if products, ok := h.cachedList(ctx); ok {
		c.JSON(http.StatusOK, successResponse("Products retrieved successfully", products))
		return
	}

	var products []models.Product
	if err := h.db.Order("name asc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to list products"))
		return
	}

	h.cacheList(ctx, products)
	c.JSON(http.StatusOK, successResponse("Products retrieved successfully", products))
}

func (h *ProductHandler) Get(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Product not found"))
		return
	}
	c.JSON(http.StatusOK, successResponse("Product retrieved successfully", product))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if _, err := parseMoney(req.Rate); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid rate"))
		return
	}
	if !validGSTRate(req.GSTRate) {
		c.JSON(http.StatusBadRequest, errorResponse("GST rate must be one of 0, 5, 12, 18, 28"))
		return
	}

	product := models.Product{
		ID:          newID(),
		Name:        req.Name,
		Category:    req.Category,
		Brand:       req.Brand,
		BatchNumber: req.BatchNumber,
		ExpiryDate:  req.ExpiryDate,
		PackSize:    req.PackSize,
		HSNCode:     req.HSNCode,
		Rate:        req.Rate,
		GSTRate:     req.GSTRate,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
	}
	if err := h.db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save product"))
		return
	}

	h.invalidateCache(c.Request.Context())
	c.JSON(http.StatusCreated, successResponse("Product created successfully", product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	var product models.Product
	if err := h.db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, errorResponse("Product not found"))
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if _, err := parseMoney(req.Rate); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid rate"))
		return
	}
	if !validGSTRate(req.GSTRate) {
		c.JSON(http.StatusBadRequest, errorResponse("GST rate must be one of 0, 5, 12, 18, 28"))
		return
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Brand = req.Brand
	product.BatchNumber = req.BatchNumber
	product.ExpiryDate = req.ExpiryDate
	product.PackSize = req.PackSize
	product.HSNCode = req.HSNCode
	product.Rate = req.Rate
	product.GSTRate = req.GSTRate
	product.Stock = req.Stock
	product.MinStock = req.MinStock

	if err := h.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to save product"))
		return
	}

	h.invalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("Product updated successfully", product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Product{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to delete product"))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, errorResponse("Product not found"))
		return
	}

	h.invalidateCache(c.Request.Context())
	c.JSON(http.StatusOK, successResponse("Product deleted successfully", nil))
}

func (h *ProductHandler) cachedList(ctx context.Context) ([]models.Product, bool) {
	if h.rdb == nil {
		return nil, false
	}
	raw, err := h.rdb.Get(ctx, productCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (h *ProductHandler) cacheList(ctx context.Context, products []models.Product) {
	if h.rdb == nil {
		return
	}
	if raw, err := json.Marshal(products); err == nil {
		h.rdb.Set(ctx, productCacheKey, raw, productCacheTTL)
	}
}

func (h *ProductHandler) invalidateCache(ctx context.Context) {
	if h.rdb != nil {
		h.rdb.Del(ctx, productCacheKey)
	}
}
