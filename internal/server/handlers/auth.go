package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmacare-system/config"
	"pharmacare-system/internal/utils"
)

type AuthHandler struct {
	cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Password is required"))
		return
	}

	if req.Password != h.cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, errorResponse("Invalid password"))
		return
	}

	ttl := time.Duration(h.cfg.TokenTTLHours) * time.Hour
	token, exp, err := utils.GenerateToken("admin", ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, successResponse("Login successful", gin.H{
		"token":      token,
		"expires_at": exp,
	}))
}
