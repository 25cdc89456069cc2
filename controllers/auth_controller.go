package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lmhoang/survey-api/config"
	"github.com/lmhoang/survey-api/utils"
	"go.uber.org/zap"
)

// AuthHandler issues operator tokens against the single credential from
// config; there is no user storage.
type AuthHandler struct {
	cfg *config.Config
	log *zap.Logger
}

func NewAuthHandler(cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, log: log}
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload"})
		return
	}

	if req.Email != h.cfg.AdminEmail || !utils.CheckPassword(h.cfg.AdminPasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(req.Email, "operator")
	if err != nil {
		h.log.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
