package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	response := gin.H{"status": "ok", "db": "ok"}

	sqlDB, err := h.db.DB()
	if err != nil {
		response["status"] = "degraded"
		response["db"] = "error: cannot get DB instance"
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		response["status"] = "degraded"
		response["db"] = "error: cannot connect to DB"
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	c.JSON(http.StatusOK, response)
}
