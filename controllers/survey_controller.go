package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
	"github.com/lmhoang/survey-api/services"
	"go.uber.org/zap"
)

type SurveyHandler struct {
	svc *services.SurveyService
	log *zap.Logger
}

func NewSurveyHandler(svc *services.SurveyService, log *zap.Logger) *SurveyHandler {
	return &SurveyHandler{svc: svc, log: log}
}

// POST /api/surveys
func (h *SurveyHandler) Create(c *gin.Context) {
	var req services.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	survey, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// GET /api/surveys/:id
func (h *SurveyHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	survey, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// GET /api/surveys?page=1&page_size=10&status=draft
func (h *SurveyHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", 10)

	var status *models.SurveyStatus
	if raw := c.Query("status"); raw != "" {
		s := models.SurveyStatus(raw)
		if s != models.StatusDraft && s != models.StatusActive && s != models.StatusClosed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter", "status": raw})
			return
		}
		status = &s
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/surveys/active
func (h *SurveyHandler) ListActive(c *gin.Context) {
	items, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// PUT /api/surveys/:id
func (h *SurveyHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	survey, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// POST /api/surveys/:id/activate
func (h *SurveyHandler) Activate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.ActivateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	survey, err := h.svc.Activate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// POST /api/surveys/:id/close
func (h *SurveyHandler) CloseSurvey(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	survey, err := h.svc.Close(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// DELETE /api/surveys/:id
func (h *SurveyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/surveys/:id/questions
func (h *SurveyHandler) AddQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}

	survey, err := h.svc.AddQuestion(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// DELETE /api/surveys/:id/questions/:questionId
func (h *SurveyHandler) RemoveQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	questionID, err := uuid.Parse(c.Param("questionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
		return
	}

	survey, err := h.svc.RemoveQuestion(c.Request.Context(), id, questionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}
