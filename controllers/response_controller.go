package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/services"
	"go.uber.org/zap"
)

// ResponseHandler serves submissions, results and counts through the cached
// response surface.
type ResponseHandler struct {
	responses services.Responses
	log       *zap.Logger
}

func NewResponseHandler(responses services.Responses, log *zap.Logger) *ResponseHandler {
	return &ResponseHandler{responses: responses, log: log}
}

// POST /api/surveys/:id/responses
func (h *ResponseHandler) Submit(c *gin.Context) {
	surveyID, ok := parseID(c)
	if !ok {
		return
	}

	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid payload: " + err.Error()})
		return
	}
	req.SurveyID = surveyID

	responseID, err := h.responses.Submit(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"response_id": responseID})
}

// GET /api/surveys/:id/results
func (h *ResponseHandler) Results(c *gin.Context) {
	surveyID, ok := parseID(c)
	if !ok {
		return
	}
	results, err := h.responses.Results(c.Request.Context(), surveyID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GET /api/surveys/:id/responses/count
func (h *ResponseHandler) Count(c *gin.Context) {
	surveyID, ok := parseID(c)
	if !ok {
		return
	}
	count, err := h.responses.Count(c.Request.Context(), surveyID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"survey_id": surveyID, "count": count})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid survey id"})
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}
