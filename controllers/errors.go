package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lmhoang/survey-api/models"
	"go.uber.org/zap"
)

// respondError maps the service error kinds onto HTTP statuses. Every payload
// carries the ids the caller needs to correct the request; anything unmapped
// is a 500 and gets logged.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var (
		validationErr  *models.ValidationError
		stateErr       *models.InvalidStateError
		notFoundErr    *models.NotFoundError
		notAcceptErr   *models.NotAcceptingError
		dupParticipant *models.DuplicateParticipantError
		dupAnswer      *models.DuplicateAnswerError
		missingAnswer  *models.MissingRequiredAnswerError
		unknownQErr    *models.UnknownQuestionError
		invalidOptErr  *models.InvalidOptionError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error(), "status": stateErr.Status})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &notAcceptErr):
		c.JSON(http.StatusForbidden, gin.H{"error": notAcceptErr.Error()})
	case errors.As(err, &dupParticipant):
		c.JSON(http.StatusConflict, gin.H{"error": "you have already responded to this survey"})
	case errors.As(err, &dupAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": dupAnswer.Error(), "question_id": dupAnswer.QuestionID})
	case errors.As(err, &missingAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": missingAnswer.Error(), "question_id": missingAnswer.QuestionID})
	case errors.As(err, &unknownQErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": unknownQErr.Error(), "question_id": unknownQErr.QuestionID})
	case errors.As(err, &invalidOptErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       invalidOptErr.Error(),
			"question_id": invalidOptErr.QuestionID,
			"option_id":   invalidOptErr.OptionID,
		})
	default:
		log.Error("unhandled service error", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
