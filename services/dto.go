package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
)

type CreateSurveyRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	Questions   []CreateQuestionRequest `json:"questions"`
}

type CreateQuestionRequest struct {
	Text       string                `json:"text" binding:"required"`
	Order      int                   `json:"order"`
	IsRequired bool                  `json:"is_required"`
	Options    []CreateOptionRequest `json:"options"`
}

type CreateOptionRequest struct {
	Text  string `json:"text" binding:"required"`
	Order int    `json:"order"`
}

type UpdateSurveyRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type ActivateSurveyRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

type SubmitResponseRequest struct {
	SurveyID      uuid.UUID          `json:"-"`
	ParticipantID string             `json:"participant_id"`
	Answers       []AnswerSubmission `json:"answers" binding:"required"`
}

type AnswerSubmission struct {
	QuestionID       uuid.UUID `json:"question_id" binding:"required"`
	SelectedOptionID uuid.UUID `json:"selected_option_id" binding:"required"`
}

// SurveySummary is the list-view projection carrying counts instead of the
// full question tree.
type SurveySummary struct {
	ID            uuid.UUID           `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Status        models.SurveyStatus `json:"status"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	EndDate       *time.Time          `json:"end_date,omitempty"`
	QuestionCount int                 `json:"question_count"`
	ResponseCount int64               `json:"response_count"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type PaginatedSurveys struct {
	Items      []SurveySummary `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int64           `json:"total_count"`
	TotalPages int             `json:"total_pages"`
}

type SurveyResults struct {
	SurveyID       uuid.UUID        `json:"survey_id"`
	Title          string           `json:"title"`
	TotalResponses int64            `json:"total_responses"`
	Questions      []QuestionResult `json:"questions"`
}

type QuestionResult struct {
	QuestionID uuid.UUID      `json:"question_id"`
	Text       string         `json:"text"`
	Options    []OptionResult `json:"options"`
}

type OptionResult struct {
	OptionID   uuid.UUID `json:"option_id"`
	Text       string    `json:"text"`
	Count      int64     `json:"count"`
	Percentage float64   `json:"percentage"`
}
