package models

import (
	"time"

	"github.com/google/uuid"
)

// Response is one respondent's complete submission. It references its survey
// but is not owned by it; answers are created once and never mutated.
type Response struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID      uuid.UUID `gorm:"type:uuid;index:idx_responses_survey_participant;not null" json:"survey_id"`
	ParticipantID string    `gorm:"size:100;index:idx_responses_survey_participant" json:"participant_id,omitempty"`
	IpAddress     string    `gorm:"size:45" json:"ip_address,omitempty"`
	SubmittedAt   time.Time `gorm:"not null" json:"submitted_at"`

	Answers []Answer `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (Response) TableName() string { return "responses" }

type Answer struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResponseID       uuid.UUID `gorm:"type:uuid;index;not null" json:"response_id"`
	QuestionID       uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`
	SelectedOptionID uuid.UUID `gorm:"type:uuid;index;not null" json:"selected_option_id"`
}

func (Answer) TableName() string { return "answers" }

func NewResponse(surveyID uuid.UUID, participantID, ipAddress string, submittedAt time.Time) *Response {
	return &Response{
		ID:            uuid.New(),
		SurveyID:      surveyID,
		ParticipantID: participantID,
		IpAddress:     ipAddress,
		SubmittedAt:   submittedAt,
	}
}

// AddAnswer rejects a second answer for the same question within one response.
func (r *Response) AddAnswer(questionID, selectedOptionID uuid.UUID) error {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			return &DuplicateAnswerError{QuestionID: questionID}
		}
	}
	r.Answers = append(r.Answers, Answer{
		ID:               uuid.New(),
		ResponseID:       r.ID,
		QuestionID:       questionID,
		SelectedOptionID: selectedOptionID,
	})
	return nil
}
