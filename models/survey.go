package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type SurveyStatus string

const (
	StatusDraft  SurveyStatus = "draft"
	StatusActive SurveyStatus = "active"
	StatusClosed SurveyStatus = "closed"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
	maxQuestionLen    = 500
	maxOptionLen      = 200
	maxQuestions      = 50
	maxOptions        = 10
	minOptions        = 2
)

// Survey is the aggregate root. Questions and Options are owned exclusively by
// their parent and only mutable while the survey is a draft.
type Survey struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Description string       `gorm:"size:1000" json:"description,omitempty"`
	Status      SurveyStatus `gorm:"size:20;not null;default:'draft'" json:"status"`
	StartDate   *time.Time   `json:"start_date,omitempty"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (Survey) TableName() string { return "surveys" }

type Question struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SurveyID   uuid.UUID `gorm:"type:uuid;index;not null" json:"survey_id"`
	Text       string    `gorm:"size:500;not null" json:"text"`
	Order      int       `gorm:"column:display_order;not null" json:"order"`
	IsRequired bool      `gorm:"not null" json:"is_required"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (Question) TableName() string { return "questions" }

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;index;not null" json:"question_id"`
	Text       string    `gorm:"size:200;not null" json:"text"`
	Order      int       `gorm:"column:display_order;not null" json:"order"`
}

func (Option) TableName() string { return "options" }

func NewSurvey(title, description string) (*Survey, error) {
	s := &Survey{ID: uuid.New(), Status: StatusDraft}
	if err := s.SetTitle(title); err != nil {
		return nil, err
	}
	if err := s.SetDescription(description); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Survey) SetTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "title cannot be empty"}
	}
	if len(title) > maxTitleLen {
		return &ValidationError{Field: "title", Message: "title cannot exceed 200 characters"}
	}
	s.Title = title
	return nil
}

func (s *Survey) SetDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return &ValidationError{Field: "description", Message: "description cannot exceed 1000 characters"}
	}
	s.Description = description
	return nil
}

// Activate moves a draft survey into the active state. The survey must have at
// least one question and every question at least two options; the structure is
// frozen from this point on.
func (s *Survey) Activate(startDate, endDate *time.Time, now time.Time) error {
	if s.Status != StatusDraft {
		return &InvalidStateError{Op: "activate", Status: s.Status}
	}
	if len(s.Questions) == 0 {
		return &ValidationError{Field: "questions", Message: "survey must have at least one question to be activated"}
	}
	for i := range s.Questions {
		if len(s.Questions[i].Options) < minOptions {
			return &ValidationError{Field: "options", Message: "all questions must have at least 2 options"}
		}
	}
	if startDate != nil {
		s.StartDate = startDate
	} else {
		s.StartDate = &now
	}
	s.EndDate = endDate
	s.Status = StatusActive
	return nil
}

// Close is terminal; EndDate is overwritten with the close time even when a
// scheduled end date was configured.
func (s *Survey) Close(now time.Time) error {
	if s.Status != StatusActive {
		return &InvalidStateError{Op: "close", Status: s.Status}
	}
	s.Status = StatusClosed
	s.EndDate = &now
	return nil
}

func (s *Survey) AddQuestion(q *Question) error {
	if s.Status != StatusDraft {
		return &InvalidStateError{Op: "add question", Status: s.Status}
	}
	if len(s.Questions) >= maxQuestions {
		return &ValidationError{Field: "questions", Message: "survey cannot have more than 50 questions"}
	}
	s.Questions = append(s.Questions, *q)
	return nil
}

func (s *Survey) RemoveQuestion(questionID uuid.UUID) error {
	if s.Status != StatusDraft {
		return &InvalidStateError{Op: "remove question", Status: s.Status}
	}
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			s.Questions = append(s.Questions[:i], s.Questions[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Resource: "question", ID: questionID.String()}
}

// IsOpen is derived, never stored: a survey silently stops accepting responses
// once a configured end date passes.
func (s *Survey) IsOpen(now time.Time) bool {
	return s.Status == StatusActive && (s.EndDate == nil || s.EndDate.After(now))
}

func (s *Survey) FindQuestion(questionID uuid.UUID) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			return &s.Questions[i]
		}
	}
	return nil
}

func NewQuestion(surveyID uuid.UUID, text string, order int, isRequired bool) (*Question, error) {
	q := &Question{ID: uuid.New(), SurveyID: surveyID, IsRequired: isRequired}
	if err := q.SetText(text); err != nil {
		return nil, err
	}
	if err := q.SetOrder(order); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Question) SetText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "question text cannot be empty"}
	}
	if len(text) > maxQuestionLen {
		return &ValidationError{Field: "text", Message: "question text cannot exceed 500 characters"}
	}
	q.Text = text
	return nil
}

func (q *Question) SetOrder(order int) error {
	if order < 0 {
		return &ValidationError{Field: "order", Message: "question order cannot be negative"}
	}
	q.Order = order
	return nil
}

// AddOption rejects duplicate option text case-insensitively among siblings.
func (q *Question) AddOption(o *Option) error {
	if len(q.Options) >= maxOptions {
		return &ValidationError{Field: "options", Message: "question cannot have more than 10 options"}
	}
	for i := range q.Options {
		if strings.EqualFold(q.Options[i].Text, o.Text) {
			return &ValidationError{Field: "options", Message: "duplicate option text is not allowed"}
		}
	}
	q.Options = append(q.Options, *o)
	return nil
}

func (q *Question) RemoveOption(optionID uuid.UUID) error {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			q.Options = append(q.Options[:i], q.Options[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Resource: "option", ID: optionID.String()}
}

func (q *Question) HasOption(optionID uuid.UUID) bool {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return true
		}
	}
	return false
}

func NewOption(questionID uuid.UUID, text string, order int) (*Option, error) {
	o := &Option{ID: uuid.New(), QuestionID: questionID}
	if err := o.SetText(text); err != nil {
		return nil, err
	}
	if err := o.SetOrder(order); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Option) SetText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "option text cannot be empty"}
	}
	if len(text) > maxOptionLen {
		return &ValidationError{Field: "text", Message: "option text cannot exceed 200 characters"}
	}
	o.Text = text
	return nil
}

func (o *Option) SetOrder(order int) error {
	if order < 0 {
		return &ValidationError{Field: "order", Message: "option order cannot be negative"}
	}
	o.Order = order
	return nil
}
