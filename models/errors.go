package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports structurally invalid input; the caller can recover
// by correcting the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// InvalidStateError reports an operation attempted against a survey in the
// wrong lifecycle state.
type InvalidStateError struct {
	Op     string
	Status SurveyStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a %s survey", e.Op, e.Status)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NotAcceptingError means the survey is not currently open for responses,
// either because of its status or because its end date has passed.
type NotAcceptingError struct {
	SurveyID uuid.UUID
}

func (e *NotAcceptingError) Error() string {
	return fmt.Sprintf("survey %s is not accepting responses", e.SurveyID)
}

type DuplicateParticipantError struct {
	SurveyID      uuid.UUID
	ParticipantID string
}

func (e *DuplicateParticipantError) Error() string {
	return fmt.Sprintf("participant %s has already responded to survey %s", e.ParticipantID, e.SurveyID)
}

type DuplicateAnswerError struct {
	QuestionID uuid.UUID
}

func (e *DuplicateAnswerError) Error() string {
	return fmt.Sprintf("question %s is answered more than once", e.QuestionID)
}

type MissingRequiredAnswerError struct {
	QuestionID uuid.UUID
	Text       string
}

func (e *MissingRequiredAnswerError) Error() string {
	return fmt.Sprintf("question %q is required", e.Text)
}

type UnknownQuestionError struct {
	QuestionID uuid.UUID
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("question %s does not belong to this survey", e.QuestionID)
}

type InvalidOptionError struct {
	QuestionID uuid.UUID
	OptionID   uuid.UUID
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("option %s is not valid for question %s", e.OptionID, e.QuestionID)
}
