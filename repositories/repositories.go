// Package repositories defines the persistence contract the services depend
// on, plus its gorm implementation. Repositories return (nil, nil) when an
// entity does not exist; translating that into a NotFoundError is the
// services' job.
package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
)

type SurveyRepository interface {
	// GetByID loads the survey row only, without its questions.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Survey, error)
	// GetWithQuestions eager-loads questions and options ordered by their
	// display order.
	GetWithQuestions(ctx context.Context, id uuid.UUID) (*models.Survey, error)
	List(ctx context.Context, page, pageSize int, status *models.SurveyStatus) ([]models.Survey, int64, error)
	ListActive(ctx context.Context) ([]models.Survey, error)
	Add(ctx context.Context, survey *models.Survey) error
	Update(ctx context.Context, survey *models.Survey) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddQuestion(ctx context.Context, question *models.Question) error
	RemoveQuestion(ctx context.Context, questionID uuid.UUID) error
}

type ResponseRepository interface {
	// Add persists the response together with all of its answers as one
	// transactional unit.
	Add(ctx context.Context, response *models.Response) error
	HasResponded(ctx context.Context, surveyID uuid.UUID, participantID string) (bool, error)
	CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error)
	// OptionCounts aggregates selection counts per option over every answer
	// submitted to the survey.
	OptionCounts(ctx context.Context, surveyID uuid.UUID) (map[uuid.UUID]int64, error)
}

// UnitOfWork groups the repositories behind a single handle; both operate on
// the same underlying store.
type UnitOfWork interface {
	Surveys() SurveyRepository
	Responses() ResponseRepository
}
