package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
	"github.com/lmhoang/survey-api/repositories"
)

// SurveyService hosts the survey lifecycle use-cases. All structural edits are
// guarded by the aggregate itself; the service loads, mutates and persists.
type SurveyService struct {
	uow repositories.UnitOfWork
	now func() time.Time
}

func NewSurveyService(uow repositories.UnitOfWork) *SurveyService {
	return &SurveyService{
		uow: uow,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *SurveyService) Create(ctx context.Context, req CreateSurveyRequest) (*models.Survey, error) {
	survey, err := models.NewSurvey(req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	questions := append([]CreateQuestionRequest(nil), req.Questions...)
	sort.SliceStable(questions, func(i, j int) bool { return questions[i].Order < questions[j].Order })

	for _, questionReq := range questions {
		question, err := models.NewQuestion(survey.ID, questionReq.Text, questionReq.Order, questionReq.IsRequired)
		if err != nil {
			return nil, err
		}

		options := append([]CreateOptionRequest(nil), questionReq.Options...)
		sort.SliceStable(options, func(i, j int) bool { return options[i].Order < options[j].Order })

		for _, optionReq := range options {
			option, err := models.NewOption(question.ID, optionReq.Text, optionReq.Order)
			if err != nil {
				return nil, err
			}
			if err := question.AddOption(option); err != nil {
				return nil, err
			}
		}
		if err := survey.AddQuestion(question); err != nil {
			return nil, err
		}
	}

	if err := s.uow.Surveys().Add(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) Get(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	survey, err := s.uow.Surveys().GetWithQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, &models.NotFoundError{Resource: "survey", ID: id.String()}
	}
	return survey, nil
}

func (s *SurveyService) List(ctx context.Context, page, pageSize int, status *models.SurveyStatus) (*PaginatedSurveys, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	surveys, total, err := s.uow.Surveys().List(ctx, page, pageSize, status)
	if err != nil {
		return nil, err
	}

	items, err := s.summarize(ctx, surveys)
	if err != nil {
		return nil, err
	}
	return &PaginatedSurveys{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (s *SurveyService) ListActive(ctx context.Context) ([]SurveySummary, error) {
	surveys, err := s.uow.Surveys().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, surveys)
}

// Update edits title/description; allowed on draft surveys only.
func (s *SurveyService) Update(ctx context.Context, id uuid.UUID, req UpdateSurveyRequest) (*models.Survey, error) {
	survey, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey.Status != models.StatusDraft {
		return nil, &models.InvalidStateError{Op: "update", Status: survey.Status}
	}

	if err := survey.SetTitle(req.Title); err != nil {
		return nil, err
	}
	if err := survey.SetDescription(req.Description); err != nil {
		return nil, err
	}

	if err := s.uow.Surveys().Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) Activate(ctx context.Context, id uuid.UUID, req ActivateSurveyRequest) (*models.Survey, error) {
	survey, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := survey.Activate(req.StartDate, req.EndDate, s.now()); err != nil {
		return nil, err
	}
	if err := s.uow.Surveys().Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) Close(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	survey, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := survey.Close(s.now()); err != nil {
		return nil, err
	}
	if err := s.uow.Surveys().Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// Delete removes the survey with its questions, options, responses and
// answers. Active surveys must be closed first.
func (s *SurveyService) Delete(ctx context.Context, id uuid.UUID) error {
	survey, err := s.uow.Surveys().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if survey == nil {
		return &models.NotFoundError{Resource: "survey", ID: id.String()}
	}
	if survey.Status == models.StatusActive {
		return &models.InvalidStateError{Op: "delete", Status: survey.Status}
	}
	return s.uow.Surveys().Delete(ctx, id)
}

func (s *SurveyService) AddQuestion(ctx context.Context, surveyID uuid.UUID, req CreateQuestionRequest) (*models.Survey, error) {
	survey, err := s.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	question, err := models.NewQuestion(survey.ID, req.Text, req.Order, req.IsRequired)
	if err != nil {
		return nil, err
	}
	for _, optionReq := range req.Options {
		option, err := models.NewOption(question.ID, optionReq.Text, optionReq.Order)
		if err != nil {
			return nil, err
		}
		if err := question.AddOption(option); err != nil {
			return nil, err
		}
	}
	if err := survey.AddQuestion(question); err != nil {
		return nil, err
	}

	if err := s.uow.Surveys().AddQuestion(ctx, question); err != nil {
		return nil, err
	}
	if err := s.uow.Surveys().Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) RemoveQuestion(ctx context.Context, surveyID, questionID uuid.UUID) (*models.Survey, error) {
	survey, err := s.Get(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if err := survey.RemoveQuestion(questionID); err != nil {
		return nil, err
	}
	if err := s.uow.Surveys().RemoveQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	if err := s.uow.Surveys().Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) summarize(ctx context.Context, surveys []models.Survey) ([]SurveySummary, error) {
	items := make([]SurveySummary, 0, len(surveys))
	for i := range surveys {
		survey := &surveys[i]
		responseCount, err := s.uow.Responses().CountBySurvey(ctx, survey.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, SurveySummary{
			ID:            survey.ID,
			Title:         survey.Title,
			Description:   survey.Description,
			Status:        survey.Status,
			StartDate:     survey.StartDate,
			EndDate:       survey.EndDate,
			QuestionCount: len(survey.Questions),
			ResponseCount: responseCount,
			CreatedAt:     survey.CreatedAt,
			UpdatedAt:     survey.UpdatedAt,
		})
	}
	return items, nil
}
