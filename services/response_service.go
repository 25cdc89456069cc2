package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
	"github.com/lmhoang/survey-api/repositories"
)

// Responses is the caller-facing surface for submissions and results; it is
// implemented by ResponseService and by its caching decorator.
type Responses interface {
	Submit(ctx context.Context, req SubmitResponseRequest, ipAddress string) (uuid.UUID, error)
	Results(ctx context.Context, surveyID uuid.UUID) (*SurveyResults, error)
	Count(ctx context.Context, surveyID uuid.UUID) (int64, error)
}

// ResponseService validates and persists submissions and computes aggregated
// results.
type ResponseService struct {
	uow repositories.UnitOfWork
	now func() time.Time
}

func NewResponseService(uow repositories.UnitOfWork) *ResponseService {
	return &ResponseService{
		uow: uow,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Submit runs the validation pipeline in a fixed order and persists the
// response only after every check passes; the first failing check wins.
//
// The duplicate-participant check is advisory: two concurrent submissions from
// the same participant can both pass it before either commits. That matches
// the storage contract, which does not promise a uniqueness constraint.
func (s *ResponseService) Submit(ctx context.Context, req SubmitResponseRequest, ipAddress string) (uuid.UUID, error) {
	survey, err := s.uow.Surveys().GetWithQuestions(ctx, req.SurveyID)
	if err != nil {
		return uuid.Nil, err
	}
	if survey == nil {
		return uuid.Nil, &models.NotFoundError{Resource: "survey", ID: req.SurveyID.String()}
	}

	if !survey.IsOpen(s.now()) {
		return uuid.Nil, &models.NotAcceptingError{SurveyID: survey.ID}
	}

	if req.ParticipantID != "" {
		responded, err := s.uow.Responses().HasResponded(ctx, survey.ID, req.ParticipantID)
		if err != nil {
			return uuid.Nil, err
		}
		if responded {
			return uuid.Nil, &models.DuplicateParticipantError{
				SurveyID:      survey.ID,
				ParticipantID: req.ParticipantID,
			}
		}
	}

	answered := make(map[uuid.UUID]bool, len(req.Answers))
	for _, answer := range req.Answers {
		answered[answer.QuestionID] = true
	}
	for i := range survey.Questions {
		question := &survey.Questions[i]
		if question.IsRequired && !answered[question.ID] {
			return uuid.Nil, &models.MissingRequiredAnswerError{
				QuestionID: question.ID,
				Text:       question.Text,
			}
		}
	}

	for _, answer := range req.Answers {
		question := survey.FindQuestion(answer.QuestionID)
		if question == nil {
			return uuid.Nil, &models.UnknownQuestionError{QuestionID: answer.QuestionID}
		}
		if !question.HasOption(answer.SelectedOptionID) {
			return uuid.Nil, &models.InvalidOptionError{
				QuestionID: answer.QuestionID,
				OptionID:   answer.SelectedOptionID,
			}
		}
	}

	response := models.NewResponse(survey.ID, req.ParticipantID, ipAddress, s.now())
	for _, answer := range req.Answers {
		if err := response.AddAnswer(answer.QuestionID, answer.SelectedOptionID); err != nil {
			return uuid.Nil, err
		}
	}

	if err := s.uow.Responses().Add(ctx, response); err != nil {
		return uuid.Nil, err
	}
	return response.ID, nil
}

// Results aggregates per-option counts and percentages, questions and options
// ordered by their display order. Percentages are rounded half away from zero
// to two decimals and are not normalized to sum to 100.
func (s *ResponseService) Results(ctx context.Context, surveyID uuid.UUID) (*SurveyResults, error) {
	survey, err := s.uow.Surveys().GetWithQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, &models.NotFoundError{Resource: "survey", ID: surveyID.String()}
	}

	total, err := s.uow.Responses().CountBySurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	optionCounts, err := s.uow.Responses().OptionCounts(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	results := &SurveyResults{
		SurveyID:       survey.ID,
		Title:          survey.Title,
		TotalResponses: total,
		Questions:      make([]QuestionResult, 0, len(survey.Questions)),
	}
	for i := range survey.Questions {
		question := &survey.Questions[i]
		questionResult := QuestionResult{
			QuestionID: question.ID,
			Text:       question.Text,
			Options:    make([]OptionResult, 0, len(question.Options)),
		}
		for j := range question.Options {
			option := &question.Options[j]
			count := optionCounts[option.ID]
			questionResult.Options = append(questionResult.Options, OptionResult{
				OptionID:   option.ID,
				Text:       option.Text,
				Count:      count,
				Percentage: percentage(count, total),
			})
		}
		results.Questions = append(results.Questions, questionResult)
	}
	return results, nil
}

func (s *ResponseService) Count(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	return s.uow.Responses().CountBySurvey(ctx, surveyID)
}

// percentage rounds half away from zero (math.Round), so 1 of 3 yields 33.33.
func percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
