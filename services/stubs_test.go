package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
	"github.com/lmhoang/survey-api/repositories"
)

// stubUnitOfWork backs the service tests with in-memory maps, counting calls
// where the pipeline order matters.
type stubUnitOfWork struct {
	surveys   *stubSurveyRepo
	responses *stubResponseRepo
}

func newStubUnitOfWork() *stubUnitOfWork {
	return &stubUnitOfWork{
		surveys:   &stubSurveyRepo{byID: make(map[uuid.UUID]*models.Survey)},
		responses: &stubResponseRepo{},
	}
}

func (u *stubUnitOfWork) Surveys() repositories.SurveyRepository     { return u.surveys }
func (u *stubUnitOfWork) Responses() repositories.ResponseRepository { return u.responses }

type stubSurveyRepo struct {
	byID            map[uuid.UUID]*models.Survey
	addedQuestions  []*models.Question
	removedQuestion uuid.UUID
	updateCalls     int
	deleted         []uuid.UUID
}

func (r *stubSurveyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Survey, error) {
	return r.byID[id], nil
}

func (r *stubSurveyRepo) GetWithQuestions(_ context.Context, id uuid.UUID) (*models.Survey, error) {
	return r.byID[id], nil
}

func (r *stubSurveyRepo) List(_ context.Context, _, _ int, _ *models.SurveyStatus) ([]models.Survey, int64, error) {
	var out []models.Survey
	for _, s := range r.byID {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSurveyRepo) ListActive(_ context.Context) ([]models.Survey, error) {
	var out []models.Survey
	for _, s := range r.byID {
		if s.Status == models.StatusActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSurveyRepo) Add(_ context.Context, survey *models.Survey) error {
	r.byID[survey.ID] = survey
	return nil
}

func (r *stubSurveyRepo) Update(_ context.Context, survey *models.Survey) error {
	r.updateCalls++
	r.byID[survey.ID] = survey
	return nil
}

func (r *stubSurveyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubSurveyRepo) AddQuestion(_ context.Context, question *models.Question) error {
	r.addedQuestions = append(r.addedQuestions, question)
	return nil
}

func (r *stubSurveyRepo) RemoveQuestion(_ context.Context, questionID uuid.UUID) error {
	r.removedQuestion = questionID
	return nil
}

type stubResponseRepo struct {
	stored            []*models.Response
	hasRespondedCalls int
}

func (r *stubResponseRepo) Add(_ context.Context, response *models.Response) error {
	r.stored = append(r.stored, response)
	return nil
}

func (r *stubResponseRepo) HasResponded(_ context.Context, surveyID uuid.UUID, participantID string) (bool, error) {
	r.hasRespondedCalls++
	for _, resp := range r.stored {
		if resp.SurveyID == surveyID && resp.ParticipantID == participantID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubResponseRepo) CountBySurvey(_ context.Context, surveyID uuid.UUID) (int64, error) {
	var count int64
	for _, resp := range r.stored {
		if resp.SurveyID == surveyID {
			count++
		}
	}
	return count, nil
}

func (r *stubResponseRepo) OptionCounts(_ context.Context, surveyID uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for _, resp := range r.stored {
		if resp.SurveyID != surveyID {
			continue
		}
		for _, answer := range resp.Answers {
			counts[answer.SelectedOptionID]++
		}
	}
	return counts, nil
}

// activeSurvey seeds the stub with an activated survey; each question gets
// optionCount options.
func activeSurvey(t *testing.T, uow *stubUnitOfWork, questionCount, optionCount int, required bool) *models.Survey {
	t.Helper()
	survey := draftSurveyFixture(t, questionCount, optionCount, required)
	if err := survey.Activate(nil, nil, time.Now().UTC()); err != nil {
		t.Fatalf("activate fixture: %v", err)
	}
	uow.surveys.byID[survey.ID] = survey
	return survey
}

func draftSurveyFixture(t *testing.T, questionCount, optionCount int, required bool) *models.Survey {
	t.Helper()
	survey, err := models.NewSurvey("Fixture survey", "")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < questionCount; i++ {
		question, err := models.NewQuestion(survey.ID, questionText(i), i, required)
		if err != nil {
			t.Fatal(err)
		}
		for j := 0; j < optionCount; j++ {
			option, err := models.NewOption(question.ID, optionText(j), j)
			if err != nil {
				t.Fatal(err)
			}
			if err := question.AddOption(option); err != nil {
				t.Fatal(err)
			}
		}
		if err := survey.AddQuestion(question); err != nil {
			t.Fatal(err)
		}
	}
	return survey
}

func questionText(i int) string { return "Question " + string(rune('A'+i)) }
func optionText(j int) string   { return "Option " + string(rune('1'+j)) }
