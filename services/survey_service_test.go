package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
)

func newTestSurveyService(uow *stubUnitOfWork) *SurveyService {
	svc := NewSurveyService(uow)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateSurveyNested(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := newTestSurveyService(uow)

	survey, err := svc.Create(context.Background(), CreateSurveyRequest{
		Title:       "Lunch poll",
		Description: "What should we order?",
		Questions: []CreateQuestionRequest{
			{
				// listed out of order on purpose; creation sorts by Order
				Text:       "Second question",
				Order:      1,
				IsRequired: false,
				Options: []CreateOptionRequest{
					{Text: "Yes", Order: 0},
					{Text: "No", Order: 1},
				},
			},
			{
				Text:       "First question",
				Order:      0,
				IsRequired: true,
				Options: []CreateOptionRequest{
					{Text: "Pizza", Order: 0},
					{Text: "Sushi", Order: 1},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if survey.Status != models.StatusDraft {
		t.Fatalf("status = %s, want draft", survey.Status)
	}
	if len(survey.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(survey.Questions))
	}
	if survey.Questions[0].Text != "First question" {
		t.Fatalf("questions not ordered: first is %q", survey.Questions[0].Text)
	}
	if stored := uow.surveys.byID[survey.ID]; stored == nil {
		t.Fatal("survey not persisted")
	}
}

func TestCreateSurveyRejectsBadQuestion(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := newTestSurveyService(uow)

	_, err := svc.Create(context.Background(), CreateSurveyRequest{
		Title: "Broken",
		Questions: []CreateQuestionRequest{
			{Text: "", Order: 0},
		},
	})
	var validationErr *models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(uow.surveys.byID) != 0 {
		t.Fatal("nothing should be persisted on validation failure")
	}
}

func TestUpdateOnlyDraft(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := newTestSurveyService(uow)

	draft := draftSurveyFixture(t, 1, 2, true)
	uow.surveys.byID[draft.ID] = draft

	updated, err := svc.Update(context.Background(), draft.ID, UpdateSurveyRequest{
		Title:       "Renamed",
		Description: "new text",
	})
	if err != nil {
		t.Fatalf("update draft: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title = %q", updated.Title)
	}

	active := activeSurvey(t, uow, 1, 2, true)
	_, err = svc.Update(context.Background(), active.ID, UpdateSurveyRequest{Title: "Nope"})
	var stateErr *models.InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("update active survey: want InvalidStateError, got %v", err)
	}
}

func TestActivateAndClosePersist(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := newTestSurveyService(uow)

	draft := draftSurveyFixture(t, 1, 2, true)
	uow.surveys.byID[draft.ID] = draft

	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	activated, err := svc.Activate(context.Background(), draft.ID, ActivateSurveyRequest{EndDate: &end})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if activated.Status != models.StatusActive || !activated.EndDate.Equal(end) {
		t.Fatalf("activated = %s/%v", activated.Status, activated.EndDate)
	}
	if !activated.StartDate.Equal(svc.now()) {
		t.Fatalf("start date = %v, want service clock", activated.StartDate)
	}

	closed, err := svc.Close(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != models.StatusClosed || !closed.EndDate.Equal(svc.now()) {
		t.Fatalf("closed = %s/%v", closed.Status, closed.EndDate)
	}
	if uow.surveys.updateCalls != 2 {
		t.Fatalf("update persisted %d times, want 2", uow.surveys.updateCalls)
	}
}

func TestDeleteRules(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := newTestSurveyService(uow)

	var notFoundErr *models.NotFoundError
	if err := svc.Delete(context.Background(), uuid.New()); !errors.As(err, &notFoundErr) {
		t.Fatalf("delete missing: want NotFoundError, got %v", err)
	}

	active := activeSurvey(t, uow, 1, 2, true)
	var stateErr *models.InvalidStateError
	if err := svc.Delete(context.Background(), active.ID); !errors.As(err, &stateErr) {
		t.Fatalf("delete active: want InvalidStateError, got %v", err)
	}

	if err := active.Close(svc.now()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), active.ID); err != nil {
		t.Fatalf("delete closed: %v", err)
	}
	if len(uow.surveys.deleted) != 1 || uow.surveys.deleted[0] != active.ID {
		t.Fatal("delete not forwarded to the repository")
	}
}

func TestAddAndRemoveQuestion(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := newTestSurveyService(uow)

	draft := draftSurveyFixture(t, 1, 2, true)
	uow.surveys.byID[draft.ID] = draft

	survey, err := svc.AddQuestion(context.Background(), draft.ID, CreateQuestionRequest{
		Text:       "Extra question",
		Order:      1,
		IsRequired: true,
		Options: []CreateOptionRequest{
			{Text: "A", Order: 0},
			{Text: "B", Order: 1},
		},
	})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if len(survey.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(survey.Questions))
	}
	if len(uow.surveys.addedQuestions) != 1 {
		t.Fatal("question row not persisted")
	}

	removeID := survey.Questions[1].ID
	survey, err = svc.RemoveQuestion(context.Background(), draft.ID, removeID)
	if err != nil {
		t.Fatalf("remove question: %v", err)
	}
	if len(survey.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(survey.Questions))
	}
	if uow.surveys.removedQuestion != removeID {
		t.Fatal("removal not forwarded to the repository")
	}
}

func TestListPaginationMeta(t *testing.T) {
	uow := newStubUnitOfWork()
	svc := newTestSurveyService(uow)

	for i := 0; i < 3; i++ {
		survey := draftSurveyFixture(t, 1, 2, true)
		uow.surveys.byID[survey.ID] = survey
	}

	page, err := svc.List(context.Background(), 0, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if page.Page != 1 {
		t.Fatalf("page normalized to %d, want 1", page.Page)
	}
	if page.TotalCount != 3 || page.TotalPages != 2 {
		t.Fatalf("meta = %d/%d, want 3 total, 2 pages", page.TotalCount, page.TotalPages)
	}
}
