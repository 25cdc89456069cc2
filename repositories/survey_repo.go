package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type surveyRepo struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepo{db: db}
}

func (r *surveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.WithContext(ctx).First(&survey, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load survey: %w", err)
	}
	return &survey, nil
}

func (r *surveyRepo) GetWithQuestions(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") }).
		First(&survey, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load survey with questions: %w", err)
	}
	return &survey, nil
}

func (r *surveyRepo) List(ctx context.Context, page, pageSize int, status *models.SurveyStatus) ([]models.Survey, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Survey{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count surveys: %w", err)
	}

	var surveys []models.Survey
	if err := query.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") }).
		Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&surveys).Error; err != nil {
		return nil, 0, fmt.Errorf("list surveys: %w", err)
	}
	return surveys, total, nil
}

func (r *surveyRepo) ListActive(ctx context.Context) ([]models.Survey, error) {
	var surveys []models.Survey
	if err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC, id ASC") }).
		Where("status = ?", models.StatusActive).
		Order("created_at DESC").
		Find(&surveys).Error; err != nil {
		return nil, fmt.Errorf("list active surveys: %w", err)
	}
	return surveys, nil
}

func (r *surveyRepo) Add(ctx context.Context, survey *models.Survey) error {
	if err := r.db.WithContext(ctx).Create(survey).Error; err != nil {
		return fmt.Errorf("create survey: %w", err)
	}
	return nil
}

// Update persists the survey row itself; questions and options are managed
// through AddQuestion/RemoveQuestion.
func (r *surveyRepo) Update(ctx context.Context, survey *models.Survey) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(survey).Error; err != nil {
		return fmt.Errorf("update survey: %w", err)
	}
	return nil
}

func (r *surveyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM answers WHERE response_id IN (SELECT id FROM responses WHERE survey_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM options WHERE question_id IN (SELECT id FROM questions WHERE survey_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Survey{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("delete survey: %w", err)
	}
	return nil
}

func (r *surveyRepo) AddQuestion(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (r *surveyRepo) RemoveQuestion(ctx context.Context, questionID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, "id = ?", questionID).Error
	})
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}
