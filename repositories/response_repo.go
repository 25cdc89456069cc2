package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lmhoang/survey-api/models"
	"gorm.io/gorm"
)

type responseRepo struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepo{db: db}
}

// Add writes the response and its answers inside one transaction; either all
// rows land or none do.
func (r *responseRepo) Add(ctx context.Context, response *models.Response) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(response).Error
	})
	if err != nil {
		return fmt.Errorf("create response: %w", err)
	}
	return nil
}

func (r *responseRepo) HasResponded(ctx context.Context, surveyID uuid.UUID, participantID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("survey_id = ? AND participant_id = ?", surveyID, participantID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check participant: %w", err)
	}
	return count > 0, nil
}

func (r *responseRepo) CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Response{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return count, nil
}

// OptionCounts is delegated to the store so it scales independent of response
// volume.
func (r *responseRepo) OptionCounts(ctx context.Context, surveyID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		SelectedOptionID uuid.UUID
		Count            int64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT a.selected_option_id, COUNT(*) AS count
		FROM answers a
		JOIN responses r ON a.response_id = r.id
		WHERE r.survey_id = ?
		GROUP BY a.selected_option_id
	`, surveyID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count option selections: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.SelectedOptionID] = row.Count
	}
	return counts, nil
}
