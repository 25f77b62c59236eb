package postgres

import (
	"context"

	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a AttemptPostgreSQL) GetBySubject(ctx context.Context, userID string, subjectID uint) ([]*models.QuizAttempt, error) {
	var attempts []*models.QuizAttempt
	if err := a.db.WithContext(ctx).
		Joins("JOIN topics ON topics.id = quiz_attempts.topic_id").
		Where("quiz_attempts.user_id = ? AND topics.subject_id = ?", userID, subjectID).
		Order("quiz_attempts.completed_at ASC, quiz_attempts.id ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a AttemptPostgreSQL) CountBySubject(ctx context.Context, userID string, subjectID uint) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Joins("JOIN topics ON topics.id = quiz_attempts.topic_id").
		Where("quiz_attempts.user_id = ? AND topics.subject_id = ?", userID, subjectID).
		Count(&count).Error
	return count, err
}
