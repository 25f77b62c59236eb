package postgres

import (
	"context"

	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"gorm.io/gorm"
)

type WeakLessonPostgreSQL struct {
	db *gorm.DB
}

func NewWeakLessonPostgreSQL(db *gorm.DB) repositories.WeakLessonRepository {
	return &WeakLessonPostgreSQL{db: db}
}

func (w WeakLessonPostgreSQL) Create(ctx context.Context, record *models.WeakLessonRecord) error {
	return w.db.WithContext(ctx).Create(record).Error
}

func (w WeakLessonPostgreSQL) ListByUser(ctx context.Context, userID string, filters repositories.WeakLessonFilters) ([]*models.WeakLessonRecord, error) {
	var records []*models.WeakLessonRecord

	query := w.db.WithContext(ctx).Model(&models.WeakLessonRecord{}).Where("user_id = ?", userID)
	query = applyWeakLessonFilters(query, filters)

	if err := query.Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (w WeakLessonPostgreSQL) CountByUser(ctx context.Context, userID string, filters repositories.WeakLessonFilters) (int64, error) {
	var count int64
	query := w.db.WithContext(ctx).Model(&models.WeakLessonRecord{}).Where("user_id = ?", userID)
	query = applyWeakLessonFilters(query, filters)
	err := query.Count(&count).Error
	return count, err
}

func applyWeakLessonFilters(query *gorm.DB, filters repositories.WeakLessonFilters) *gorm.DB {
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

type GameSessionPostgreSQL struct {
	db *gorm.DB
}

func NewGameSessionPostgreSQL(db *gorm.DB) repositories.GameSessionRepository {
	return &GameSessionPostgreSQL{db: db}
}

func (g GameSessionPostgreSQL) Create(ctx context.Context, session *models.GameSession) error {
	return g.db.WithContext(ctx).Create(session).Error
}

func (g GameSessionPostgreSQL) ListByUser(ctx context.Context, userID string, filters repositories.GameSessionFilters) ([]*models.GameSession, error) {
	var sessions []*models.GameSession

	query := g.db.WithContext(ctx).Model(&models.GameSession{}).Where("user_id = ?", userID)
	if filters.GameName != nil {
		query = query.Where("game_name = ?", *filters.GameName)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("created_at ASC, id ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
