package repositories

import (
	"context"

	"github.com/pathwise-labs/insights-service/internal/models"
)

// WeakLessonRepository is the append-only store of analysis snapshots.
// There is deliberately no Update or Delete: two regenerations for the
// same (user, subject) produce two independent records and history
// accumulates monotonically.
type WeakLessonRepository interface {
	Create(ctx context.Context, record *models.WeakLessonRecord) error

	// ListByUser returns the user's records ordered by created_at
	// ascending, optionally filtered to one subject.
	ListByUser(ctx context.Context, userID string, filters WeakLessonFilters) ([]*models.WeakLessonRecord, error)
	CountByUser(ctx context.Context, userID string, filters WeakLessonFilters) (int64, error)
}

// GameSessionRepository persists analyzed game sessions, one row per
// session.
type GameSessionRepository interface {
	Create(ctx context.Context, session *models.GameSession) error
	ListByUser(ctx context.Context, userID string, filters GameSessionFilters) ([]*models.GameSession, error)
}
