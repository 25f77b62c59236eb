package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
)

// LessonHistoryService manages the append-only history of analysis
// records. Every generation inserts a fresh record; nothing here ever
// updates or deletes one, so consecutive regenerations for the same
// (user, subject) remain independently retrievable.
type LessonHistoryService interface {
	CreateRecord(ctx context.Context, userID string, subjectID uint, payload *models.AnalysisPayload) (*models.WeakLessonRecord, error)
	History(ctx context.Context, userID string, subjectID *uint) ([]*models.WeakLessonRecord, error)
}

type lessonHistoryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewLessonHistoryService(repo repositories.Repository, logger *slog.Logger) LessonHistoryService {
	return &lessonHistoryService{
		repo:   repo,
		logger: logger,
	}
}

func (s *lessonHistoryService) CreateRecord(ctx context.Context, userID string, subjectID uint, payload *models.AnalysisPayload) (*models.WeakLessonRecord, error) {
	record := &models.WeakLessonRecord{
		UserID:    userID,
		SubjectID: subjectID,
	}
	if err := record.SetPayload(payload); err != nil {
		return nil, fmt.Errorf("invalid analysis payload: %w", err)
	}

	if err := s.repo.WeakLesson().Create(ctx, record); err != nil {
		return nil, NewPersistenceError("weak lesson record insert", err)
	}

	s.logger.Info("Created weak lesson record",
		"record_id", record.ID,
		"user_id", userID,
		"subject_id", subjectID,
		"weak_topic_count", payload.WeakTopicCount)

	return record, nil
}

func (s *lessonHistoryService) History(ctx context.Context, userID string, subjectID *uint) ([]*models.WeakLessonRecord, error) {
	records, err := s.repo.WeakLesson().ListByUser(ctx, userID, repositories.WeakLessonFilters{
		SubjectID: subjectID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list weak lesson records: %w", err)
	}
	return records, nil
}

// Latest picks the most recently created record from an ascending
// history list. Pure selection, not a query.
func Latest(records []*models.WeakLessonRecord) *models.WeakLessonRecord {
	if len(records) == 0 {
		return nil
	}
	return records[len(records)-1]
}
