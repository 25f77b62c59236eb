package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pathwise-labs/insights-service/internal/cache"
	"github.com/pathwise-labs/insights-service/internal/events"
	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"gorm.io/gorm"
)

// latestAnalysisTTL bounds how long a cached snapshot can outlive its
// record; reads fall back to the database on a miss.
const latestAnalysisTTL = 24 * time.Hour

type OutcomeStatus string

const (
	// OutcomeNoAttempts: the subject has topics but the user has not
	// attempted any of them. No analysis is possible and nothing is
	// persisted.
	OutcomeNoAttempts OutcomeStatus = "no_attempts"

	// OutcomeNoWeaknesses: every attempted topic meets the threshold.
	// The generation capability is not invoked and nothing is persisted.
	OutcomeNoWeaknesses OutcomeStatus = "no_weaknesses"

	// OutcomeCompleted: remedial content was generated and a new record
	// was appended to the history.
	OutcomeCompleted OutcomeStatus = "completed"
)

// GenerationOutcome is the discriminated result of a generate or
// regenerate call. Callers switch on Status; Record and Payload are set
// only for OutcomeCompleted.
type GenerationOutcome struct {
	Status            OutcomeStatus             `json:"status"`
	Message           string                    `json:"message"`
	UnattemptedTopics []models.TopicSummary     `json:"unattempted_topics,omitempty"`
	StrongTopics      []models.TopicPerformance `json:"strong_topics,omitempty"`
	Record            *models.WeakLessonRecord  `json:"record,omitempty"`
	Payload           *models.AnalysisPayload   `json:"payload,omitempty"`
}

// AnalysisService runs the weak-topic analytics and remediation
// pipeline for one (user, subject) per call.
type AnalysisService interface {
	// Generate analyzes the full attempt history (Cumulative mode).
	Generate(ctx context.Context, userID string, subjectID uint) (*GenerationOutcome, error)

	// Regenerate analyzes only each topic's most recent attempt
	// (LatestOnly mode).
	Regenerate(ctx context.Context, userID string, subjectID uint) (*GenerationOutcome, error)

	// LatestAnalysis returns the most recent persisted payload for the
	// subject, or nil when no record exists yet.
	LatestAnalysis(ctx context.Context, userID string, subjectID uint) (*models.AnalysisPayload, error)
}

type analysisService struct {
	repo        repositories.Repository
	remediation RemediationService
	history     LessonHistoryService
	cacheSvc    cache.CacheService
	publisher   events.EventPublisher
	logger      *slog.Logger
	threshold   float64
}

func NewAnalysisService(
	repo repositories.Repository,
	remediation RemediationService,
	history LessonHistoryService,
	cacheSvc cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	threshold float64,
) AnalysisService {
	return &analysisService{
		repo:        repo,
		remediation: remediation,
		history:     history,
		cacheSvc:    cacheSvc,
		publisher:   publisher,
		logger:      logger,
		threshold:   threshold,
	}
}

func (s *analysisService) Generate(ctx context.Context, userID string, subjectID uint) (*GenerationOutcome, error) {
	return s.run(ctx, userID, subjectID, models.ModeCumulative)
}

func (s *analysisService) Regenerate(ctx context.Context, userID string, subjectID uint) (*GenerationOutcome, error) {
	return s.run(ctx, userID, subjectID, models.ModeLatestOnly)
}

func (s *analysisService) run(ctx context.Context, userID string, subjectID uint, mode models.AnalysisMode) (*GenerationOutcome, error) {
	s.logger.Info("Running weak-topic analysis",
		"user_id", userID,
		"subject_id", subjectID,
		"mode", mode)

	subject, err := s.repo.Subject().GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to load subject %d: %w", subjectID, err)
	}

	topics, err := s.repo.Topic().GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics of subject %d: %w", subjectID, err)
	}
	if len(topics) == 0 {
		return nil, ErrSubjectHasNoTopics
	}

	attempts, err := s.repo.Attempt().GetBySubject(ctx, userID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	aggregation := AggregateTopicPerformance(topics, attempts, mode, s.threshold)

	// All checks that can fail cheaply happen before the expensive
	// generation call; quota is never spent on a request that cannot
	// produce a record.
	if len(aggregation.AttemptedTopics) == 0 {
		return &GenerationOutcome{
			Status:            OutcomeNoAttempts,
			Message:           "No quiz attempts found for this subject yet. Take a few quizzes first, then generate an analysis.",
			UnattemptedTopics: aggregation.UnattemptedTopics,
		}, nil
	}

	partition := PartitionByMastery(aggregation.AttemptedTopics, s.threshold)
	if len(partition.Weak) == 0 {
		return &GenerationOutcome{
			Status:            OutcomeNoWeaknesses,
			Message:           "Great job! Every attempted topic meets the mastery threshold, so there is nothing to remediate.",
			StrongTopics:      partition.Strong,
			UnattemptedTopics: aggregation.UnattemptedTopics,
		}, nil
	}

	lessonTexts := s.loadLessonTexts(ctx, partition.Weak)

	dossier := s.remediation.BuildDossier(subject.Name, partition, aggregation.UnattemptedTopics, lessonTexts)
	content, err := s.remediation.RequestContent(ctx, dossier)
	if err != nil {
		// Nothing has been written yet; a failed or abandoned generation
		// call must not leave a partial record behind.
		return nil, err
	}

	payload := &models.AnalysisPayload{
		AnalysisMode:             mode,
		TotalTopicCount:          len(topics),
		AttemptedTopicCount:      len(aggregation.AttemptedTopics),
		WeakTopicCount:           len(partition.Weak),
		AverageOverallPercentage: aggregation.OverallPercentage,
		WeakTopics:               partition.Weak,
		StrongTopics:             partition.Strong,
		UnattemptedTopics:        aggregation.UnattemptedTopics,
		RemedialContent:          content,
		GeneratedAt:              time.Now().UTC(),
	}

	record, err := s.history.CreateRecord(ctx, userID, subjectID, payload)
	if err != nil {
		return nil, err
	}

	s.refreshLatestCache(ctx, userID, subjectID, payload)
	s.publishLessonGenerated(ctx, record, payload)

	return &GenerationOutcome{
		Status:  OutcomeCompleted,
		Message: fmt.Sprintf("Generated remedial material for %d weak topic(s).", len(partition.Weak)),
		Record:  record,
		Payload: payload,
	}, nil
}

func (s *analysisService) LatestAnalysis(ctx context.Context, userID string, subjectID uint) (*models.AnalysisPayload, error) {
	var cached models.AnalysisPayload
	if err := s.cacheSvc.Get(ctx, cache.LatestAnalysisKey(userID, subjectID), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Latest analysis cache read failed", "error", err)
	}

	records, err := s.history.History(ctx, userID, &subjectID)
	if err != nil {
		return nil, err
	}

	latest := Latest(records)
	if latest == nil {
		return nil, nil
	}

	payload, err := latest.DecodePayload()
	if err != nil {
		return nil, err
	}

	s.refreshLatestCache(ctx, userID, subjectID, payload)
	return payload, nil
}

// loadLessonTexts gathers existing lesson material for the weak topics.
// A missing lesson is an expected state, not an error.
func (s *analysisService) loadLessonTexts(ctx context.Context, weak []models.TopicPerformance) map[uint]string {
	texts := make(map[uint]string, len(weak))
	for _, topic := range weak {
		text, err := s.repo.Topic().GetLessonText(ctx, topic.TopicID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("Failed to load lesson text", "topic_id", topic.TopicID, "error", err)
			}
			continue
		}
		if text != nil {
			texts[topic.TopicID] = *text
		}
	}
	return texts
}

// refreshLatestCache is best-effort; the database stays authoritative.
func (s *analysisService) refreshLatestCache(ctx context.Context, userID string, subjectID uint, payload *models.AnalysisPayload) {
	if err := s.cacheSvc.Set(ctx, cache.LatestAnalysisKey(userID, subjectID), payload, latestAnalysisTTL); err != nil {
		s.logger.Warn("Failed to cache latest analysis", "user_id", userID, "subject_id", subjectID, "error", err)
	}
}

func (s *analysisService) publishLessonGenerated(ctx context.Context, record *models.WeakLessonRecord, payload *models.AnalysisPayload) {
	event := events.NewInsightEvent(events.EventLessonGenerated, events.LessonGeneratedEvent{
		RecordID:       record.ID,
		UserID:         record.UserID,
		SubjectID:      record.SubjectID,
		AnalysisMode:   payload.AnalysisMode,
		WeakTopicCount: payload.WeakTopicCount,
		GeneratedAt:    payload.GeneratedAt,
	})
	if err := s.publisher.PublishInsightEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish lesson generated event", "record_id", record.ID, "error", err)
	}
}
