package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	apperrors "github.com/pathwise-labs/insights-service/internal/errors"
	"github.com/pathwise-labs/insights-service/internal/events"
	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"github.com/pathwise-labs/insights-service/internal/utils"
)

// GameTraitService estimates cognitive trait scores from mini-game
// telemetry and keeps a per-user session log.
type GameTraitService interface {
	AnalyzeSession(ctx context.Context, userID string, telemetry *models.GameSessionTelemetry) (*models.GameSession, error)
	ListSessions(ctx context.Context, userID string, filters repositories.GameSessionFilters) ([]*models.GameSession, error)
}

type gameTraitService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *utils.Validator
}

func NewGameTraitService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) GameTraitService {
	return &gameTraitService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// EstimateTraits maps raw session counters onto 0-100 trait scores.
//
// Error rate drives load: rawLoad = errorRate*100 + 20, clamped, then
// inverted so that a higher reported CognitiveLoad means more headroom.
// Focus rewards points per second; Attention rewards actions per second.
// A zero duration contributes only the baseline terms.
func EstimateTraits(t *models.GameSessionTelemetry) models.TraitScores {
	errorRate := 0.0
	if t.TotalActions > 0 {
		errorRate = float64(t.ErrorCount) / float64(t.TotalActions)
	}
	rawLoad := clampScore(errorRate*100 + 20)

	focus := 50.0
	attention := 40.0
	if t.DurationSeconds > 0 {
		focus = t.Score/t.DurationSeconds*10 + 50
		attention = float64(t.TotalActions)/t.DurationSeconds*30 + 40
	}

	return models.TraitScores{
		CognitiveLoad: 100 - rawLoad,
		Focus:         clampScore(focus),
		Attention:     clampScore(attention),
	}
}

func clampScore(v float64) int {
	return int(math.Min(100, math.Max(0, math.Round(v))))
}

func (s *gameTraitService) AnalyzeSession(ctx context.Context, userID string, telemetry *models.GameSessionTelemetry) (*models.GameSession, error) {
	if err := s.validator.ValidateStruct(telemetry); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	traits := EstimateTraits(telemetry)

	session := &models.GameSession{
		UserID:          userID,
		GameName:        telemetry.GameName,
		DurationSeconds: telemetry.DurationSeconds,
		Score:           telemetry.Score,
		TotalActions:    telemetry.TotalActions,
		ErrorCount:      telemetry.ErrorCount,
		CognitiveLoad:   traits.CognitiveLoad,
		Focus:           traits.Focus,
		Attention:       traits.Attention,
	}

	if err := s.repo.GameSession().Create(ctx, session); err != nil {
		return nil, NewPersistenceError("game session insert", err)
	}

	s.logger.Info("Analyzed game session",
		"user_id", userID,
		"game_name", session.GameName,
		"cognitive_load", traits.CognitiveLoad,
		"focus", traits.Focus,
		"attention", traits.Attention)

	s.publishSessionAnalyzed(ctx, session)

	return session, nil
}

func (s *gameTraitService) ListSessions(ctx context.Context, userID string, filters repositories.GameSessionFilters) ([]*models.GameSession, error) {
	sessions, err := s.repo.GameSession().ListByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list game sessions: %w", err)
	}
	return sessions, nil
}

func (s *gameTraitService) publishSessionAnalyzed(ctx context.Context, session *models.GameSession) {
	event := events.NewInsightEvent(events.EventGameSessionAnalyzed, events.GameSessionAnalyzedEvent{
		SessionID: session.ID,
		UserID:    session.UserID,
		GameName:  session.GameName,
		Traits:    session.Traits(),
	})
	if err := s.publisher.PublishInsightEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish game session event", "session_id", session.ID, "error", err)
	}
}
