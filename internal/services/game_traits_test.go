package services

import (
	"context"
	"math"
	"testing"

	"github.com/pathwise-labs/insights-service/internal/events"
	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGameTraitFixture() (*mockRepository, *events.MockEventPublisher, GameTraitService) {
	logger := testLogger()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := NewGameTraitService(repo, publisher, logger, utils.NewValidator())
	return repo, publisher, service
}

func TestEstimateTraits_CleanSession(t *testing.T) {
	traits := EstimateTraits(&models.GameSessionTelemetry{
		GameName:        "memory-match",
		DurationSeconds: 60,
		Score:           120,
		TotalActions:    90,
		ErrorCount:      0,
	})

	// No errors keeps the raw load at the 20-point baseline, reported
	// inverted as 80.
	assert.Equal(t, 80, traits.CognitiveLoad)
	assert.Equal(t, 70, traits.Focus)
	assert.Equal(t, 85, traits.Attention)
}

func TestEstimateTraits_ErrorHeavySession(t *testing.T) {
	traits := EstimateTraits(&models.GameSessionTelemetry{
		GameName:        "memory-match",
		DurationSeconds: 30,
		Score:           10,
		TotalActions:    20,
		ErrorCount:      20,
	})

	// errorRate 1.0 pushes raw load to the 100 cap, so reported load
	// bottoms out at 0.
	assert.Equal(t, 0, traits.CognitiveLoad)
}

func TestEstimateTraits_ZeroDurationUsesBaselines(t *testing.T) {
	traits := EstimateTraits(&models.GameSessionTelemetry{
		GameName:        "memory-match",
		DurationSeconds: 0,
		Score:           50,
		TotalActions:    10,
		ErrorCount:      2,
	})

	assert.Equal(t, 50, traits.Focus)
	assert.Equal(t, 40, traits.Attention)
}

func TestEstimateTraits_ZeroActionsMeansZeroErrorRate(t *testing.T) {
	traits := EstimateTraits(&models.GameSessionTelemetry{
		GameName:        "memory-match",
		DurationSeconds: 60,
		Score:           0,
		TotalActions:    0,
		ErrorCount:      0,
	})

	assert.Equal(t, 80, traits.CognitiveLoad)
}

func TestEstimateTraits_AllScoresStayWithinBounds(t *testing.T) {
	extremes := []*models.GameSessionTelemetry{
		{DurationSeconds: 0.001, Score: 1e6, TotalActions: 1e6, ErrorCount: 0},
		{DurationSeconds: 1e6, Score: 0, TotalActions: 0, ErrorCount: 0},
		{DurationSeconds: 1, Score: 0, TotalActions: 1, ErrorCount: 1},
	}

	for _, telemetry := range extremes {
		traits := EstimateTraits(telemetry)
		assert.GreaterOrEqual(t, traits.CognitiveLoad, 0)
		assert.LessOrEqual(t, traits.CognitiveLoad, 100)
		assert.GreaterOrEqual(t, traits.Focus, 0)
		assert.LessOrEqual(t, traits.Focus, 100)
		assert.GreaterOrEqual(t, traits.Attention, 0)
		assert.LessOrEqual(t, traits.Attention, 100)
	}
}

func TestAnalyzeSession_PersistsAndPublishes(t *testing.T) {
	repo, publisher, service := newGameTraitFixture()

	repo.gameSession.On("Create", mock.Anything, mock.AnythingOfType("*models.GameSession")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.GameSession).ID = 5
		}).
		Return(nil)

	session, err := service.AnalyzeSession(context.Background(), "student-1", &models.GameSessionTelemetry{
		GameName:        "memory-match",
		DurationSeconds: 60,
		Score:           120,
		TotalActions:    90,
		ErrorCount:      0,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(5), session.ID)
	assert.Equal(t, "student-1", session.UserID)
	assert.Equal(t, 80, session.CognitiveLoad)
	assert.Equal(t, 70, session.Focus)
	assert.Equal(t, 85, session.Attention)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventGameSessionAnalyzed, published[0].Type)
}

func TestAnalyzeSession_RejectsNegativeTelemetry(t *testing.T) {
	repo, _, service := newGameTraitFixture()

	_, err := service.AnalyzeSession(context.Background(), "student-1", &models.GameSessionTelemetry{
		GameName:        "memory-match",
		DurationSeconds: -1,
		Score:           10,
		TotalActions:    5,
		ErrorCount:      0,
	})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	repo.gameSession.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnalyzeSession_RejectsNonFiniteTelemetry(t *testing.T) {
	_, _, service := newGameTraitFixture()

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := service.AnalyzeSession(context.Background(), "student-1", &models.GameSessionTelemetry{
			GameName:        "memory-match",
			DurationSeconds: bad,
			Score:           10,
			TotalActions:    5,
			ErrorCount:      0,
		})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}
}

func TestAnalyzeSession_RejectsMissingGameName(t *testing.T) {
	_, _, service := newGameTraitFixture()

	_, err := service.AnalyzeSession(context.Background(), "student-1", &models.GameSessionTelemetry{
		DurationSeconds: 60,
		Score:           10,
		TotalActions:    5,
	})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
