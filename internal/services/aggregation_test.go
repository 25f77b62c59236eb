package services

import (
	"testing"
	"time"

	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTopics() []*models.Topic {
	return []*models.Topic{
		{ID: 1, SubjectID: 10, Title: "Fractions", Description: "Adding fractions", Difficulty: models.DifficultyEasy},
		{ID: 2, SubjectID: 10, Title: "Decimals", Description: "Decimal arithmetic", Difficulty: models.DifficultyMedium},
		{ID: 3, SubjectID: 10, Title: "Percentages", Description: "Percent problems", Difficulty: models.DifficultyHard},
	}
}

func attemptAt(id uint, topicID uint, score, marks float64, completed time.Time) *models.QuizAttempt {
	return &models.QuizAttempt{
		ID:          id,
		UserID:      "student-1",
		TopicID:     topicID,
		Score:       score,
		TotalMarks:  marks,
		CompletedAt: completed,
	}
}

func TestAggregateTopicPerformance_CumulativeAveragesAcrossAttempts(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*models.QuizAttempt{
		attemptAt(1, 1, 6, 10, base),
		attemptAt(2, 1, 9, 10, base.Add(time.Hour)),
		attemptAt(3, 2, 19, 20, base.Add(2*time.Hour)),
	}

	result := AggregateTopicPerformance(testTopics(), attempts, models.ModeCumulative, 95)

	require.Len(t, result.AttemptedTopics, 2)

	fractions := result.AttemptedTopics[0]
	assert.Equal(t, uint(1), fractions.TopicID)
	assert.InDelta(t, 75.0, fractions.AveragePercentage, 0.001)
	assert.Equal(t, 2, fractions.AttemptCount)
	assert.Equal(t, models.MasteryWeak, fractions.Classification)
	assert.Equal(t, base.Add(time.Hour), fractions.LastAttemptAt)

	decimals := result.AttemptedTopics[1]
	assert.Equal(t, uint(2), decimals.TopicID)
	assert.InDelta(t, 95.0, decimals.AveragePercentage, 0.001)
	assert.Equal(t, models.MasteryStrong, decimals.Classification)

	require.Len(t, result.UnattemptedTopics, 1)
	assert.Equal(t, uint(3), result.UnattemptedTopics[0].TopicID)

	// Mean of the per-topic averages, not of the raw attempts.
	assert.InDelta(t, 85.0, result.OverallPercentage, 0.001)
}

func TestAggregateTopicPerformance_CumulativeWeighsByMarks(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*models.QuizAttempt{
		attemptAt(1, 1, 10, 10, base),
		attemptAt(2, 1, 4, 10, base.Add(time.Hour)),
		attemptAt(3, 1, 9, 10, base.Add(2*time.Hour)),
	}

	result := AggregateTopicPerformance(testTopics(), attempts, models.ModeCumulative, 95)

	require.Len(t, result.AttemptedTopics, 1)
	// 23 of 30 marks across three attempts.
	assert.InDelta(t, 76.67, result.AttemptedTopics[0].AveragePercentage, 0.01)
	assert.Equal(t, models.MasteryWeak, result.AttemptedTopics[0].Classification)
}

func TestAggregateTopicPerformance_LatestOnlyStillWeakAfterImprovedRetake(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*models.QuizAttempt{
		attemptAt(1, 1, 10, 10, base),
		attemptAt(2, 1, 4, 10, base.Add(time.Hour)),
		attemptAt(3, 1, 9, 10, base.Add(2*time.Hour)),
	}

	result := AggregateTopicPerformance(testTopics(), attempts, models.ModeLatestOnly, 95)

	require.Len(t, result.AttemptedTopics, 1)
	assert.InDelta(t, 90.0, result.AttemptedTopics[0].AveragePercentage, 0.001)
	assert.Equal(t, models.MasteryWeak, result.AttemptedTopics[0].Classification)
}

func TestAggregateTopicPerformance_ModesAgreeOnSingleAttempt(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*models.QuizAttempt{attemptAt(1, 1, 7, 10, base)}

	cumulative := AggregateTopicPerformance(testTopics(), attempts, models.ModeCumulative, 95)
	latestOnly := AggregateTopicPerformance(testTopics(), attempts, models.ModeLatestOnly, 95)

	require.Len(t, cumulative.AttemptedTopics, 1)
	require.Len(t, latestOnly.AttemptedTopics, 1)
	assert.Equal(t, cumulative.AttemptedTopics[0].AveragePercentage, latestOnly.AttemptedTopics[0].AveragePercentage)
}

func TestAggregateTopicPerformance_LatestOnlyUsesMostRecentAttempt(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*models.QuizAttempt{
		attemptAt(1, 1, 2, 10, base),
		attemptAt(2, 1, 10, 10, base.Add(time.Hour)),
	}

	result := AggregateTopicPerformance(testTopics(), attempts, models.ModeLatestOnly, 95)

	require.Len(t, result.AttemptedTopics, 1)
	perf := result.AttemptedTopics[0]
	assert.InDelta(t, 100.0, perf.AveragePercentage, 0.001)
	assert.Equal(t, models.MasteryStrong, perf.Classification)
	assert.Equal(t, 2, perf.AttemptCount)
}

func TestAggregateTopicPerformance_LatestOnlyBreaksTimestampTiesByHigherID(t *testing.T) {
	tied := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*models.QuizAttempt{
		attemptAt(7, 1, 10, 10, tied),
		attemptAt(8, 1, 4, 10, tied),
	}

	result := AggregateTopicPerformance(testTopics(), attempts, models.ModeLatestOnly, 95)

	require.Len(t, result.AttemptedTopics, 1)
	assert.InDelta(t, 40.0, result.AttemptedTopics[0].AveragePercentage, 0.001)
}

func TestAggregateTopicPerformance_ExcludesAttemptsWithoutValidMarks(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*models.QuizAttempt{
		attemptAt(1, 1, 5, 0, base),
		attemptAt(2, 1, 8, 10, base.Add(time.Hour)),
		// Topic 2 has only an invalid attempt, so it stays unattempted.
		attemptAt(3, 2, 3, 0, base),
	}

	result := AggregateTopicPerformance(testTopics(), attempts, models.ModeCumulative, 95)

	require.Len(t, result.AttemptedTopics, 1)
	assert.Equal(t, uint(1), result.AttemptedTopics[0].TopicID)
	assert.InDelta(t, 80.0, result.AttemptedTopics[0].AveragePercentage, 0.001)
	assert.Equal(t, 1, result.AttemptedTopics[0].AttemptCount)

	require.Len(t, result.UnattemptedTopics, 2)
	assert.Equal(t, uint(2), result.UnattemptedTopics[0].TopicID)
	assert.Equal(t, uint(3), result.UnattemptedTopics[1].TopicID)
}

func TestAggregateTopicPerformance_NoAttemptsAtAll(t *testing.T) {
	result := AggregateTopicPerformance(testTopics(), nil, models.ModeCumulative, 95)

	assert.Empty(t, result.AttemptedTopics)
	assert.Len(t, result.UnattemptedTopics, 3)
	assert.Zero(t, result.OverallPercentage)
}

func TestAggregateTopicPerformance_OutputOrderedByTopicID(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	attempts := []*models.QuizAttempt{
		attemptAt(1, 3, 5, 10, base),
		attemptAt(2, 1, 5, 10, base),
		attemptAt(3, 2, 5, 10, base),
	}

	result := AggregateTopicPerformance(testTopics(), attempts, models.ModeCumulative, 95)

	require.Len(t, result.AttemptedTopics, 3)
	assert.Equal(t, uint(1), result.AttemptedTopics[0].TopicID)
	assert.Equal(t, uint(2), result.AttemptedTopics[1].TopicID)
	assert.Equal(t, uint(3), result.AttemptedTopics[2].TopicID)
}
