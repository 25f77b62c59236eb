package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pathwise-labs/insights-service/internal/generation"
	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPartition() MasteryPartition {
	return MasteryPartition{
		Weak: []models.TopicPerformance{
			{TopicID: 2, Title: "Decimals", Description: "Decimal arithmetic", Difficulty: models.DifficultyMedium, AveragePercentage: 61.5, AttemptCount: 4, Classification: models.MasteryWeak},
			{TopicID: 1, Title: "Fractions", Description: "Adding fractions", Difficulty: models.DifficultyEasy, AveragePercentage: 72.25, AttemptCount: 2, Classification: models.MasteryWeak},
		},
		Strong: []models.TopicPerformance{
			{TopicID: 3, Title: "Percentages", AveragePercentage: 98.0, Classification: models.MasteryStrong},
		},
	}
}

func TestBuildDossier_Deterministic(t *testing.T) {
	svc := NewRemediationService(generation.NewMockGenerator(), testLogger())

	unattempted := []models.TopicSummary{{TopicID: 4, Title: "Ratios", Difficulty: models.DifficultyHard}}
	lessons := map[uint]string{1: "A fraction has a numerator and a denominator."}

	first := svc.BuildDossier("Mathematics", testPartition(), unattempted, lessons)
	second := svc.BuildDossier("Mathematics", testPartition(), unattempted, lessons)

	assert.Equal(t, first, second)
}

func TestBuildDossier_SortsWeakTopicsByID(t *testing.T) {
	svc := NewRemediationService(generation.NewMockGenerator(), testLogger())

	dossier := svc.BuildDossier("Mathematics", testPartition(), nil, nil)

	fractionsIdx := strings.Index(dossier, "Fractions")
	decimalsIdx := strings.Index(dossier, "Decimals")
	require.NotEqual(t, -1, fractionsIdx)
	require.NotEqual(t, -1, decimalsIdx)
	assert.Less(t, fractionsIdx, decimalsIdx)
}

func TestBuildDossier_IncludesLessonTextWhenPresent(t *testing.T) {
	svc := NewRemediationService(generation.NewMockGenerator(), testLogger())

	lessons := map[uint]string{1: "A fraction has a numerator and a denominator."}
	dossier := svc.BuildDossier("Mathematics", testPartition(), nil, lessons)

	assert.Contains(t, dossier, "A fraction has a numerator and a denominator.")
	// Decimals has no stored lesson, so the dossier points at its
	// title, difficulty and description instead.
	assert.Contains(t, dossier, `none yet for "Decimals" (Medium difficulty)`)
	assert.Contains(t, dossier, "Decimal arithmetic")
}

func TestBuildDossier_MentionsMasteredAndUnattemptedForContext(t *testing.T) {
	svc := NewRemediationService(generation.NewMockGenerator(), testLogger())

	unattempted := []models.TopicSummary{{TopicID: 4, Title: "Ratios", Difficulty: models.DifficultyHard}}
	dossier := svc.BuildDossier("Mathematics", testPartition(), unattempted, nil)

	assert.Contains(t, dossier, "Percentages")
	assert.Contains(t, dossier, "do not re-teach")
	assert.Contains(t, dossier, "Ratios")
	assert.Contains(t, dossier, "not yet attempted")
}

func TestRequestContent_ReturnsGeneratedText(t *testing.T) {
	gen := generation.NewMockGenerator()
	gen.Response = "Lesson: start with halves and quarters."
	svc := NewRemediationService(gen, testLogger())

	content, err := svc.RequestContent(context.Background(), "dossier")

	require.NoError(t, err)
	assert.Equal(t, "Lesson: start with halves and quarters.", content)
	assert.Equal(t, 1, gen.CallCount())
}

func TestRequestContent_WrapsProviderFailure(t *testing.T) {
	gen := generation.NewMockGenerator()
	gen.Err = errors.New("provider timeout")
	svc := NewRemediationService(gen, testLogger())

	_, err := svc.RequestContent(context.Background(), "dossier")

	require.Error(t, err)
	assert.True(t, IsGenerationFailure(err))
}

func TestRequestContent_RejectsBlankOutput(t *testing.T) {
	gen := generation.NewMockGenerator()
	gen.Response = "   \n\t  "
	svc := NewRemediationService(gen, testLogger())

	_, err := svc.RequestContent(context.Background(), "dossier")

	require.Error(t, err)
	assert.True(t, IsGenerationFailure(err))
	assert.ErrorIs(t, err, generation.ErrEmptyResponse)
}

func TestRequestContent_RespectsContextCancellation(t *testing.T) {
	gen := generation.NewMockGenerator()
	gen.Err = context.DeadlineExceeded
	svc := NewRemediationService(gen, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	_, err := svc.RequestContent(ctx, "dossier")

	require.Error(t, err)
	assert.True(t, IsGenerationFailure(err))
}
