package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pathwise-labs/insights-service/internal/generation"
	"github.com/pathwise-labs/insights-service/internal/models"
)

// RemediationService assembles the weak-topic dossier and delegates to
// the external content generation capability. It owns exactly two
// responsibilities: producing a byte-identical dossier for identical
// input data, and rejecting empty generation results.
type RemediationService interface {
	BuildDossier(subjectName string, partition MasteryPartition, unattempted []models.TopicSummary, lessonTexts map[uint]string) string
	RequestContent(ctx context.Context, dossier string) (string, error)
}

type remediationService struct {
	generator generation.ContentGenerator
	logger    *slog.Logger
}

func NewRemediationService(generator generation.ContentGenerator, logger *slog.Logger) RemediationService {
	return &remediationService{
		generator: generator,
		logger:    logger,
	}
}

// BuildDossier renders the weak-topic analysis as a prompt document.
// Topics are sorted by id and numbers formatted to two decimals, so two
// calls over the same data yield the same bytes.
func (s *remediationService) BuildDossier(
	subjectName string,
	partition MasteryPartition,
	unattempted []models.TopicSummary,
	lessonTexts map[uint]string,
) string {
	weak := make([]models.TopicPerformance, len(partition.Weak))
	copy(weak, partition.Weak)
	sort.Slice(weak, func(i, j int) bool { return weak[i].TopicID < weak[j].TopicID })

	strong := make([]models.TopicPerformance, len(partition.Strong))
	copy(strong, partition.Strong)
	sort.Slice(strong, func(i, j int) bool { return strong[i].TopicID < strong[j].TopicID })

	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n\n", subjectName)
	fmt.Fprintf(&b, "The student shows weak mastery in %d topic(s). Generate remedial study material for each weak topic below.\n\n", len(weak))

	b.WriteString("## Weak topics\n\n")
	for i, topic := range weak {
		fmt.Fprintf(&b, "%d. %s (difficulty: %s, average score: %.2f%%, attempts: %d)\n",
			i+1, topic.Title, topic.Difficulty, topic.AveragePercentage, topic.AttemptCount)
		fmt.Fprintf(&b, "   Description: %s\n", topic.Description)
		if lesson, ok := lessonTexts[topic.TopicID]; ok && lesson != "" {
			fmt.Fprintf(&b, "   Existing lesson material:\n%s\n", indent(lesson, "   "))
		} else {
			fmt.Fprintf(&b, "   Existing lesson material: none yet for %q (%s difficulty). Work from the description: %s\n",
				topic.Title, topic.Difficulty, topic.Description)
		}
		b.WriteString("\n")
	}

	if len(strong) > 0 {
		b.WriteString("## Topics already mastered (for context, do not re-teach)\n\n")
		for _, topic := range strong {
			fmt.Fprintf(&b, "- %s (average score: %.2f%%)\n", topic.Title, topic.AveragePercentage)
		}
		b.WriteString("\n")
	}

	if len(unattempted) > 0 {
		b.WriteString("## Topics not yet attempted (for context only)\n\n")
		for _, topic := range unattempted {
			fmt.Fprintf(&b, "- %s (difficulty: %s)\n", topic.Title, topic.Difficulty)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RequestContent calls the generation capability once. Empty responses
// and provider failures both surface as a GenerationFailedError.
func (s *remediationService) RequestContent(ctx context.Context, dossier string) (string, error) {
	s.logger.Info("Requesting remedial content", "model", s.generator.ModelID(), "dossier_bytes", len(dossier))

	content, err := s.generator.GenerateRemedialContent(ctx, dossier)
	if err != nil {
		return "", NewGenerationFailedError(err)
	}
	if strings.TrimSpace(content) == "" {
		return "", NewGenerationFailedError(generation.ErrEmptyResponse)
	}

	return content, nil
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
