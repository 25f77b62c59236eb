package services

import (
	"sort"
	"time"

	"github.com/pathwise-labs/insights-service/internal/models"
)

// AggregationResult is the outcome of grouping a user's attempt history
// by topic for one subject.
type AggregationResult struct {
	AttemptedTopics   []models.TopicPerformance `json:"attempted_topics"`
	UnattemptedTopics []models.TopicSummary     `json:"unattempted_topics"`

	// OverallPercentage is the mean of the attempted topics' average
	// percentages. Zero when nothing was attempted.
	OverallPercentage float64 `json:"overall_percentage"`
}

// AggregateTopicPerformance groups attempts by topic and computes each
// attempted topic's mastery percentage under the given mode.
//
// Attempts with total_marks <= 0 cannot produce a percentage and are
// excluded; a topic whose attempts are all excluded counts as
// unattempted. Results are ordered by topic id so repeated runs over
// the same data produce identical output.
func AggregateTopicPerformance(
	topics []*models.Topic,
	attempts []*models.QuizAttempt,
	mode models.AnalysisMode,
	threshold float64,
) AggregationResult {
	byTopic := make(map[uint][]*models.QuizAttempt)
	for _, attempt := range attempts {
		if !attempt.HasValidMarks() {
			continue
		}
		byTopic[attempt.TopicID] = append(byTopic[attempt.TopicID], attempt)
	}

	var result AggregationResult
	for _, topic := range topics {
		topicAttempts := byTopic[topic.ID]
		if len(topicAttempts) == 0 {
			result.UnattemptedTopics = append(result.UnattemptedTopics, topic.Summary())
			continue
		}

		perf := models.TopicPerformance{
			TopicID:           topic.ID,
			Title:             topic.Title,
			Description:       topic.Description,
			Difficulty:        topic.Difficulty,
			AttemptCount:      len(topicAttempts),
			LastAttemptAt:     latestCompletion(topicAttempts),
			AveragePercentage: averagePercentage(topicAttempts, mode),
		}
		perf.Classification = classify(perf.AveragePercentage, threshold)

		result.AttemptedTopics = append(result.AttemptedTopics, perf)
	}

	sort.Slice(result.AttemptedTopics, func(i, j int) bool {
		return result.AttemptedTopics[i].TopicID < result.AttemptedTopics[j].TopicID
	})
	sort.Slice(result.UnattemptedTopics, func(i, j int) bool {
		return result.UnattemptedTopics[i].TopicID < result.UnattemptedTopics[j].TopicID
	})

	if len(result.AttemptedTopics) > 0 {
		var sum float64
		for _, perf := range result.AttemptedTopics {
			sum += perf.AveragePercentage
		}
		result.OverallPercentage = sum / float64(len(result.AttemptedTopics))
	}

	return result
}

func averagePercentage(attempts []*models.QuizAttempt, mode models.AnalysisMode) float64 {
	if mode == models.ModeLatestOnly {
		return latestAttempt(attempts).Percentage()
	}

	var scoreSum, marksSum float64
	for _, attempt := range attempts {
		scoreSum += attempt.Score
		marksSum += attempt.TotalMarks
	}
	return scoreSum / marksSum * 100
}

// latestAttempt picks the most recent attempt by completion time,
// breaking ties by the higher record id.
func latestAttempt(attempts []*models.QuizAttempt) *models.QuizAttempt {
	latest := attempts[0]
	for _, attempt := range attempts[1:] {
		if attempt.CompletedAt.After(latest.CompletedAt) {
			latest = attempt
			continue
		}
		if attempt.CompletedAt.Equal(latest.CompletedAt) && attempt.ID > latest.ID {
			latest = attempt
		}
	}
	return latest
}

func latestCompletion(attempts []*models.QuizAttempt) time.Time {
	latest := attempts[0].CompletedAt
	for _, attempt := range attempts[1:] {
		if attempt.CompletedAt.After(latest) {
			latest = attempt.CompletedAt
		}
	}
	return latest
}

func classify(percentage, threshold float64) models.MasteryClass {
	if percentage < threshold {
		return models.MasteryWeak
	}
	return models.MasteryStrong
}
