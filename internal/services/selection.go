package services

import (
	"github.com/pathwise-labs/insights-service/internal/models"
)

// MasteryPartition splits attempted topics into the weak and strong
// buckets. Every attempted topic lands in exactly one bucket.
type MasteryPartition struct {
	Weak   []models.TopicPerformance `json:"weak"`
	Strong []models.TopicPerformance `json:"strong"`
}

// PartitionByMastery partitions attempted topics at the threshold:
// weak iff average percentage is strictly below it, so a topic sitting
// exactly on the threshold is strong. Pure, no I/O; input order is
// preserved within each bucket.
func PartitionByMastery(performances []models.TopicPerformance, threshold float64) MasteryPartition {
	partition := MasteryPartition{
		Weak:   make([]models.TopicPerformance, 0, len(performances)),
		Strong: make([]models.TopicPerformance, 0, len(performances)),
	}

	for _, perf := range performances {
		perf.Classification = classify(perf.AveragePercentage, threshold)
		if perf.Classification == models.MasteryWeak {
			partition.Weak = append(partition.Weak, perf)
		} else {
			partition.Strong = append(partition.Strong, perf)
		}
	}

	return partition
}
