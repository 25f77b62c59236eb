package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type AnalysisMode string

const (
	ModeCumulative AnalysisMode = "Cumulative"
	ModeLatestOnly AnalysisMode = "LatestOnly"
)

type MasteryClass string

const (
	MasteryWeak   MasteryClass = "Weak"
	MasteryStrong MasteryClass = "Strong"
)

// TopicPerformance is the derived, per-topic mastery snapshot. It is
// recomputed on every generation request and only persisted as part of
// an analysis payload, never standalone.
type TopicPerformance struct {
	TopicID           uint            `json:"topic_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Difficulty        DifficultyLevel `json:"difficulty"`
	AveragePercentage float64         `json:"average_percentage"`
	AttemptCount      int             `json:"attempt_count"`
	LastAttemptAt     time.Time       `json:"last_attempt_at"`
	Classification    MasteryClass    `json:"classification"`
}

// AnalysisPayload is the immutable snapshot stored inside a
// WeakLessonRecord. The payload is validated when written; readers can
// trust its shape instead of probing loose JSON.
type AnalysisPayload struct {
	AnalysisMode             AnalysisMode       `json:"analysis_mode" validate:"required,analysis_mode"`
	TotalTopicCount          int                `json:"total_topic_count"`
	AttemptedTopicCount      int                `json:"attempted_topic_count"`
	WeakTopicCount           int                `json:"weak_topic_count"`
	AverageOverallPercentage float64            `json:"average_overall_percentage"`
	WeakTopics               []TopicPerformance `json:"weak_topics"`
	StrongTopics             []TopicPerformance `json:"strong_topics"`
	UnattemptedTopics        []TopicSummary     `json:"unattempted_topics"`
	RemedialContent          string             `json:"remedial_content" validate:"required"`
	GeneratedAt              time.Time          `json:"generated_at"`
}

// WeakLessonRecord is one append-only analysis snapshot scoped to
// (user, subject). Records are never updated or deleted; history
// accumulates per subject so earlier analyses stay auditable.
type WeakLessonRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    string         `json:"user_id" gorm:"not null;size:64;index:idx_weak_lessons_user_subject"`
	SubjectID uint           `json:"subject_id" gorm:"not null;index:idx_weak_lessons_user_subject"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}

func (WeakLessonRecord) TableName() string {
	return "weak_lesson_records"
}

// SetPayload marshals the snapshot into the record, enforcing the
// invariants a persisted record must hold.
func (r *WeakLessonRecord) SetPayload(p *AnalysisPayload) error {
	if p.RemedialContent == "" {
		return errors.New("analysis payload requires remedial content")
	}
	if p.WeakTopicCount != len(p.WeakTopics) {
		return fmt.Errorf("weak topic count %d does not match %d weak topics", p.WeakTopicCount, len(p.WeakTopics))
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis payload: %w", err)
	}
	r.Payload = datatypes.JSON(data)
	return nil
}

// DecodePayload unmarshals the stored snapshot.
func (r *WeakLessonRecord) DecodePayload() (*AnalysisPayload, error) {
	var p AnalysisPayload
	if err := json.Unmarshal(r.Payload, &p); err != nil {
		return nil, fmt.Errorf("failed to decode analysis payload of record %d: %w", r.ID, err)
	}
	return &p, nil
}
