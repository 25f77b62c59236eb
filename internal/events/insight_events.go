package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/pathwise-labs/insights-service/internal/models"
)

type EventType string

const (
	EventLessonGenerated     EventType = "insights.lesson.generated"
	EventGameSessionAnalyzed EventType = "insights.game_session.analyzed"
)

const (
	eventSource  = "insights-service"
	eventVersion = "1.0"
)

// InsightEvent is the envelope published for every analysis outcome.
type InsightEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// LessonGeneratedEvent is emitted after a weak-lesson record is
// persisted.
type LessonGeneratedEvent struct {
	RecordID       uint                `json:"record_id"`
	UserID         string              `json:"user_id"`
	SubjectID      uint                `json:"subject_id"`
	AnalysisMode   models.AnalysisMode `json:"analysis_mode"`
	WeakTopicCount int                 `json:"weak_topic_count"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// GameSessionAnalyzedEvent is emitted after a game session's trait
// scores are persisted.
type GameSessionAnalyzedEvent struct {
	SessionID uint               `json:"session_id"`
	UserID    string             `json:"user_id"`
	GameName  string             `json:"game_name"`
	Traits    models.TraitScores `json:"traits"`
}

// NewInsightEvent wraps payload data in the standard envelope.
func NewInsightEvent(eventType EventType, data interface{}) *InsightEvent {
	return &InsightEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
