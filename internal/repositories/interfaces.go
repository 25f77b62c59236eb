package repositories

import (
	"time"
)

// ===== SHARED FILTER STRUCTS =====

// WeakLessonFilters narrows a user's analysis history. SubjectID nil
// means all subjects. Results are always ordered by created_at
// ascending so the last element is the most recent analysis.
type WeakLessonFilters struct {
	SubjectID *uint      `json:"subject_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

type GameSessionFilters struct {
	GameName *string    `json:"game_name"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// Repository aggregates the per-entity repositories so services take a
// single dependency.
type Repository interface {
	Subject() SubjectRepository
	Topic() TopicRepository
	Attempt() AttemptRepository
	WeakLesson() WeakLessonRepository
	GameSession() GameSessionRepository
}
