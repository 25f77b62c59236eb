package models

import (
	"time"
)

type AttemptKind string

const (
	AttemptKindQuiz AttemptKind = "Quiz"
	AttemptKindExam AttemptKind = "Exam"
)

// QuizAttempt is one historical quiz or exam attempt. This service only
// reads attempts; they are written by the assessment flow.
type QuizAttempt struct {
	ID      uint        `json:"id" gorm:"primaryKey"`
	UserID  string      `json:"user_id" gorm:"not null;size:64;index:idx_attempts_user_topic"`
	TopicID uint        `json:"topic_id" gorm:"not null;index:idx_attempts_user_topic"`
	Kind    AttemptKind `json:"kind" gorm:"default:Quiz" validate:"omitempty,oneof=Quiz Exam"`

	Score       float64   `json:"score" gorm:"not null"`
	TotalMarks  float64   `json:"total_marks" gorm:"not null"`
	CompletedAt time.Time `json:"completed_at" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Topic Topic `json:"-" gorm:"foreignKey:TopicID"`
}

// HasValidMarks reports whether the attempt can contribute to a
// percentage. Records with zero total marks are excluded from
// aggregation rather than dividing by zero.
func (a *QuizAttempt) HasValidMarks() bool {
	return a.TotalMarks > 0
}

// Percentage returns the attempt score as a percentage of total marks.
// Callers must check HasValidMarks first.
func (a *QuizAttempt) Percentage() float64 {
	return a.Score / a.TotalMarks * 100
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
