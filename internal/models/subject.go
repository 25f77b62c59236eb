package models

import (
	"time"

	"gorm.io/gorm"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

type Subject struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	// Metadata
	OwnerID   string         `json:"owner_id" gorm:"not null;size:64;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Topics []Topic `json:"topics" gorm:"foreignKey:SubjectID"`
}

type Topic struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SubjectID   uint            `json:"subject_id" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string          `json:"description" gorm:"type:text" validate:"max=2000"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"default:Medium" validate:"omitempty,difficulty_level"`

	// LessonContent holds the study material already generated for the
	// topic, if any. The remediation dossier falls back to a placeholder
	// when this is nil.
	LessonContent *string `json:"lesson_content" gorm:"type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Subject  Subject       `json:"-" gorm:"foreignKey:SubjectID"`
	Attempts []QuizAttempt `json:"-" gorm:"foreignKey:TopicID"`
}

// TopicSummary is the lightweight projection used for unattempted topics
// inside an analysis payload.
type TopicSummary struct {
	TopicID     uint            `json:"topic_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Difficulty  DifficultyLevel `json:"difficulty"`
}

func (t *Topic) Summary() TopicSummary {
	return TopicSummary{
		TopicID:     t.ID,
		Title:       t.Title,
		Description: t.Description,
		Difficulty:  t.Difficulty,
	}
}

func (Subject) TableName() string {
	return "subjects"
}

func (Topic) TableName() string {
	return "topics"
}
