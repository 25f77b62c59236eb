package models

import (
	"time"
)

// GameSessionTelemetry is the raw counters reported by a finished
// mini-game session. All values must be non-negative and finite.
type GameSessionTelemetry struct {
	GameName        string  `json:"game_name" validate:"required,min=1,max=100"`
	DurationSeconds float64 `json:"duration_seconds" validate:"finite_non_negative"`
	Score           float64 `json:"score" validate:"finite_non_negative"`
	TotalActions    int     `json:"total_actions" validate:"min=0"`
	ErrorCount      int     `json:"error_count" validate:"min=0"`
}

// TraitScores are the normalized 0-100 cognitive trait estimates derived
// from a game session. CognitiveLoad is reported inverted: lower means
// less load.
type TraitScores struct {
	CognitiveLoad int `json:"cognitive_load"`
	Focus         int `json:"focus"`
	Attention     int `json:"attention"`
}

// GameSession persists one analyzed session, keyed by
// (user, game, created_at).
type GameSession struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   string `json:"user_id" gorm:"not null;size:64;index:idx_game_sessions_user_game"`
	GameName string `json:"game_name" gorm:"not null;size:100;index:idx_game_sessions_user_game"`

	DurationSeconds float64 `json:"duration_seconds" gorm:"not null"`
	Score           float64 `json:"score" gorm:"not null"`
	TotalActions    int     `json:"total_actions" gorm:"not null"`
	ErrorCount      int     `json:"error_count" gorm:"not null"`

	CognitiveLoad int `json:"cognitive_load" gorm:"not null"`
	Focus         int `json:"focus" gorm:"not null"`
	Attention     int `json:"attention" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (GameSession) TableName() string {
	return "game_sessions"
}

func (s *GameSession) Traits() TraitScores {
	return TraitScores{
		CognitiveLoad: s.CognitiveLoad,
		Focus:         s.Focus,
		Attention:     s.Attention,
	}
}
