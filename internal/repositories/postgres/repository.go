package postgres

import (
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"gorm.io/gorm"
)

type gormRepository struct {
	subject     repositories.SubjectRepository
	topic       repositories.TopicRepository
	attempt     repositories.AttemptRepository
	weakLesson  repositories.WeakLessonRepository
	gameSession repositories.GameSessionRepository
}

// NewRepository wires the gorm-backed repositories behind the aggregate
// interface services depend on.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{
		subject:     NewSubjectPostgreSQL(db),
		topic:       NewTopicPostgreSQL(db),
		attempt:     NewAttemptPostgreSQL(db),
		weakLesson:  NewWeakLessonPostgreSQL(db),
		gameSession: NewGameSessionPostgreSQL(db),
	}
}

func (r *gormRepository) Subject() repositories.SubjectRepository {
	return r.subject
}

func (r *gormRepository) Topic() repositories.TopicRepository {
	return r.topic
}

func (r *gormRepository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

func (r *gormRepository) WeakLesson() repositories.WeakLessonRepository {
	return r.weakLesson
}

func (r *gormRepository) GameSession() repositories.GameSessionRepository {
	return r.gameSession
}
