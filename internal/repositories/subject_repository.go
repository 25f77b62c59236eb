package repositories

import (
	"context"

	"github.com/pathwise-labs/insights-service/internal/models"
)

// SubjectRepository provides read access to subjects. This service does
// not own subject data; creation and editing happen elsewhere.
type SubjectRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Subject, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
}

// TopicRepository provides read access to a subject's topics and their
// stored lesson text.
type TopicRepository interface {
	GetBySubject(ctx context.Context, subjectID uint) ([]*models.Topic, error)
	CountBySubject(ctx context.Context, subjectID uint) (int64, error)

	// GetLessonText returns the existing lesson content for a topic, or
	// nil when none has been generated yet.
	GetLessonText(ctx context.Context, topicID uint) (*string, error)
}

// AttemptRepository provides read-only access to historical quiz/exam
// attempts. Attempts are written by the assessment flow, never here.
type AttemptRepository interface {
	// GetBySubject returns every attempt the user made on topics of the
	// subject, ordered by completed_at ascending.
	GetBySubject(ctx context.Context, userID string, subjectID uint) ([]*models.QuizAttempt, error)
	CountBySubject(ctx context.Context, userID string, subjectID uint) (int64, error)
}
