package pkg

import (
	"fmt"

	"github.com/pathwise-labs/insights-service/internal/config"
	"github.com/pathwise-labs/insights-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates the tables this service owns. Subjects, topics
// and attempts are owned by the curriculum and assessment services;
// they are migrated here only for standalone development setups.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Subject{},
		&models.Topic{},
		&models.QuizAttempt{},
		&models.WeakLessonRecord{},
		&models.GameSession{},
	)
}
