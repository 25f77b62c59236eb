package postgres

import (
	"context"

	"github.com/pathwise-labs/insights-service/internal/models"
	"github.com/pathwise-labs/insights-service/internal/repositories"
	"gorm.io/gorm"
)

type SubjectPostgreSQL struct {
	db *gorm.DB
}

func NewSubjectPostgreSQL(db *gorm.DB) repositories.SubjectRepository {
	return &SubjectPostgreSQL{db: db}
}

func (s SubjectPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s SubjectPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Subject{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type TopicPostgreSQL struct {
	db *gorm.DB
}

func NewTopicPostgreSQL(db *gorm.DB) repositories.TopicRepository {
	return &TopicPostgreSQL{db: db}
}

func (t TopicPostgreSQL) GetBySubject(ctx context.Context, subjectID uint) ([]*models.Topic, error) {
	var topics []*models.Topic
	if err := t.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("id ASC").
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (t TopicPostgreSQL) CountBySubject(ctx context.Context, subjectID uint) (int64, error) {
	var count int64
	err := t.db.WithContext(ctx).Model(&models.Topic{}).Where("subject_id = ?", subjectID).Count(&count).Error
	return count, err
}

func (t TopicPostgreSQL) GetLessonText(ctx context.Context, topicID uint) (*string, error) {
	var topic models.Topic
	if err := t.db.WithContext(ctx).Select("lesson_content").First(&topic, topicID).Error; err != nil {
		return nil, err
	}
	return topic.LessonContent, nil
}
