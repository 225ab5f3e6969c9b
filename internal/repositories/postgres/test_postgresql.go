package postgres

import (
	"context"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"gorm.io/gorm"
)

type TestPostgreSQL struct {
	db *gorm.DB
}

func NewTestPostgreSQL(db *gorm.DB) repositories.TestRepository {
	return &TestPostgreSQL{db: db}
}

func (t *TestPostgreSQL) Create(ctx context.Context, test *models.Test) error {
	return t.db.WithContext(ctx).Create(test).Error
}

func (t *TestPostgreSQL) GetByTestID(ctx context.Context, testID string) (*models.Test, error) {
	var test models.Test
	if err := t.db.WithContext(ctx).
		Where("test_id = ?", testID).
		First(&test).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (t *TestPostgreSQL) GetByType(ctx context.Context, testType models.TestType) (*models.Test, error) {
	var test models.Test
	if err := t.db.WithContext(ctx).
		Where("type = ? AND active = ?", testType, true).
		Order("version DESC").
		First(&test).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (t *TestPostgreSQL) List(ctx context.Context) ([]*models.Test, error) {
	var tests []*models.Test
	if err := t.db.WithContext(ctx).
		Where("active = ?", true).
		Order("type ASC, version DESC").
		Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}

func (t *TestPostgreSQL) GetQuestions(ctx context.Context, testID string) ([]*models.Question, error) {
	var questions []*models.Question
	if err := t.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("display_order ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (t *TestPostgreSQL) GetQuestionsByIDs(ctx context.Context, questionIDs []string) ([]*models.Question, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var questions []*models.Question
	if err := t.db.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (t *TestPostgreSQL) CreateQuestions(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return t.db.WithContext(ctx).Create(questions).Error
}
