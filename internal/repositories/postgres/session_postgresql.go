package postgres

import (
	"context"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"gorm.io/gorm"
)

type SessionPostgreSQL struct {
	db *gorm.DB
}

func NewSessionPostgreSQL(db *gorm.DB) repositories.SessionRepository {
	return &SessionPostgreSQL{db: db}
}

func (s *SessionPostgreSQL) Create(ctx context.Context, session *models.TestSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *SessionPostgreSQL) GetBySessionID(ctx context.Context, sessionID string) (*models.TestSession, error) {
	var session models.TestSession
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionPostgreSQL) GetBySessionIDWithDetails(ctx context.Context, sessionID string) (*models.TestSession, error) {
	var session models.TestSession
	if err := s.db.WithContext(ctx).
		Preload("Answers").
		Preload("Scores").
		Where("session_id = ?", sessionID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionPostgreSQL) GetByUser(ctx context.Context, userID string, filters repositories.SessionFilters) ([]*models.TestSession, int64, error) {
	var sessions []*models.TestSession
	var total int64

	query := s.db.WithContext(ctx).Model(&models.TestSession{}).Where("user_id = ?", userID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.TestID != nil {
		query = query.Where("test_id = ?", *filters.TestID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "submitted_at DESC"
	if filters.SortOrder == "asc" {
		order = "submitted_at ASC"
	}
	query = query.Order(order)
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (s *SessionPostgreSQL) UpdateStatus(ctx context.Context, sessionID string, status models.SessionStatus) error {
	return s.db.WithContext(ctx).
		Model(&models.TestSession{}).
		Where("session_id = ?", sessionID).
		Update("status", status).Error
}

func (s *SessionPostgreSQL) CreateAnswers(ctx context.Context, answers []*models.StudentAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(answers).Error
}

func (s *SessionPostgreSQL) GetAnswers(ctx context.Context, sessionID string) ([]*models.StudentAnswer, error) {
	var answers []*models.StudentAnswer
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}
