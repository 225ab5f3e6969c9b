package postgres

import (
	"context"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"gorm.io/gorm"
)

type ScorePostgreSQL struct {
	db *gorm.DB
}

func NewScorePostgreSQL(db *gorm.DB) repositories.ScoreRepository {
	return &ScorePostgreSQL{db: db}
}

func (s *ScorePostgreSQL) ReplaceForSession(ctx context.Context, sessionID string, scores []*models.CandidateScore) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).
			Delete(&models.CandidateScore{}).Error; err != nil {
			return err
		}
		if len(scores) == 0 {
			return nil
		}
		return tx.Create(scores).Error
	})
}

func (s *ScorePostgreSQL) GetBySession(ctx context.Context, sessionID string) ([]*models.CandidateScore, error) {
	var scores []*models.CandidateScore
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *ScorePostgreSQL) GetClusterScores(ctx context.Context, sessionID string) ([]*models.CandidateScore, error) {
	var scores []*models.CandidateScore
	if err := s.db.WithContext(ctx).
		Where("session_id = ? AND cluster_id IS NOT NULL", sessionID).
		Order("correct_answers DESC").
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
