package postgres

import (
	"context"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerKeyPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerKeyPostgreSQL(db *gorm.DB) repositories.AnswerKeyRepository {
	return &AnswerKeyPostgreSQL{db: db}
}

func (a *AnswerKeyPostgreSQL) GetByQuestionIDs(ctx context.Context, questionIDs []string) ([]*models.CorrectAnswer, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var answers []*models.CorrectAnswer
	if err := a.db.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (a *AnswerKeyPostgreSQL) Upsert(ctx context.Context, answer *models.CorrectAnswer) error {
	return a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"answer", "updated_at"}),
		}).
		Create(answer).Error
}
