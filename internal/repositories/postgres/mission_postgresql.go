package postgres

import (
	"context"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"gorm.io/gorm"
)

type MissionPostgreSQL struct {
	db *gorm.DB
}

func NewMissionPostgreSQL(db *gorm.DB) repositories.MissionRepository {
	return &MissionPostgreSQL{db: db}
}

func (m *MissionPostgreSQL) Create(ctx context.Context, mission *models.Mission) error {
	return m.db.WithContext(ctx).Create(mission).Error
}

func (m *MissionPostgreSQL) GetByTestID(ctx context.Context, testID string) ([]*models.Mission, error) {
	var missions []*models.Mission
	if err := m.db.WithContext(ctx).
		Where("test_id = ?", testID).
		Order("display_order ASC").
		Find(&missions).Error; err != nil {
		return nil, err
	}
	return missions, nil
}
