package postgres

import (
	"context"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"gorm.io/gorm"
)

type PathwayPostgreSQL struct {
	db *gorm.DB
}

func NewPathwayPostgreSQL(db *gorm.DB) repositories.PathwayRepository {
	return &PathwayPostgreSQL{db: db}
}

func (p *PathwayPostgreSQL) GetByClusterID(ctx context.Context, clusterID string) (*models.Pathway, error) {
	var pathway models.Pathway
	if err := p.db.WithContext(ctx).
		Where("cluster_id = ?", clusterID).
		First(&pathway).Error; err != nil {
		return nil, err
	}
	return &pathway, nil
}

func (p *PathwayPostgreSQL) GetClusters(ctx context.Context) ([]*models.Cluster, error) {
	var clusters []*models.Cluster
	if err := p.db.WithContext(ctx).
		Order("name ASC").
		Find(&clusters).Error; err != nil {
		return nil, err
	}
	return clusters, nil
}
