package postgres

import (
	"context"

	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"gorm.io/gorm"
)

// Repository is the gorm-backed facade. Each accessor returns a repository
// bound to the same *gorm.DB, so a facade built inside WithTransaction keeps
// every operation on the transaction.
type Repository struct {
	db *gorm.DB

	test      repositories.TestRepository
	mission   repositories.MissionRepository
	session   repositories.SessionRepository
	score     repositories.ScoreRepository
	answerKey repositories.AnswerKeyRepository
	pathway   repositories.PathwayRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:        db,
		test:      NewTestPostgreSQL(db),
		mission:   NewMissionPostgreSQL(db),
		session:   NewSessionPostgreSQL(db),
		score:     NewScorePostgreSQL(db),
		answerKey: NewAnswerKeyPostgreSQL(db),
		pathway:   NewPathwayPostgreSQL(db),
	}
}

func (r *Repository) Test() repositories.TestRepository           { return r.test }
func (r *Repository) Mission() repositories.MissionRepository     { return r.mission }
func (r *Repository) Session() repositories.SessionRepository     { return r.session }
func (r *Repository) Score() repositories.ScoreRepository         { return r.score }
func (r *Repository) AnswerKey() repositories.AnswerKeyRepository { return r.answerKey }
func (r *Repository) Pathway() repositories.PathwayRepository     { return r.pathway }

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
