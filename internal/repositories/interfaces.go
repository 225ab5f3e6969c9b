package repositories

import (
	"context"
	"errors"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type SessionFilters struct {
	Status    *models.SessionStatus `json:"status"`
	TestID    *string               `json:"test_id"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortOrder string                `json:"sort_order"` // "asc", "desc" by submitted_at
}

// ===== PER-AGGREGATE REPOSITORIES =====

// TestRepository covers test sets and their questions.
type TestRepository interface {
	Create(ctx context.Context, test *models.Test) error
	GetByTestID(ctx context.Context, testID string) (*models.Test, error)
	GetByType(ctx context.Context, testType models.TestType) (*models.Test, error)
	List(ctx context.Context) ([]*models.Test, error)

	GetQuestions(ctx context.Context, testID string) ([]*models.Question, error)
	GetQuestionsByIDs(ctx context.Context, questionIDs []string) ([]*models.Question, error)
	CreateQuestions(ctx context.Context, questions []*models.Question) error
}

// MissionRepository covers the primary/secondary pairing of the missions test.
type MissionRepository interface {
	Create(ctx context.Context, mission *models.Mission) error
	GetByTestID(ctx context.Context, testID string) ([]*models.Mission, error)
}

// SessionRepository covers submitted sessions and their stored answers.
type SessionRepository interface {
	Create(ctx context.Context, session *models.TestSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.TestSession, error)
	GetBySessionIDWithDetails(ctx context.Context, sessionID string) (*models.TestSession, error)
	GetByUser(ctx context.Context, userID string, filters SessionFilters) ([]*models.TestSession, int64, error)
	UpdateStatus(ctx context.Context, sessionID string, status models.SessionStatus) error

	CreateAnswers(ctx context.Context, answers []*models.StudentAnswer) error
	GetAnswers(ctx context.Context, sessionID string) ([]*models.StudentAnswer, error)
}

// ScoreRepository covers per-cluster and overall score rows.
type ScoreRepository interface {
	// ReplaceForSession atomically swaps the session's score rows; scoring is
	// idempotent per session.
	ReplaceForSession(ctx context.Context, sessionID string, scores []*models.CandidateScore) error
	GetBySession(ctx context.Context, sessionID string) ([]*models.CandidateScore, error)
	// GetClusterScores returns only cluster rows, best first (by correct
	// answer count).
	GetClusterScores(ctx context.Context, sessionID string) ([]*models.CandidateScore, error)
}

// AnswerKeyRepository covers the per-question correct answers.
type AnswerKeyRepository interface {
	GetByQuestionIDs(ctx context.Context, questionIDs []string) ([]*models.CorrectAnswer, error)
	Upsert(ctx context.Context, answer *models.CorrectAnswer) error
}

// PathwayRepository covers pathway narratives and their clusters.
type PathwayRepository interface {
	GetByClusterID(ctx context.Context, clusterID string) (*models.Pathway, error)
	GetClusters(ctx context.Context) ([]*models.Cluster, error)
}

// ===== FACADE =====

// Repository is the facade services depend on. WithTransaction runs fn
// against a facade bound to a single transaction; any error rolls back.
type Repository interface {
	Test() TestRepository
	Mission() MissionRepository
	Session() SessionRepository
	Score() ScoreRepository
	AnswerKey() AnswerKeyRepository
	Pathway() PathwayRepository

	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
}

// IsNotFoundError reports whether err is the storage layer's missing-row
// error, so services can translate it to their own sentinels.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
