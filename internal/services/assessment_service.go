package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PathFinder-2025/discovery-service/internal/cache"
	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/quiz"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
)

// QuestionSet is one test's questions in client order, stamped with the
// version token the payload was built under.
type QuestionSet struct {
	TestID    string          `json:"testId"`
	Name      string          `json:"name"`
	Type      models.TestType `json:"type"`
	Version   string          `json:"version"`
	Questions []quiz.Question `json:"questions"`
}

// TestSets is the full quiz payload. Both sets must be present; a quiz
// cannot run on a partial payload.
type TestSets struct {
	General  *QuestionSet `json:"general"`
	Missions *QuestionSet `json:"missions"`
}

// VersionInfo carries the current version token per test type.
type VersionInfo struct {
	General  string `json:"general"`
	Missions string `json:"missions"`
}

type AssessmentService interface {
	// GetTestSets returns both question sets. A missing general or missions
	// set is an error, never a partial payload.
	GetTestSets(ctx context.Context) (*TestSets, error)

	// GetQuestionSet returns one test type's questions, served from cache
	// when the cached copy is still on the current version.
	GetQuestionSet(ctx context.Context, testType models.TestType) (*QuestionSet, error)

	// GetVersion returns the current version tokens without payloads, for
	// cheap client-side staleness checks.
	GetVersion(ctx context.Context) (*VersionInfo, error)

	// ListTests returns metadata for every deployed test, without question
	// payloads.
	ListTests(ctx context.Context) ([]*models.Test, error)
}

type assessmentService struct {
	repo   repositories.Repository
	cache  cache.QuestionCache
	logger *slog.Logger
	now    func() time.Time
}

func NewAssessmentService(repo repositories.Repository, questionCache cache.QuestionCache, logger *slog.Logger) AssessmentService {
	return &assessmentService{
		repo:   repo,
		cache:  questionCache,
		logger: logger,
		now:    time.Now,
	}
}

func (s *assessmentService) GetTestSets(ctx context.Context) (*TestSets, error) {
	general, err := s.GetQuestionSet(ctx, models.TestTypeGeneral)
	if err != nil {
		return nil, err
	}
	missions, err := s.GetQuestionSet(ctx, models.TestTypeMissions)
	if err != nil {
		return nil, err
	}
	return &TestSets{General: general, Missions: missions}, nil
}

func (s *assessmentService) GetQuestionSet(ctx context.Context, testType models.TestType) (*QuestionSet, error) {
	test, err := s.repo.Test().GetByType(ctx, testType)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.logger.Error("Required question set missing", "test_type", testType)
			return nil, fmt.Errorf("%w: %s", ErrQuestionSetIncomplete, testType)
		}
		return nil, fmt.Errorf("failed to load %s test: %w", testType, err)
	}
	version := test.VersionToken()

	if set := s.fromCache(ctx, testType, version); set != nil {
		return set, nil
	}

	rows, err := s.repo.Test().GetQuestions(ctx, test.TestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for %s: %w", testType, err)
	}
	questions := make([]quiz.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.ToQuizQuestion()
		if err != nil {
			// One bad row poisons the whole set; serving a quiz with holes
			// would break scoring downstream.
			return nil, fmt.Errorf("question set %s: %w", testType, err)
		}
		questions = append(questions, *q)
	}

	set := &QuestionSet{
		TestID:    test.TestID,
		Name:      test.Name,
		Type:      testType,
		Version:   version,
		Questions: questions,
	}
	s.toCache(ctx, set)
	return set, nil
}

func (s *assessmentService) GetVersion(ctx context.Context) (*VersionInfo, error) {
	general, err := s.repo.Test().GetByType(ctx, models.TestTypeGeneral)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrQuestionSetIncomplete, models.TestTypeGeneral)
		}
		return nil, err
	}
	missions, err := s.repo.Test().GetByType(ctx, models.TestTypeMissions)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrQuestionSetIncomplete, models.TestTypeMissions)
		}
		return nil, err
	}
	return &VersionInfo{
		General:  general.VersionToken(),
		Missions: missions.VersionToken(),
	}, nil
}

func (s *assessmentService) ListTests(ctx context.Context) ([]*models.Test, error) {
	tests, err := s.repo.Test().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	return tests, nil
}

// fromCache returns the cached set when it is still fresh for the current
// version. Cache trouble is never fatal; the database is authoritative.
func (s *assessmentService) fromCache(ctx context.Context, testType models.TestType, version string) *QuestionSet {
	entry, err := s.cache.Get(ctx, testType)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Question cache read failed", "test_type", testType, "error", err)
		}
		return nil
	}
	if !entry.Fresh(version, s.now()) {
		return nil
	}

	var set QuestionSet
	if err := json.Unmarshal(entry.Payload, &set); err != nil {
		s.logger.Warn("Question cache payload unreadable", "test_type", testType, "error", err)
		return nil
	}
	return &set
}

func (s *assessmentService) toCache(ctx context.Context, set *QuestionSet) {
	payload, err := json.Marshal(set)
	if err != nil {
		s.logger.Warn("Failed to serialize question set for cache", "test_type", set.Type, "error", err)
		return
	}
	if err := s.cache.Set(ctx, set.Type, payload, set.Version); err != nil {
		s.logger.Warn("Question cache write failed", "test_type", set.Type, "error", err)
	}
}
