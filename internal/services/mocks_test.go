package services

import (
	"context"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockTestRepository is a mock implementation of TestRepository
type MockTestRepository struct {
	mock.Mock
}

func (m *MockTestRepository) Create(ctx context.Context, test *models.Test) error {
	args := m.Called(ctx, test)
	return args.Error(0)
}

func (m *MockTestRepository) GetByTestID(ctx context.Context, testID string) (*models.Test, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Test), args.Error(1)
}

func (m *MockTestRepository) GetByType(ctx context.Context, testType models.TestType) (*models.Test, error) {
	args := m.Called(ctx, testType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Test), args.Error(1)
}

func (m *MockTestRepository) List(ctx context.Context) ([]*models.Test, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Test), args.Error(1)
}

func (m *MockTestRepository) GetQuestions(ctx context.Context, testID string) ([]*models.Question, error) {
	args := m.Called(ctx, testID)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockTestRepository) GetQuestionsByIDs(ctx context.Context, questionIDs []string) ([]*models.Question, error) {
	args := m.Called(ctx, questionIDs)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockTestRepository) CreateQuestions(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

// MockMissionRepository is a mock implementation of MissionRepository
type MockMissionRepository struct {
	mock.Mock
}

func (m *MockMissionRepository) Create(ctx context.Context, mission *models.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockMissionRepository) GetByTestID(ctx context.Context, testID string) ([]*models.Mission, error) {
	args := m.Called(ctx, testID)
	return args.Get(0).([]*models.Mission), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.TestSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.TestSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestSession), args.Error(1)
}

func (m *MockSessionRepository) GetBySessionIDWithDetails(ctx context.Context, sessionID string) (*models.TestSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestSession), args.Error(1)
}

func (m *MockSessionRepository) GetByUser(ctx context.Context, userID string, filters repositories.SessionFilters) ([]*models.TestSession, int64, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]*models.TestSession), args.Get(1).(int64), args.Error(2)
}

func (m *MockSessionRepository) UpdateStatus(ctx context.Context, sessionID string, status models.SessionStatus) error {
	args := m.Called(ctx, sessionID, status)
	return args.Error(0)
}

func (m *MockSessionRepository) CreateAnswers(ctx context.Context, answers []*models.StudentAnswer) error {
	args := m.Called(ctx, answers)
	return args.Error(0)
}

func (m *MockSessionRepository) GetAnswers(ctx context.Context, sessionID string) ([]*models.StudentAnswer, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]*models.StudentAnswer), args.Error(1)
}

// MockScoreRepository is a mock implementation of ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) ReplaceForSession(ctx context.Context, sessionID string, scores []*models.CandidateScore) error {
	args := m.Called(ctx, sessionID, scores)
	return args.Error(0)
}

func (m *MockScoreRepository) GetBySession(ctx context.Context, sessionID string) ([]*models.CandidateScore, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]*models.CandidateScore), args.Error(1)
}

func (m *MockScoreRepository) GetClusterScores(ctx context.Context, sessionID string) ([]*models.CandidateScore, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]*models.CandidateScore), args.Error(1)
}

// MockAnswerKeyRepository is a mock implementation of AnswerKeyRepository
type MockAnswerKeyRepository struct {
	mock.Mock
}

func (m *MockAnswerKeyRepository) GetByQuestionIDs(ctx context.Context, questionIDs []string) ([]*models.CorrectAnswer, error) {
	args := m.Called(ctx, questionIDs)
	return args.Get(0).([]*models.CorrectAnswer), args.Error(1)
}

func (m *MockAnswerKeyRepository) Upsert(ctx context.Context, answer *models.CorrectAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

// MockPathwayRepository is a mock implementation of PathwayRepository
type MockPathwayRepository struct {
	mock.Mock
}

func (m *MockPathwayRepository) GetByClusterID(ctx context.Context, clusterID string) (*models.Pathway, error) {
	args := m.Called(ctx, clusterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pathway), args.Error(1)
}

func (m *MockPathwayRepository) GetClusters(ctx context.Context) ([]*models.Cluster, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Cluster), args.Error(1)
}

// mockRepository bundles the per-aggregate mocks behind the facade.
// WithTransaction runs fn against the same facade, which is what the
// services observe in production too.
type mockRepository struct {
	test      *MockTestRepository
	mission   *MockMissionRepository
	session   *MockSessionRepository
	score     *MockScoreRepository
	answerKey *MockAnswerKeyRepository
	pathway   *MockPathwayRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		test:      new(MockTestRepository),
		mission:   new(MockMissionRepository),
		session:   new(MockSessionRepository),
		score:     new(MockScoreRepository),
		answerKey: new(MockAnswerKeyRepository),
		pathway:   new(MockPathwayRepository),
	}
}

func (r *mockRepository) Test() repositories.TestRepository           { return r.test }
func (r *mockRepository) Mission() repositories.MissionRepository     { return r.mission }
func (r *mockRepository) Session() repositories.SessionRepository     { return r.session }
func (r *mockRepository) Score() repositories.ScoreRepository         { return r.score }
func (r *mockRepository) AnswerKey() repositories.AnswerKeyRepository { return r.answerKey }
func (r *mockRepository) Pathway() repositories.PathwayRepository     { return r.pathway }

func (r *mockRepository) WithTransaction(ctx context.Context, fn func(repo repositories.Repository) error) error {
	return fn(r)
}

func (r *mockRepository) assertExpectations(t mock.TestingT) {
	r.test.AssertExpectations(t)
	r.mission.AssertExpectations(t)
	r.session.AssertExpectations(t)
	r.score.AssertExpectations(t)
	r.answerKey.AssertExpectations(t)
	r.pathway.AssertExpectations(t)
}
