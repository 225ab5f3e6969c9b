package services

import (
	"context"
	"testing"

	apperrors "github.com/PathFinder-2025/discovery-service/internal/errors"
	"github.com/PathFinder-2025/discovery-service/internal/events"
	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/quiz"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"github.com/PathFinder-2025/discovery-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockScoringService is a mock implementation of ScoringService
type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) CheckAnswer(q *quiz.Question, correct, submitted string) bool {
	args := m.Called(q, correct, submitted)
	return args.Bool(0)
}

func (m *MockScoringService) ComputeScores(ctx context.Context, sessionID string) (*ScoreReport, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ScoreReport), args.Error(1)
}

func (m *MockScoringService) TopPathways(ctx context.Context, sessionID string) ([]*PathwayResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*PathwayResult), args.Error(1)
}

func questionRow(t *testing.T, q *quiz.Question, clusterID string) *models.Question {
	t.Helper()
	content, err := models.NewQuestionContent(q)
	assert.NoError(t, err)
	return &models.Question{
		QuestionID: q.ID,
		TestID:     "test-general",
		ClusterID:  strPtr(clusterID),
		Type:       string(q.Type),
		Content:    content,
	}
}

func TestSubmit(t *testing.T) {
	repo := newMockRepository()
	scoring := new(MockScoringService)
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewResponseService(repo, scoring, publisher, utils.NewValidator(), testLogger())
	ctx := context.Background()

	req := &SubmissionRequest{
		UserID: "user-42",
		Name:   "Jordan",
		Responses: []ResponseInput{
			{QuestionID: "q1", SelectedOption: "o1"},
			{QuestionID: "q2", SelectedOption: "o2"},
			{QuestionID: "q3", SelectedOption: ""},
		},
	}

	rows := []*models.Question{questionRow(t, textQuestion("q1"), "business")}
	repo.test.On("GetQuestionsByIDs", ctx, []string{"q1", "q2", "q3"}).Return(rows, nil)
	repo.answerKey.On("GetByQuestionIDs", ctx, []string{"q1", "q2", "q3"}).
		Return([]*models.CorrectAnswer{{QuestionID: "q1", Answer: "o1"}}, nil)

	scoring.On("CheckAnswer", mock.Anything, "o1", "o1").Return(true)

	var createdSession *models.TestSession
	repo.session.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			createdSession = args.Get(1).(*models.TestSession)
		}).
		Return(nil)
	var storedAnswers []*models.StudentAnswer
	repo.session.On("CreateAnswers", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			storedAnswers = args.Get(1).([]*models.StudentAnswer)
		}).
		Return(nil)

	report := &ScoreReport{
		OverallScore:   33.3,
		TotalQuestions: 3,
		CorrectAnswers: 1,
		ClusterScores: []ClusterScoreResult{
			{ClusterID: "business", CorrectAnswers: 1},
		},
	}
	scoring.On("ComputeScores", ctx, mock.AnythingOfType("string")).Return(report, nil)

	result, err := svc.Submit(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, report, result.Score)

	assert.Equal(t, result.SessionID, createdSession.SessionID)
	assert.Equal(t, "user-42", createdSession.UserID)
	assert.Equal(t, models.SessionSubmitted, createdSession.Status)

	// q1 graded correct, q2 has no key so it grades false, q3 was skipped.
	assert.Len(t, storedAnswers, 3)
	assert.Equal(t, boolPtr(true), storedAnswers[0].IsCorrect)
	assert.Equal(t, boolPtr(false), storedAnswers[1].IsCorrect)
	assert.Nil(t, storedAnswers[2].IsCorrect)

	published := publisher.GetPublishedEvents()
	assert.Len(t, published, 1)
	assert.Equal(t, events.EventSubmissionCompleted, published[0].Type)
	data := published[0].Data.(events.SubmissionCompletedData)
	assert.Equal(t, result.SessionID, data.SessionID)
	assert.Equal(t, "user-42", data.UserID)
	assert.Equal(t, "business", data.TopClusterID)

	repo.assertExpectations(t)
	scoring.AssertExpectations(t)
}

func TestSubmitValidationFailure(t *testing.T) {
	repo := newMockRepository()
	svc := NewResponseService(repo, new(MockScoringService),
		events.NewMockEventPublisher(testLogger()), utils.NewValidator(), testLogger())

	tests := []struct {
		name string
		req  *SubmissionRequest
	}{
		{"missing user id", &SubmissionRequest{
			Responses: []ResponseInput{{QuestionID: "q1", SelectedOption: "o1"}},
		}},
		{"no responses", &SubmissionRequest{UserID: "user-42"}},
		{"response without question id", &SubmissionRequest{
			UserID:    "user-42",
			Responses: []ResponseInput{{SelectedOption: "o1"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Submit(context.Background(), tt.req)

			assert.Nil(t, result)
			var verrs apperrors.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
			repo.session.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitNothingPersistedOnStorageError(t *testing.T) {
	repo := newMockRepository()
	scoring := new(MockScoringService)
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewResponseService(repo, scoring, publisher, utils.NewValidator(), testLogger())
	ctx := context.Background()

	req := &SubmissionRequest{
		UserID: "user-42",
		Responses: []ResponseInput{
			{QuestionID: "q1", SelectedOption: "o1"},
		},
	}

	repo.test.On("GetQuestionsByIDs", ctx, []string{"q1"}).
		Return([]*models.Question{questionRow(t, textQuestion("q1"), "business")}, nil)
	repo.answerKey.On("GetByQuestionIDs", ctx, []string{"q1"}).
		Return([]*models.CorrectAnswer{{QuestionID: "q1", Answer: "o1"}}, nil)
	scoring.On("CheckAnswer", mock.Anything, "o1", "o1").Return(true)
	repo.session.On("Create", ctx, mock.Anything).Return(assert.AnError)

	result, err := svc.Submit(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	// Scoring never runs and no event goes out when the write fails.
	scoring.AssertNotCalled(t, "ComputeScores", mock.Anything, mock.Anything)
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestGetSession(t *testing.T) {
	repo := newMockRepository()
	scoring := new(MockScoringService)
	svc := NewResponseService(repo, scoring,
		events.NewMockEventPublisher(testLogger()), utils.NewValidator(), testLogger())
	ctx := context.Background()

	session := &models.TestSession{SessionID: "session-123", UserID: "user-42", Status: models.SessionScored}
	scores := []*models.CandidateScore{
		{SessionID: "session-123", ClusterID: nil, ScorePercentage: 75},
	}
	pathways := []*PathwayResult{{Pathname: "Primary", ClusterID: "business"}}

	repo.session.On("GetBySessionIDWithDetails", ctx, "session-123").Return(session, nil)
	repo.score.On("GetBySession", ctx, "session-123").Return(scores, nil)
	scoring.On("TopPathways", ctx, "session-123").Return(pathways, nil)

	details, err := svc.GetSession(ctx, "session-123")

	assert.NoError(t, err)
	assert.Equal(t, session, details.Session)
	assert.Equal(t, scores, details.Scores)
	assert.Equal(t, pathways, details.Pathways)
}

func TestGetSessionWithoutScores(t *testing.T) {
	repo := newMockRepository()
	scoring := new(MockScoringService)
	svc := NewResponseService(repo, scoring,
		events.NewMockEventPublisher(testLogger()), utils.NewValidator(), testLogger())
	ctx := context.Background()

	session := &models.TestSession{SessionID: "session-123", Status: models.SessionSubmitted}
	repo.session.On("GetBySessionIDWithDetails", ctx, "session-123").Return(session, nil)
	repo.score.On("GetBySession", ctx, "session-123").Return([]*models.CandidateScore{}, nil)
	scoring.On("TopPathways", ctx, "session-123").Return(nil, ErrScoresUnavailable)

	details, err := svc.GetSession(ctx, "session-123")

	assert.NoError(t, err)
	assert.Empty(t, details.Pathways)
}

func TestGetSessionNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewResponseService(repo, new(MockScoringService),
		events.NewMockEventPublisher(testLogger()), utils.NewValidator(), testLogger())
	ctx := context.Background()

	repo.session.On("GetBySessionIDWithDetails", ctx, "missing").
		Return(nil, gorm.ErrRecordNotFound)

	details, err := svc.GetSession(ctx, "missing")

	assert.Nil(t, details)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetUserSessions(t *testing.T) {
	repo := newMockRepository()
	svc := NewResponseService(repo, new(MockScoringService),
		events.NewMockEventPublisher(testLogger()), utils.NewValidator(), testLogger())
	ctx := context.Background()

	filters := repositories.SessionFilters{Limit: 10}
	sessions := []*models.TestSession{{SessionID: "session-1"}, {SessionID: "session-2"}}
	repo.session.On("GetByUser", ctx, "user-42", filters).Return(sessions, int64(2), nil)

	got, total, err := svc.GetUserSessions(ctx, "user-42", filters)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, got, 2)
}
