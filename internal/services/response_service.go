package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PathFinder-2025/discovery-service/internal/events"
	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/quiz"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"github.com/PathFinder-2025/discovery-service/internal/utils"
	"github.com/google/uuid"
)

// ResponseInput is one submitted answer in wire form.
type ResponseInput struct {
	QuestionID     string `json:"questionId" validate:"required"`
	SelectedOption string `json:"selectedOption"`
	ResponseTimeMs *int   `json:"responseTimeMs"`
}

// SubmissionRequest is the bulk submission payload.
type SubmissionRequest struct {
	UserID    string          `json:"userId" validate:"required"`
	TestID    *string         `json:"testId"`
	Name      string          `json:"name" validate:"max=200"`
	Responses []ResponseInput `json:"responses" validate:"required,min=1,dive"`
}

// SubmissionResult is returned to the client after a successful submission.
type SubmissionResult struct {
	Status    string       `json:"status"`
	SessionID string       `json:"sessionId"`
	Message   string       `json:"message"`
	Score     *ScoreReport `json:"score"`
}

// SessionDetails bundles a stored session with its scores and pathway report.
type SessionDetails struct {
	Session  *models.TestSession      `json:"session"`
	Scores   []*models.CandidateScore `json:"scores"`
	Pathways []*PathwayResult         `json:"pathways"`
}

// storedAnswer is the JSON shape persisted per response.
type storedAnswer struct {
	SelectedOption string `json:"selectedOption"`
	ResponseTimeMs *int   `json:"responseTimeMs,omitempty"`
}

type ResponseService interface {
	// Submit stores a bulk submission, scores it, and returns the new
	// session id with the score report. On error nothing is persisted, so
	// the client can retry with the identical payload.
	Submit(ctx context.Context, req *SubmissionRequest) (*SubmissionResult, error)

	GetSession(ctx context.Context, sessionID string) (*SessionDetails, error)
	GetUserSessions(ctx context.Context, userID string, filters repositories.SessionFilters) ([]*models.TestSession, int64, error)
}

type responseService struct {
	repo      repositories.Repository
	scoring   ScoringService
	publisher events.EventPublisher
	validator *utils.Validator
	logger    *slog.Logger
}

func NewResponseService(
	repo repositories.Repository,
	scoring ScoringService,
	publisher events.EventPublisher,
	validator *utils.Validator,
	logger *slog.Logger,
) ResponseService {
	return &responseService{
		repo:      repo,
		scoring:   scoring,
		publisher: publisher,
		validator: validator,
		logger:    logger,
	}
}

func (s *responseService) Submit(ctx context.Context, req *SubmissionRequest) (*SubmissionResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if len(req.Responses) == 0 {
		return nil, ErrEmptySubmission
	}

	sessionID := uuid.NewString()
	s.logger.Info("Starting response submission",
		"user_id", req.UserID,
		"session_id", sessionID,
		"response_count", len(req.Responses))

	questionIDs := make([]string, 0, len(req.Responses))
	for _, r := range req.Responses {
		questionIDs = append(questionIDs, r.QuestionID)
	}
	questions, keys, err := s.loadGradingData(ctx, questionIDs)
	if err != nil {
		return nil, err
	}

	submittedAt := time.Now()
	session := &models.TestSession{
		SessionID:   sessionID,
		UserID:      req.UserID,
		TestID:      req.TestID,
		Name:        req.Name,
		Status:      models.SessionSubmitted,
		SubmittedAt: submittedAt,
	}

	answers := make([]*models.StudentAnswer, 0, len(req.Responses))
	for _, r := range req.Responses {
		raw, err := json.Marshal(storedAnswer{
			SelectedOption: r.SelectedOption,
			ResponseTimeMs: r.ResponseTimeMs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode answer for %s: %w", r.QuestionID, err)
		}
		answers = append(answers, &models.StudentAnswer{
			SessionID:  sessionID,
			QuestionID: r.QuestionID,
			Answer:     raw,
			IsCorrect:  s.grade(questions, keys, r),
		})
	}

	err = s.repo.WithTransaction(ctx, func(repo repositories.Repository) error {
		if err := repo.Session().Create(ctx, session); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		if err := repo.Session().CreateAnswers(ctx, answers); err != nil {
			return fmt.Errorf("failed to store answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	score, err := s.scoring.ComputeScores(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute scores: %w", err)
	}

	s.publishCompleted(ctx, session, score)

	s.logger.Info("Response submission successful",
		"session_id", sessionID,
		"user_id", req.UserID,
		"overall_score", score.OverallScore)

	return &SubmissionResult{
		Status:    "success",
		SessionID: sessionID,
		Message:   "Responses submitted and scored successfully",
		Score:     score,
	}, nil
}

// grade returns the correctness flag for one response: nil when the question
// was left unanswered, false when the question or its key is unknown.
func (s *responseService) grade(questions map[string]*quiz.Question, keys map[string]string, r ResponseInput) *bool {
	if r.SelectedOption == "" {
		return nil
	}
	result := false
	q, ok := questions[r.QuestionID]
	key, hasKey := keys[r.QuestionID]
	if !ok || !hasKey {
		s.logger.Warn("No grading data for question", "question_id", r.QuestionID)
		return &result
	}
	result = s.scoring.CheckAnswer(q, key, r.SelectedOption)
	return &result
}

func (s *responseService) loadGradingData(ctx context.Context, questionIDs []string) (map[string]*quiz.Question, map[string]string, error) {
	rows, err := s.repo.Test().GetQuestionsByIDs(ctx, questionIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questions: %w", err)
	}
	questions := make(map[string]*quiz.Question, len(rows))
	for _, row := range rows {
		q, err := row.ToQuizQuestion()
		if err != nil {
			s.logger.Warn("Skipping ungradable question", "question_id", row.QuestionID, "error", err)
			continue
		}
		questions[row.QuestionID] = q
	}

	keyRows, err := s.repo.AnswerKey().GetByQuestionIDs(ctx, questionIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load answer keys: %w", err)
	}
	keys := make(map[string]string, len(keyRows))
	for _, k := range keyRows {
		keys[k.QuestionID] = k.Answer
	}
	return questions, keys, nil
}

func (s *responseService) publishCompleted(ctx context.Context, session *models.TestSession, score *ScoreReport) {
	data := events.SubmissionCompletedData{
		SessionID:      session.SessionID,
		UserID:         session.UserID,
		TestID:         session.TestID,
		OverallScore:   score.OverallScore,
		TotalQuestions: score.TotalQuestions,
		CorrectAnswers: score.CorrectAnswers,
		SubmittedAt:    session.SubmittedAt,
	}
	if len(score.ClusterScores) > 0 {
		best := score.ClusterScores[0]
		for _, cs := range score.ClusterScores[1:] {
			if cs.CorrectAnswers > best.CorrectAnswers {
				best = cs
			}
		}
		data.TopClusterID = best.ClusterID
	}

	// Event delivery is best effort; the submission already succeeded.
	if err := s.publisher.PublishSubmissionEvent(ctx, events.NewSubmissionCompletedEvent(data)); err != nil {
		s.logger.Error("Failed to publish submission event",
			"session_id", session.SessionID, "error", err)
	}
}

func (s *responseService) GetSession(ctx context.Context, sessionID string) (*SessionDetails, error) {
	session, err := s.repo.Session().GetBySessionIDWithDetails(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	scores, err := s.repo.Score().GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	pathways, err := s.scoring.TopPathways(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrScoresUnavailable) {
		return nil, err
	}

	return &SessionDetails{
		Session:  session,
		Scores:   scores,
		Pathways: pathways,
	}, nil
}

func (s *responseService) GetUserSessions(ctx context.Context, userID string, filters repositories.SessionFilters) ([]*models.TestSession, int64, error) {
	return s.repo.Session().GetByUser(ctx, userID, filters)
}
