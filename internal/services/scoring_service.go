package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/quiz"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
)

// ClusterScoreResult is one cluster's slice of a score report.
type ClusterScoreResult struct {
	ClusterID        string  `json:"clusterId"`
	TotalQuestions   int     `json:"totalQuestions"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
	Unanswered       int     `json:"unanswered"`
	ScorePercentage  float64 `json:"scorePercentage"`
}

// ScoreReport is the scoring result for a session.
type ScoreReport struct {
	OverallScore     float64              `json:"overallScore"`
	TotalQuestions   int                  `json:"totalQuestions"`
	CorrectAnswers   int                  `json:"correctAnswers"`
	IncorrectAnswers int                  `json:"incorrectAnswers"`
	Unanswered       int                  `json:"unanswered"`
	ClusterScores    []ClusterScoreResult `json:"clusterScores"`
}

// PathwayResult is one entry of the top-3 pathway report.
type PathwayResult struct {
	Pathname    string   `json:"pathname"`
	Tag         string   `json:"tag"`
	ClusterID   string   `json:"clusterId"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	CareerImage string   `json:"careerImage"`
	Skills      []string `json:"skills"`
	Subjects    []string `json:"subjects"`
	Careers     []string `json:"careers"`
	TryThis     string   `json:"tryThis"`
}

type ScoringService interface {
	// CheckAnswer compares a submitted encoded answer against the answer key
	// with the question type's equality semantics.
	CheckAnswer(q *quiz.Question, correct, submitted string) bool

	// ComputeScores aggregates a session's stored answers into per-cluster
	// and overall score rows, persists them, and marks the session scored.
	ComputeScores(ctx context.Context, sessionID string) (*ScoreReport, error)

	// TopPathways returns up to three pathway reports for the session's
	// best-scoring clusters, best first.
	TopPathways(ctx context.Context, sessionID string) ([]*PathwayResult, error)
}

type scoringService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewScoringService(repo repositories.Repository, logger *slog.Logger) ScoringService {
	return &scoringService{repo: repo, logger: logger}
}

// ===== ANSWER CHECKING =====

// CheckAnswer decodes both sides with the question's codec and compares with
// per-type semantics: rank is order-sensitive over an exact item permutation,
// matching and group compare as keyed pair sets, multi-select is set-equal,
// text is a direct id match.
func (s *scoringService) CheckAnswer(q *quiz.Question, correct, submitted string) bool {
	if submitted == "" {
		return false
	}

	want, err := quiz.Decode(q, correct)
	if err != nil {
		s.logger.Warn("Answer key has unknown question type",
			"question_id", q.ID, "type", q.Type)
		return false
	}
	got, err := quiz.Decode(q, submitted)
	if err != nil {
		return false
	}

	switch q.Type {
	case quiz.TypeText, quiz.TypeTextImage:
		return got.(quiz.ChoiceAnswer).OptionID == want.(quiz.ChoiceAnswer).OptionID
	case quiz.TypeMatching:
		return samePairSet(pairMap(got.(quiz.MatchingAnswer)), pairMap(want.(quiz.MatchingAnswer)))
	case quiz.TypeGroup:
		return samePairSet(groupMap(got.(quiz.GroupAnswer)), groupMap(want.(quiz.GroupAnswer)))
	case quiz.TypeRank:
		// Decode restores a mismatched id set as the canonical order for the
		// UI; grading must not inherit that leniency. A submission that is
		// not an exact permutation of the question's items is wrong.
		order, ok := quiz.ParseRankOrder(q, submitted)
		if !ok {
			return false
		}
		return sameSequence(order, want.(quiz.RankAnswer).Order)
	case quiz.TypeMultiSelect:
		return sameIDSet(got.(quiz.MultiSelectAnswer).Selected, want.(quiz.MultiSelectAnswer).Selected)
	}
	return false
}

func pairMap(a quiz.MatchingAnswer) map[string]string {
	m := make(map[string]string, len(a.Pairs))
	for _, p := range a.Pairs {
		m[p.LeftID] = p.RightID
	}
	return m
}

func groupMap(a quiz.GroupAnswer) map[string]string {
	m := make(map[string]string, len(a.Selections))
	for _, sel := range a.Selections {
		m[sel.GroupID] = sel.SubItemID
	}
	return m
}

func samePairSet(got, want map[string]string) bool {
	if len(want) == 0 || len(got) != len(want) {
		return false
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func sameSequence(got, want []string) bool {
	if len(got) != len(want) || len(want) == 0 {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func sameIDSet(got, want []string) bool {
	if len(got) != len(want) || len(want) == 0 {
		return false
	}
	seen := make(map[string]bool, len(want))
	for _, id := range want {
		seen[id] = true
	}
	for _, id := range got {
		if !seen[id] {
			return false
		}
	}
	return true
}

// ===== SCORE COMPUTATION =====

func (s *scoringService) ComputeScores(ctx context.Context, sessionID string) (*ScoreReport, error) {
	s.logger.Info("Computing scores for session", "session_id", sessionID)

	answers, err := s.repo.Session().GetAnswers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	if len(answers) == 0 {
		s.logger.Warn("No answers found for session", "session_id", sessionID)
		return &ScoreReport{ClusterScores: []ClusterScoreResult{}}, nil
	}

	questionIDs := make([]string, 0, len(answers))
	for _, a := range answers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	questions, err := s.repo.Test().GetQuestionsByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	clusterByQuestion := make(map[string]string, len(questions))
	for _, q := range questions {
		if q.ClusterID != nil {
			clusterByQuestion[q.QuestionID] = *q.ClusterID
		}
	}

	report := &ScoreReport{TotalQuestions: len(answers)}
	type clusterStats struct {
		total, correct, incorrect, unanswered int
	}
	// Preserve first-seen cluster order for stable report output.
	perCluster := make(map[string]*clusterStats)
	var clusterOrder []string

	for _, a := range answers {
		switch {
		case a.IsCorrect == nil:
			report.Unanswered++
		case *a.IsCorrect:
			report.CorrectAnswers++
		default:
			report.IncorrectAnswers++
		}

		clusterID, ok := clusterByQuestion[a.QuestionID]
		if !ok {
			continue
		}
		stats := perCluster[clusterID]
		if stats == nil {
			stats = &clusterStats{}
			perCluster[clusterID] = stats
			clusterOrder = append(clusterOrder, clusterID)
		}
		stats.total++
		switch {
		case a.IsCorrect == nil:
			stats.unanswered++
		case *a.IsCorrect:
			stats.correct++
		default:
			stats.incorrect++
		}
	}
	report.OverallScore = percentage(report.CorrectAnswers, report.TotalQuestions)

	rows := make([]*models.CandidateScore, 0, len(clusterOrder)+1)
	for _, clusterID := range clusterOrder {
		stats := perCluster[clusterID]
		pct := percentage(stats.correct, stats.total)
		id := clusterID
		rows = append(rows, &models.CandidateScore{
			SessionID:        sessionID,
			ClusterID:        &id,
			TotalQuestions:   stats.total,
			CorrectAnswers:   stats.correct,
			IncorrectAnswers: stats.incorrect,
			Unanswered:       stats.unanswered,
			ScorePercentage:  int(pct),
			ClusterScore:     stats.correct,
		})
		report.ClusterScores = append(report.ClusterScores, ClusterScoreResult{
			ClusterID:        clusterID,
			TotalQuestions:   stats.total,
			CorrectAnswers:   stats.correct,
			IncorrectAnswers: stats.incorrect,
			Unanswered:       stats.unanswered,
			ScorePercentage:  pct,
		})
	}
	rows = append(rows, &models.CandidateScore{
		SessionID:        sessionID,
		ClusterID:        nil, // overall row
		TotalQuestions:   report.TotalQuestions,
		CorrectAnswers:   report.CorrectAnswers,
		IncorrectAnswers: report.IncorrectAnswers,
		Unanswered:       report.Unanswered,
		ScorePercentage:  int(report.OverallScore),
		ClusterScore:     report.CorrectAnswers,
	})

	if err := s.repo.Score().ReplaceForSession(ctx, sessionID, rows); err != nil {
		return nil, fmt.Errorf("failed to store scores: %w", err)
	}
	if err := s.repo.Session().UpdateStatus(ctx, sessionID, models.SessionScored); err != nil {
		return nil, fmt.Errorf("failed to mark session scored: %w", err)
	}

	s.logger.Info("Scores computed",
		"session_id", sessionID,
		"overall_score", report.OverallScore,
		"total_questions", report.TotalQuestions,
		"correct_answers", report.CorrectAnswers)

	return report, nil
}

func percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// ===== PATHWAY REPORT =====

var (
	pathwayNames = []string{"Primary", "Secondary", "Tertiary"}
	pathwayTags  = []string{"Your Primary Pathway", "Your Secondary Pathway", "Your Tertiary Pathway"}
)

func (s *scoringService) TopPathways(ctx context.Context, sessionID string) ([]*PathwayResult, error) {
	clusterScores, err := s.repo.Score().GetClusterScores(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cluster scores: %w", err)
	}
	if len(clusterScores) == 0 {
		return nil, ErrScoresUnavailable
	}
	if len(clusterScores) > 3 {
		clusterScores = clusterScores[:3]
	}

	results := make([]*PathwayResult, 0, len(clusterScores))
	for i, score := range clusterScores {
		if score.ClusterID == nil {
			continue
		}
		result := &PathwayResult{
			Pathname:  pathwayNames[i],
			Tag:       pathwayTags[i],
			ClusterID: *score.ClusterID,
		}

		pathway, err := s.repo.Pathway().GetByClusterID(ctx, *score.ClusterID)
		if err != nil {
			if !repositories.IsNotFoundError(err) {
				return nil, fmt.Errorf("failed to load pathway: %w", err)
			}
			s.logger.Warn("No pathway details for cluster",
				"cluster_id", *score.ClusterID, "session_id", sessionID)
		} else {
			result.Title = pathway.Title
			result.Subtitle = pathway.Subtitle
			result.Description = pathway.Description
			result.CareerImage = pathway.CareerImage
			result.TryThis = pathway.TryThis
			result.Skills = decodeStringList(pathway.Skills)
			result.Subjects = decodeStringList(pathway.Subjects)
			result.Careers = decodeStringList(pathway.Careers)
		}
		results = append(results, result)
	}

	s.logger.Info("Top pathways computed",
		"session_id", sessionID,
		"pathway_count", len(results))

	return results, nil
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
