package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/quiz"
	"github.com/PathFinder-2025/discovery-service/internal/repositories"
)

// MissionStep is one mission: a primary question and an optional secondary
// follow-up the client reveals once the primary is answered.
type MissionStep struct {
	MissionID string         `json:"missionId"`
	Title     string         `json:"title,omitempty"`
	Primary   quiz.Question  `json:"primary"`
	Secondary *quiz.Question `json:"secondary,omitempty"`
}

// MissionSet is the missions test formatted as ordered steps.
type MissionSet struct {
	TestID   string        `json:"testId"`
	Name     string        `json:"name"`
	Version  string        `json:"version"`
	Missions []MissionStep `json:"missions"`
}

type MissionService interface {
	// GetMissionSet returns the missions test with each mission's questions
	// resolved and paired.
	GetMissionSet(ctx context.Context) (*MissionSet, error)
}

type missionService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewMissionService(repo repositories.Repository, logger *slog.Logger) MissionService {
	return &missionService{repo: repo, logger: logger}
}

func (s *missionService) GetMissionSet(ctx context.Context) (*MissionSet, error) {
	test, err := s.repo.Test().GetByType(ctx, models.TestTypeMissions)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrQuestionSetIncomplete, models.TestTypeMissions)
		}
		return nil, fmt.Errorf("failed to load missions test: %w", err)
	}

	missions, err := s.repo.Mission().GetByTestID(ctx, test.TestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load missions: %w", err)
	}

	questionIDs := make([]string, 0, len(missions)*2)
	for _, m := range missions {
		questionIDs = append(questionIDs, m.PrimaryQuestionID)
		if m.SecondaryQuestionID != nil {
			questionIDs = append(questionIDs, *m.SecondaryQuestionID)
		}
	}
	rows, err := s.repo.Test().GetQuestionsByIDs(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load mission questions: %w", err)
	}
	byID := make(map[string]*quiz.Question, len(rows))
	for _, row := range rows {
		q, err := row.ToQuizQuestion()
		if err != nil {
			return nil, err
		}
		byID[row.QuestionID] = q
	}

	set := &MissionSet{
		TestID:  test.TestID,
		Name:    test.Name,
		Version: test.VersionToken(),
	}
	for _, m := range missions {
		primary, ok := byID[m.PrimaryQuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: mission %s primary %s", ErrQuestionNotFound, m.MissionID, m.PrimaryQuestionID)
		}
		step := MissionStep{
			MissionID: m.MissionID,
			Title:     m.Title,
			Primary:   *primary,
		}
		if m.SecondaryQuestionID != nil {
			secondary, ok := byID[*m.SecondaryQuestionID]
			if !ok {
				return nil, fmt.Errorf("%w: mission %s secondary %s", ErrQuestionNotFound, m.MissionID, *m.SecondaryQuestionID)
			}
			step.Secondary = secondary
		}
		set.Missions = append(set.Missions, step)
	}
	return set, nil
}
