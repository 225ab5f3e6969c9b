package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/PathFinder-2025/discovery-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type ExportService interface {
	// ExportSessionToExcel renders a session's responses and scores as an
	// xlsx workbook with one sheet per concern.
	ExportSessionToExcel(ctx context.Context, sessionID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportSessionToExcel(ctx context.Context, sessionID string) ([]byte, error) {
	session, err := s.repo.Session().GetBySessionID(ctx, sessionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	answers, err := s.repo.Session().GetAnswers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	scores, err := s.repo.Score().GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	responseSheet := "Responses"
	index, err := f.NewSheet(responseSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Question ID", "Selected Answer", "Response Time (ms)", "Correct"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(responseSheet, cell, header)
	}
	for i, a := range answers {
		row := i + 2
		var stored storedAnswer
		_ = json.Unmarshal(a.Answer, &stored)

		f.SetCellValue(responseSheet, fmt.Sprintf("A%d", row), a.QuestionID)
		f.SetCellValue(responseSheet, fmt.Sprintf("B%d", row), stored.SelectedOption)
		if stored.ResponseTimeMs != nil {
			f.SetCellValue(responseSheet, fmt.Sprintf("C%d", row), *stored.ResponseTimeMs)
		}
		switch {
		case a.IsCorrect == nil:
			f.SetCellValue(responseSheet, fmt.Sprintf("D%d", row), "unanswered")
		case *a.IsCorrect:
			f.SetCellValue(responseSheet, fmt.Sprintf("D%d", row), "yes")
		default:
			f.SetCellValue(responseSheet, fmt.Sprintf("D%d", row), "no")
		}
	}

	scoreSheet := "Scores"
	if _, err := f.NewSheet(scoreSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	scoreHeaders := []string{"Cluster", "Total", "Correct", "Incorrect", "Unanswered", "Score %"}
	for i, header := range scoreHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(scoreSheet, cell, header)
	}
	for i, score := range scores {
		row := i + 2
		cluster := "overall"
		if score.ClusterID != nil {
			cluster = *score.ClusterID
		}
		f.SetCellValue(scoreSheet, fmt.Sprintf("A%d", row), cluster)
		f.SetCellValue(scoreSheet, fmt.Sprintf("B%d", row), score.TotalQuestions)
		f.SetCellValue(scoreSheet, fmt.Sprintf("C%d", row), score.CorrectAnswers)
		f.SetCellValue(scoreSheet, fmt.Sprintf("D%d", row), score.IncorrectAnswers)
		f.SetCellValue(scoreSheet, fmt.Sprintf("E%d", row), score.Unanswered)
		f.SetCellValue(scoreSheet, fmt.Sprintf("F%d", row), score.ScorePercentage)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported session to Excel",
		"session_id", session.SessionID,
		"answers", len(answers),
		"score_rows", len(scores))

	return buf.Bytes(), nil
}
