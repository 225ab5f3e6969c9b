package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestExportSessionToExcel(t *testing.T) {
	repo := newMockRepository()
	svc := NewExportService(repo, testLogger())
	ctx := context.Background()
	sessionID := "session-123"

	repo.session.On("GetBySessionID", ctx, sessionID).Return(&models.TestSession{
		SessionID: sessionID, UserID: "user-42", Status: models.SessionScored,
	}, nil)
	repo.session.On("GetAnswers", ctx, sessionID).Return([]*models.StudentAnswer{
		{SessionID: sessionID, QuestionID: "q1", IsCorrect: boolPtr(true),
			Answer: datatypes.JSON(`{"selectedOption":"o1","responseTimeMs":4200}`)},
		{SessionID: sessionID, QuestionID: "q2", IsCorrect: nil,
			Answer: datatypes.JSON(`{"selectedOption":""}`)},
	}, nil)
	repo.score.On("GetBySession", ctx, sessionID).Return([]*models.CandidateScore{
		{SessionID: sessionID, ClusterID: strPtr("business"), TotalQuestions: 1, CorrectAnswers: 1, ScorePercentage: 100},
		{SessionID: sessionID, ClusterID: nil, TotalQuestions: 2, CorrectAnswers: 1, Unanswered: 1, ScorePercentage: 50},
	}, nil)

	data, err := svc.ExportSessionToExcel(ctx, sessionID)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Responses")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"q1", "o1", "4200", "yes"}, rows[1])
	assert.Equal(t, "q2", rows[2][0])
	assert.Equal(t, "unanswered", rows[2][3])

	scoreRows, err := f.GetRows("Scores")
	require.NoError(t, err)
	require.Len(t, scoreRows, 3)
	assert.Equal(t, "business", scoreRows[1][0])
	assert.Equal(t, "overall", scoreRows[2][0])
}

func TestExportSessionToExcelNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewExportService(repo, testLogger())
	ctx := context.Background()

	repo.session.On("GetBySessionID", ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

	data, err := svc.ExportSessionToExcel(ctx, "missing")

	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
