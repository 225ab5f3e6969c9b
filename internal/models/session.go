package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionStatus string

const (
	SessionSubmitted SessionStatus = "SUBMITTED"
	SessionScored    SessionStatus = "SCORED"
)

// TestSession is one completed submission by a candidate. Sessions are
// created at submission time; there is no server-side in-progress state.
type TestSession struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	SessionID   string        `json:"session_id" gorm:"uniqueIndex;size:64;not null"`
	UserID      string        `json:"user_id" gorm:"index;size:64;not null" validate:"required"`
	TestID      *string       `json:"test_id" gorm:"index;size:64"`
	Name        string        `json:"name" gorm:"size:200"`
	Status      SessionStatus `json:"status" gorm:"size:20;default:SUBMITTED;index"`
	SubmittedAt time.Time     `json:"submitted_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Answers []StudentAnswer  `json:"answers,omitempty" gorm:"foreignKey:SessionID;references:SessionID"`
	Scores  []CandidateScore `json:"scores,omitempty" gorm:"foreignKey:SessionID;references:SessionID"`
}

func (TestSession) TableName() string {
	return "test_sessions"
}

// StudentAnswer stores one submitted response. Answer holds the raw payload
// (encoded answer string plus client metadata); IsCorrect is nil for
// questions that were submitted without any input.
type StudentAnswer struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	SessionID  string         `json:"session_id" gorm:"index;size:64;not null"`
	QuestionID string         `json:"question_id" gorm:"index;size:64;not null"`
	Answer     datatypes.JSON `json:"answer"`
	IsCorrect  *bool          `json:"is_correct"`

	CreatedAt time.Time `json:"created_at"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}

// CandidateScore is one score row for a session: one row per career cluster
// plus a single overall row with a nil ClusterID.
type CandidateScore struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	SessionID        string  `json:"session_id" gorm:"index;size:64;not null"`
	ClusterID        *string `json:"cluster_id" gorm:"index;size:64"`
	TotalQuestions   int     `json:"total_questions"`
	CorrectAnswers   int     `json:"correct_answers"`
	IncorrectAnswers int     `json:"incorrect_answers"`
	Unanswered       int     `json:"unanswered"`
	ScorePercentage  int     `json:"score_percentage"`
	ClusterScore     int     `json:"cluster_score"`

	CreatedAt time.Time `json:"created_at"`
}

func (CandidateScore) TableName() string {
	return "candidate_scores"
}

// Overall reports whether this row is the session-wide aggregate.
func (s *CandidateScore) Overall() bool {
	return s.ClusterID == nil
}
