package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of events the service publishes
type EventType string

const (
	EventSubmissionCompleted EventType = "submission.completed"
	EventSubmissionScored    EventType = "submission.scored"
)

// SubmissionEvent is the envelope for all submission-related events
type SubmissionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// SubmissionCompletedData is the payload emitted after a candidate's
// responses have been stored and scored.
type SubmissionCompletedData struct {
	SessionID      string    `json:"session_id"`
	UserID         string    `json:"user_id"`
	TestID         *string   `json:"test_id,omitempty"`
	OverallScore   float64   `json:"overall_score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	TopClusterID   string    `json:"top_cluster_id,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// NewSubmissionCompletedEvent wraps the payload in a versioned envelope.
func NewSubmissionCompletedEvent(data SubmissionCompletedData) *SubmissionEvent {
	return &SubmissionEvent{
		ID:        uuid.NewString(),
		Type:      EventSubmissionCompleted,
		Timestamp: time.Now(),
		Source:    "discovery-service",
		Version:   "1.0",
		Data:      data,
	}
}
