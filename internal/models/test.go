package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/PathFinder-2025/discovery-service/internal/quiz"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TestType string

const (
	TestTypeGeneral  TestType = "general"
	TestTypeMissions TestType = "missions"
)

// Test is one deployable question set. Version is a monotonically increasing
// integer; clients compare the derived token to decide whether their cached
// copy is stale.
type Test struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	TestID      string   `json:"test_id" gorm:"uniqueIndex;size:64;not null"`
	Name        string   `json:"name" gorm:"size:200;not null" validate:"required,max=200"`
	Type        TestType `json:"type" gorm:"size:20;index;not null" validate:"required,test_type"`
	Version     int      `json:"version" gorm:"default:1" validate:"min=1"`
	Description *string  `json:"description" gorm:"type:text"`
	Active      bool     `json:"active" gorm:"default:true;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:TestID;references:TestID"`
}

func (Test) TableName() string {
	return "tests"
}

// VersionToken renders the client-facing version string for this test.
func (t *Test) VersionToken() string {
	return fmt.Sprintf("%d.0.0", t.Version)
}

// Question is the stored form of a quiz question. The variant payload lives
// in Content as JSON; quiz.Question is the working representation.
type Question struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	QuestionID   string         `json:"question_id" gorm:"uniqueIndex;size:64;not null"`
	TestID       string         `json:"test_id" gorm:"index;size:64;not null"`
	ClusterID    *string        `json:"cluster_id" gorm:"index;size:64"`
	Type         string         `json:"type" gorm:"size:20;not null" validate:"required,question_type"`
	DisplayOrder int            `json:"display_order" gorm:"not null;index"`
	Content      datatypes.JSON `json:"content" gorm:"not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// ToQuizQuestion materializes the stored payload into the working question
// type. The row's identity columns win over whatever the payload carries.
func (q *Question) ToQuizQuestion() (*quiz.Question, error) {
	var out quiz.Question
	if err := json.Unmarshal(q.Content, &out); err != nil {
		return nil, fmt.Errorf("question %s: invalid content: %w", q.QuestionID, err)
	}
	out.ID = q.QuestionID
	out.Type = quiz.QuestionType(q.Type)
	out.DisplayOrder = q.DisplayOrder
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewQuestionContent serializes a working question into the stored column
// form, for seeding and import paths.
func NewQuestionContent(q *quiz.Question) (datatypes.JSON, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("question %s: marshal content: %w", q.ID, err)
	}
	return raw, nil
}

// Mission links a primary question with an optional secondary follow-up
// inside the missions test. The secondary is revealed to the client only
// after the primary has a response.
type Mission struct {
	ID                  uint    `json:"id" gorm:"primaryKey"`
	MissionID           string  `json:"mission_id" gorm:"uniqueIndex;size:64;not null"`
	TestID              string  `json:"test_id" gorm:"index;size:64;not null"`
	DisplayOrder        int     `json:"display_order" gorm:"not null"`
	Title               string  `json:"title" gorm:"size:200"`
	PrimaryQuestionID   string  `json:"primary_question_id" gorm:"size:64;not null"`
	SecondaryQuestionID *string `json:"secondary_question_id" gorm:"size:64"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Mission) TableName() string {
	return "missions"
}
