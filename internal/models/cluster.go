package models

import (
	"time"

	"gorm.io/datatypes"
)

// Cluster is a career cluster questions score into.
type Cluster struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	ClusterID   string  `json:"cluster_id" gorm:"uniqueIndex;size:64;not null"`
	Name        string  `json:"name" gorm:"size:200;not null" validate:"required,max=200"`
	Description *string `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cluster) TableName() string {
	return "clusters"
}

// CorrectAnswer is the answer key for one question, stored in the same
// encoded wire form the clients submit.
type CorrectAnswer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID string `json:"question_id" gorm:"uniqueIndex;size:64;not null"`
	Answer     string `json:"answer" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CorrectAnswer) TableName() string {
	return "correct_answers"
}

// Pathway is the career pathway narrative attached to a cluster, shown in
// the result report.
type Pathway struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ClusterID   string `json:"cluster_id" gorm:"uniqueIndex;size:64;not null"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Subtitle    string `json:"subtitle" gorm:"size:300"`
	Description string `json:"description" gorm:"type:text"`
	CareerImage string `json:"career_image" gorm:"size:500"`
	TryThis     string `json:"try_this" gorm:"type:text"`

	Skills   datatypes.JSON `json:"skills"`
	Subjects datatypes.JSON `json:"subjects"`
	Careers  datatypes.JSON `json:"careers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pathway) TableName() string {
	return "pathways"
}
