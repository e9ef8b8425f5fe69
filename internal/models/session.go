package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionPaused    = "paused"
)

// InterviewSession is one practice interview. It is mutated while active
// (questions accumulate as they are asked and scored) and becomes immutable
// once appended to the profile history.
type InterviewSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"session_id" json:"session_id"` // uuid v4
	UserID    string             `bson:"user_id" json:"user_id"`

	Language   string `bson:"language" json:"language"`
	SkillLevel int    `bson:"skill_level" json:"skill_level"`
	Status     string `bson:"status" json:"status"` // active|completed|paused

	Questions    []InterviewQuestion `bson:"questions" json:"questions"`
	OverallScore float64             `bson:"overall_score" json:"overall_score"`
	Feedback     string              `bson:"feedback,omitempty" json:"feedback,omitempty"`

	StartTime time.Time  `bson:"start_time" json:"start_time"`
	EndTime   *time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`

	DurationSeconds int64 `bson:"duration_seconds" json:"duration_seconds"`
}
