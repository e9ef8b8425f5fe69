package models

import "time"

type InterviewStyle string

const (
	StyleTechnical  InterviewStyle = "technical"
	StyleBehavioral InterviewStyle = "behavioral"
	StyleMixed      InterviewStyle = "mixed"
)

type Preferences struct {
	InterviewStyle InterviewStyle `bson:"interview_style" json:"interview_style"` // technical|behavioral|mixed
	Difficulty     string         `bson:"difficulty" json:"difficulty"`           // adaptive|fixed
	Persona        string         `bson:"persona" json:"persona"`                 // faang|startup|enterprise|academic
}

func DefaultPreferences() Preferences {
	return Preferences{
		InterviewStyle: StyleTechnical,
		Difficulty:     "adaptive",
		Persona:        "faang",
	}
}

// Profile is the per-user interview profile document. SelectedLanguage is
// empty only before the first topic selection; SkillLevel is always in [1,5].
// History is an append-only log of finished sessions. Concurrent writers
// (multiple tabs) resolve last-writer-wins; there is no versioning.
type Profile struct {
	UserID           string             `bson:"user_id" json:"user_id"`
	SelectedLanguage string             `bson:"selected_language,omitempty" json:"selected_language,omitempty"`
	SkillLevel       int                `bson:"skill_level" json:"skill_level"`
	Preferences      Preferences        `bson:"preferences" json:"preferences"`
	History          []InterviewSession `bson:"history" json:"history"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:      userID,
		SkillLevel:  1,
		Preferences: DefaultPreferences(),
		History:     []InterviewSession{},
		UpdatedAt:   time.Now().UTC(),
	}
}

type ProfileStats struct {
	TotalSessions     int       `json:"total_sessions"`
	CompletedSessions int       `json:"completed_sessions"`
	AverageScore      float64   `json:"average_score"`
	Languages         []string  `json:"languages"`
	RecentPerformance []float64 `json:"recent_performance"`
}
