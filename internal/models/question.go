package models

import "time"

type QuestionType string

const (
	TypeMCQ            QuestionType = "MCQ"
	TypeCodeAnalysis   QuestionType = "Code Analysis"
	TypeCodeCompletion QuestionType = "Code Completion"
	TypeDSAChallenge   QuestionType = "DSA Challenge"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// InterviewQuestion is created when a question is emitted. UserAnswer, Score,
// and Feedback are filled in at most once, when the matching answer is scored;
// a question that is never answered is discarded when the next one replaces it.
type InterviewQuestion struct {
	ID             string       `bson:"id" json:"id"`
	Type           QuestionType `bson:"type" json:"type"`
	Difficulty     Difficulty   `bson:"difficulty" json:"difficulty"`
	Category       string       `bson:"category" json:"category"`
	Question       string       `bson:"question" json:"question"`
	CodeSnippet    string       `bson:"code_snippet,omitempty" json:"code_snippet,omitempty"`
	Options        []string     `bson:"options,omitempty" json:"options,omitempty"`
	ExpectedAnswer string       `bson:"expected_answer,omitempty" json:"expected_answer,omitempty"`

	UserAnswer string `bson:"user_answer,omitempty" json:"user_answer,omitempty"`
	Score      *int   `bson:"score,omitempty" json:"score,omitempty"`
	Feedback   string `bson:"feedback,omitempty" json:"feedback,omitempty"`

	TimeSpentSeconds int64     `bson:"time_spent_seconds,omitempty" json:"time_spent_seconds,omitempty"`
	Timestamp        time.Time `bson:"timestamp" json:"timestamp"`
}

// DifficultyForSkillLevel is the fixed local mapping; in-session performance
// does not adjust it (any adaptivity lives in the LLM prompt, not here).
func DifficultyForSkillLevel(level int) Difficulty {
	switch {
	case level <= 2:
		return DifficultyEasy
	case level <= 4:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
