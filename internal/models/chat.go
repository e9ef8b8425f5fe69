package models

import "time"

type MessageRole string

const (
	RoleUserMessage      MessageRole = "user"
	RoleAssistantMessage MessageRole = "assistant"
	RoleSystemMessage    MessageRole = "system"
)

type MessageMetadata struct {
	QuestionID string `json:"question_id,omitempty"`
	Score      *int   `json:"score,omitempty"`
	Type       string `json:"type,omitempty"`
}

// ChatMessage is one entry in the ordered, append-only transcript.
type ChatMessage struct {
	ID        string           `json:"id"`
	Role      MessageRole      `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}
