package models

import "time"

// MessageRole is the role tag attached to every stored and prompted message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single chat message. Immutable once created; Model is set only
// on assistant messages and names the model that produced the text.
type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Model     string      `json:"model,omitempty"`
}

// Conversation is the ordered message log for one (session, tab) pair plus
// its per-tab model settings.
type Conversation struct {
	SessionID      string    `json:"sessionId"`
	TabID          string    `json:"tabId"`
	Messages       []Message `json:"messages"`
	Model          string    `json:"model"`
	ComparisonMode bool      `json:"comparisonMode"`
	ModelB         string    `json:"modelB,omitempty"`
}

// ConversationSettings is the partial-update body for PUT /api/chat/settings.
// Nil fields are left untouched.
type ConversationSettings struct {
	Model          *string `json:"model,omitempty"`
	ComparisonMode *bool   `json:"comparisonMode,omitempty"`
	ModelB         *string `json:"modelB,omitempty"`
}

// ChatRequest is the body for POST /api/chat/send.
type ChatRequest struct {
	SessionID      string `json:"sessionId"`
	TabID          string `json:"tabId"`
	Message        string `json:"message"`
	Model          string `json:"model"`
	ComparisonMode bool   `json:"comparisonMode,omitempty"`
	ModelB         string `json:"modelB,omitempty"`
}
