package models

import "time"

// Language is the closed set of UI/persona languages the coach supports.
type Language string

const (
	LanguageEN Language = "en"
	LanguageDE Language = "de"
)

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == LanguageEN || l == LanguageDE
}

// Session represents one user's onboarded session. Sessions live in memory
// only and are removed by explicit delete or the idle sweep.
type Session struct {
	SessionID    string    `json:"sessionId"`
	UserName     string    `json:"userName"`
	UserAge      *int      `json:"userAge,omitempty"`
	Language     Language  `json:"language"`
	CurrentTab   string    `json:"currentTab"`
	UnlockedTabs []string  `json:"unlockedTabs"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

// CreateSessionRequest is the body for POST /api/session/create.
type CreateSessionRequest struct {
	UserName string   `json:"userName"`
	UserAge  *int     `json:"userAge,omitempty"`
	Language Language `json:"language"`
}

// UpdateSessionRequest is the body for PUT /api/session/:sessionId.
// Nil fields are left untouched.
type UpdateSessionRequest struct {
	UserName   *string   `json:"userName,omitempty"`
	UserAge    *int      `json:"userAge,omitempty"`
	Language   *Language `json:"language,omitempty"`
	CurrentTab *string   `json:"currentTab,omitempty"`
}
