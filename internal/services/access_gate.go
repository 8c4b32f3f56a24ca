package services

import (
	"log"

	"visioncoach/internal/config"
)

// AccessGate decides whether a tab's content is reachable for a session and
// performs the unlock transition. A single shared password gates every tab
// whose catalog entry is locked; there are no per-tab secrets.
type AccessGate struct {
	sessions      *SessionStore
	conversations *ConversationStore
	catalog       *config.Catalog
	password      string
}

// NewAccessGate creates an access gate over the given stores and catalog.
func NewAccessGate(sessions *SessionStore, conversations *ConversationStore, catalog *config.Catalog, password string) *AccessGate {
	return &AccessGate{
		sessions:      sessions,
		conversations: conversations,
		catalog:       catalog,
		password:      password,
	}
}

// IsUnlocked reports whether tabID is reachable for the session. Base-
// unlocked tabs are reachable unconditionally; an unknown session yields
// false, not an error.
func (g *AccessGate) IsUnlocked(sessionID, tabID string) bool {
	if tab := g.catalog.Tab(tabID); tab != nil && !tab.Locked {
		return true
	}
	return g.sessions.IsUnlocked(sessionID, tabID)
}

// Unlock checks the shared password and, on success, idempotently adds tabID
// to the session's unlocked set and lazily creates that tab's conversation.
// Returns false for an unknown session or a wrong password.
//
// The comparison is not constant-time; the shared password is a soft gate,
// noted as a hardening gap.
func (g *AccessGate) Unlock(sessionID, tabID, suppliedPassword string) bool {
	if suppliedPassword != g.password {
		return false
	}
	if !g.sessions.Unlock(sessionID, tabID) {
		return false
	}

	g.conversations.GetOrCreate(sessionID, tabID)
	log.Printf("🔓 Tab %s unlocked for session %s", tabID, sessionID)
	return true
}
