package services

import (
	"log"
	"sync"
	"time"

	"visioncoach/internal/models"

	"github.com/google/uuid"
)

// SessionStore keeps every live session in process memory. Deleting a
// session cascades into the conversation store.
type SessionStore struct {
	sessions      map[string]*models.Session
	conversations *ConversationStore
	defaultTab    string
	mutex         sync.RWMutex
}

// NewSessionStore creates a session store. defaultTab is the always-unlocked
// tab every new session starts on.
func NewSessionStore(conversations *ConversationStore, defaultTab string) *SessionStore {
	return &SessionStore{
		sessions:      make(map[string]*models.Session),
		conversations: conversations,
		defaultTab:    defaultTab,
	}
}

// Create registers a new session and lazily materializes the conversation
// for its default tab.
func (s *SessionStore) Create(userName string, language models.Language, userAge *int) *models.Session {
	now := time.Now()
	session := &models.Session{
		SessionID:    uuid.New().String(),
		UserName:     userName,
		UserAge:      userAge,
		Language:     language,
		CurrentTab:   s.defaultTab,
		UnlockedTabs: []string{s.defaultTab},
		CreatedAt:    now,
		LastActiveAt: now,
	}

	s.mutex.Lock()
	s.sessions[session.SessionID] = session
	s.mutex.Unlock()

	s.conversations.GetOrCreate(session.SessionID, s.defaultTab)

	log.Printf("✅ Session created: %s for user: %s", session.SessionID, userName)
	return snapshotSession(session)
}

// Get returns the session and touches its last-active timestamp. A missing
// id is a normal outcome, not an error; callers use it to trigger
// re-onboarding.
func (s *SessionStore) Get(sessionID string) (*models.Session, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	session.LastActiveAt = time.Now()
	return snapshotSession(session), true
}

// Update merges the provided fields and touches the last-active timestamp.
func (s *SessionStore) Update(sessionID string, updates models.UpdateSessionRequest) (*models.Session, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}

	if updates.UserName != nil {
		session.UserName = *updates.UserName
	}
	if updates.UserAge != nil {
		session.UserAge = updates.UserAge
	}
	if updates.Language != nil {
		session.Language = *updates.Language
	}
	if updates.CurrentTab != nil {
		session.CurrentTab = *updates.CurrentTab
	}
	session.LastActiveAt = time.Now()

	return snapshotSession(session), true
}

// Delete removes the session and every conversation it owns. Idempotent.
func (s *SessionStore) Delete(sessionID string) bool {
	s.mutex.Lock()
	_, exists := s.sessions[sessionID]
	if exists {
		delete(s.sessions, sessionID)
	}
	s.mutex.Unlock()

	if !exists {
		return false
	}
	s.conversations.DeleteBySession(sessionID)
	return true
}

// Unlock adds tabID to the session's unlocked set. The set only grows; adding
// an already-present tab is a no-op. Returns false for an unknown session.
func (s *SessionStore) Unlock(sessionID, tabID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return false
	}
	for _, unlocked := range session.UnlockedTabs {
		if unlocked == tabID {
			return true
		}
	}
	session.UnlockedTabs = append(session.UnlockedTabs, tabID)
	return true
}

// IsUnlocked reports whether tabID is in the session's unlocked set. False
// for unknown sessions. Does not touch last-active.
func (s *SessionStore) IsUnlocked(sessionID, tabID string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return false
	}
	for _, unlocked := range session.UnlockedTabs {
		if unlocked == tabID {
			return true
		}
	}
	return false
}

// Count returns the number of live sessions.
func (s *SessionStore) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

// SweepExpired deletes every session idle longer than timeout and returns how
// many were removed. Runs from the background sweep job; failures there are a
// latent resource leak, so callers log the count.
func (s *SessionStore) SweepExpired(now time.Time, timeout time.Duration) int {
	s.mutex.RLock()
	var expired []string
	for id, session := range s.sessions {
		if now.Sub(session.LastActiveAt) > timeout {
			expired = append(expired, id)
		}
	}
	s.mutex.RUnlock()

	for _, id := range expired {
		s.Delete(id)
	}

	if len(expired) > 0 {
		log.Printf("🧹 Cleaned up %d expired session(s)", len(expired))
	}
	return len(expired)
}

// SetLastActive overrides a session's last-active timestamp. Used by tests to
// exercise sweep boundaries.
func (s *SessionStore) SetLastActive(sessionID string, t time.Time) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return false
	}
	session.LastActiveAt = t
	return true
}

func snapshotSession(session *models.Session) *models.Session {
	out := *session
	out.UnlockedTabs = make([]string, len(session.UnlockedTabs))
	copy(out.UnlockedTabs, session.UnlockedTabs)
	return &out
}
