package services

import (
	"log"
	"strings"
	"sync"

	"visioncoach/internal/models"
)

// maxStoredMessages bounds each conversation's message log. Oldest messages
// are dropped first. Independent of maxPromptHistory.
const maxStoredMessages = 50

// ConversationStore keeps every (session, tab) conversation in process
// memory. All mutation goes through the store's lock; request handlers and
// the sweep job share the same path.
type ConversationStore struct {
	conversations map[string]*models.Conversation
	defaultModel  string
	mutex         sync.RWMutex
}

// NewConversationStore creates a conversation store. defaultModel seeds new
// conversations; pass "" when no upstream credential is configured so the
// relay rejects sends.
func NewConversationStore(defaultModel string) *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*models.Conversation),
		defaultModel:  defaultModel,
	}
}

func conversationKey(sessionID, tabID string) string {
	return sessionID + ":" + tabID
}

// GetOrCreate returns the conversation for (sessionID, tabID), creating an
// empty one on first access.
func (s *ConversationStore) GetOrCreate(sessionID, tabID string) *models.Conversation {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := conversationKey(sessionID, tabID)
	conv, exists := s.conversations[key]
	if !exists {
		conv = &models.Conversation{
			SessionID:      sessionID,
			TabID:          tabID,
			Messages:       []models.Message{},
			Model:          s.defaultModel,
			ComparisonMode: false,
		}
		s.conversations[key] = conv
	}
	return snapshotConversation(conv)
}

// Get returns the conversation for (sessionID, tabID) without creating one.
func (s *ConversationStore) Get(sessionID, tabID string) (*models.Conversation, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	conv, exists := s.conversations[conversationKey(sessionID, tabID)]
	if !exists {
		return nil, false
	}
	return snapshotConversation(conv), true
}

// AppendMessage appends msg, creating the conversation if needed, and trims
// the log to the most recent maxStoredMessages entries.
func (s *ConversationStore) AppendMessage(sessionID, tabID string, msg models.Message) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	key := conversationKey(sessionID, tabID)
	conv, exists := s.conversations[key]
	if !exists {
		conv = &models.Conversation{
			SessionID: sessionID,
			TabID:     tabID,
			Messages:  []models.Message{},
			Model:     s.defaultModel,
		}
		s.conversations[key] = conv
	}

	conv.Messages = append(conv.Messages, msg)
	if len(conv.Messages) > maxStoredMessages {
		trimmed := make([]models.Message, maxStoredMessages)
		copy(trimmed, conv.Messages[len(conv.Messages)-maxStoredMessages:])
		conv.Messages = trimmed
	}
}

// Clear empties the message log but keeps the conversation record and its
// settings. Returns false if the conversation does not exist.
func (s *ConversationStore) Clear(sessionID, tabID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	conv, exists := s.conversations[conversationKey(sessionID, tabID)]
	if !exists {
		return false
	}
	conv.Messages = []models.Message{}
	return true
}

// UpdateSettings shallow-merges the provided settings into the conversation.
// Returns the updated conversation, or (nil, false) if it does not exist.
func (s *ConversationStore) UpdateSettings(sessionID, tabID string, settings models.ConversationSettings) (*models.Conversation, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	conv, exists := s.conversations[conversationKey(sessionID, tabID)]
	if !exists {
		return nil, false
	}

	if settings.Model != nil {
		conv.Model = *settings.Model
	}
	if settings.ComparisonMode != nil {
		conv.ComparisonMode = *settings.ComparisonMode
	}
	if settings.ModelB != nil {
		conv.ModelB = *settings.ModelB
	}
	return snapshotConversation(conv), true
}

// DeleteBySession removes every conversation owned by sessionID. Called from
// the session store's cascade delete.
func (s *ConversationStore) DeleteBySession(sessionID string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	deleted := 0
	prefix := sessionID + ":"
	for key := range s.conversations {
		if strings.HasPrefix(key, prefix) {
			delete(s.conversations, key)
			deleted++
		}
	}
	if deleted > 0 {
		log.Printf("🗑️  Deleted %d conversation(s) for session %s", deleted, sessionID)
	}
	return deleted
}

// snapshotConversation copies a conversation so callers never hold a pointer
// into the store's mutable state.
func snapshotConversation(conv *models.Conversation) *models.Conversation {
	out := *conv
	out.Messages = make([]models.Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return &out
}
