package services

import (
	"testing"
	"time"

	"visioncoach/internal/models"
)

func newTestStores() (*SessionStore, *ConversationStore) {
	conversations := NewConversationStore("test/model")
	sessions := NewSessionStore(conversations, "self-exploration")
	return sessions, conversations
}

func TestSessionCreateAndGet(t *testing.T) {
	sessions, conversations := newTestStores()

	age := 34
	created := sessions.Create("Alex", models.LanguageDE, &age)

	if created.SessionID == "" {
		t.Fatal("Expected a generated session ID")
	}
	if created.UserName != "Alex" {
		t.Errorf("Expected userName Alex, got %s", created.UserName)
	}
	if created.Language != models.LanguageDE {
		t.Errorf("Expected language de, got %s", created.Language)
	}
	if created.UserAge == nil || *created.UserAge != 34 {
		t.Errorf("Expected userAge 34, got %v", created.UserAge)
	}
	if created.CurrentTab != "self-exploration" {
		t.Errorf("Expected default tab, got %s", created.CurrentTab)
	}
	if len(created.UnlockedTabs) != 1 || created.UnlockedTabs[0] != "self-exploration" {
		t.Errorf("Expected only the default tab unlocked, got %v", created.UnlockedTabs)
	}

	got, ok := sessions.Get(created.SessionID)
	if !ok {
		t.Fatal("Expected to find the created session")
	}
	if got.UserName != "Alex" {
		t.Errorf("Expected userName Alex, got %s", got.UserName)
	}

	// Creation lazily materializes the default tab's conversation
	if _, ok := conversations.Get(created.SessionID, "self-exploration"); !ok {
		t.Error("Expected a conversation for the default tab")
	}
}

func TestSessionGetUnknown(t *testing.T) {
	sessions, _ := newTestStores()

	if _, ok := sessions.Get("nope"); ok {
		t.Error("Expected unknown session to be a miss")
	}
}

func TestSessionGetTouchesLastActive(t *testing.T) {
	sessions, _ := newTestStores()

	created := sessions.Create("Alex", models.LanguageEN, nil)
	stale := time.Now().Add(-10 * time.Minute)
	sessions.SetLastActive(created.SessionID, stale)

	got, ok := sessions.Get(created.SessionID)
	if !ok {
		t.Fatal("Expected session")
	}
	if !got.LastActiveAt.After(stale) {
		t.Error("Expected Get to refresh LastActiveAt")
	}
}

func TestSessionUpdate(t *testing.T) {
	sessions, _ := newTestStores()

	created := sessions.Create("Alex", models.LanguageEN, nil)

	name := "Sam"
	lang := models.LanguageDE
	tab := "multi-minds"
	updated, ok := sessions.Update(created.SessionID, models.UpdateSessionRequest{
		UserName:   &name,
		Language:   &lang,
		CurrentTab: &tab,
	})
	if !ok {
		t.Fatal("Expected update to succeed")
	}
	if updated.UserName != "Sam" || updated.Language != models.LanguageDE || updated.CurrentTab != "multi-minds" {
		t.Errorf("Partial update not applied: %+v", updated)
	}
	// Untouched fields survive
	if updated.UserAge != nil {
		t.Errorf("Expected userAge untouched, got %v", updated.UserAge)
	}

	if _, ok := sessions.Update("nope", models.UpdateSessionRequest{UserName: &name}); ok {
		t.Error("Expected update of unknown session to fail")
	}
}

func TestSessionDeleteCascades(t *testing.T) {
	sessions, conversations := newTestStores()

	created := sessions.Create("Alex", models.LanguageEN, nil)
	conversations.GetOrCreate(created.SessionID, "multi-minds")

	if !sessions.Delete(created.SessionID) {
		t.Fatal("Expected delete to succeed")
	}
	if _, ok := sessions.Get(created.SessionID); ok {
		t.Error("Expected session to be gone")
	}
	if _, ok := conversations.Get(created.SessionID, "self-exploration"); ok {
		t.Error("Expected default-tab conversation to cascade")
	}
	if _, ok := conversations.Get(created.SessionID, "multi-minds"); ok {
		t.Error("Expected second conversation to cascade")
	}

	// Idempotent
	if sessions.Delete(created.SessionID) {
		t.Error("Expected second delete to report not found")
	}
}

func TestSessionUnlockGrowsOnly(t *testing.T) {
	sessions, _ := newTestStores()

	created := sessions.Create("Alex", models.LanguageEN, nil)

	if sessions.IsUnlocked(created.SessionID, "multi-minds") {
		t.Error("Expected gated tab locked for a fresh session")
	}
	if !sessions.Unlock(created.SessionID, "multi-minds") {
		t.Fatal("Expected unlock to succeed")
	}
	if !sessions.IsUnlocked(created.SessionID, "multi-minds") {
		t.Error("Expected tab unlocked after Unlock")
	}

	// Unlocking again must not duplicate the entry
	sessions.Unlock(created.SessionID, "multi-minds")
	got, _ := sessions.Get(created.SessionID)
	if len(got.UnlockedTabs) != 2 {
		t.Errorf("Expected 2 unlocked tabs, got %v", got.UnlockedTabs)
	}

	if sessions.Unlock("nope", "multi-minds") {
		t.Error("Expected unlock of unknown session to fail")
	}
}

func TestSweepExpired(t *testing.T) {
	sessions, conversations := newTestStores()
	timeout := time.Hour
	now := time.Now()

	fresh := sessions.Create("Fresh", models.LanguageEN, nil)
	boundary := sessions.Create("Boundary", models.LanguageEN, nil)
	expired := sessions.Create("Expired", models.LanguageEN, nil)

	sessions.SetLastActive(fresh.SessionID, now.Add(-30*time.Minute))
	// Exactly at the timeout is not yet expired; one millisecond past is
	sessions.SetLastActive(boundary.SessionID, now.Add(-timeout))
	sessions.SetLastActive(expired.SessionID, now.Add(-timeout-time.Millisecond))

	removed := sessions.SweepExpired(now, timeout)
	if removed != 1 {
		t.Fatalf("Expected 1 session swept, got %d", removed)
	}
	if _, ok := sessions.Get(fresh.SessionID); !ok {
		t.Error("Expected fresh session to survive")
	}
	if _, ok := sessions.Get(boundary.SessionID); !ok {
		t.Error("Expected boundary session to survive")
	}
	if _, ok := sessions.Get(expired.SessionID); ok {
		t.Error("Expected expired session to be removed")
	}
	if _, ok := conversations.Get(expired.SessionID, "self-exploration"); ok {
		t.Error("Expected sweep to cascade into conversations")
	}
}

func TestSessionCount(t *testing.T) {
	sessions, _ := newTestStores()

	if sessions.Count() != 0 {
		t.Fatalf("Expected 0 sessions, got %d", sessions.Count())
	}
	sessions.Create("A", models.LanguageEN, nil)
	sessions.Create("B", models.LanguageEN, nil)
	if sessions.Count() != 2 {
		t.Errorf("Expected 2 sessions, got %d", sessions.Count())
	}
}
