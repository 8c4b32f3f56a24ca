package services

import (
	"fmt"
	"testing"
	"time"

	"visioncoach/internal/models"
)

func TestConversationGetOrCreate(t *testing.T) {
	store := NewConversationStore("test/model")

	conv := store.GetOrCreate("s1", "self-exploration")
	if conv.SessionID != "s1" || conv.TabID != "self-exploration" {
		t.Errorf("Unexpected conversation identity: %+v", conv)
	}
	if conv.Model != "test/model" {
		t.Errorf("Expected default model, got %s", conv.Model)
	}
	if len(conv.Messages) != 0 {
		t.Errorf("Expected empty message log, got %d", len(conv.Messages))
	}

	// Same key returns the same conversation, not a new one
	store.AppendMessage("s1", "self-exploration", models.Message{ID: "m1", Role: models.RoleUser, Content: "hi", Timestamp: time.Now()})
	again := store.GetOrCreate("s1", "self-exploration")
	if len(again.Messages) != 1 {
		t.Errorf("Expected existing conversation to be reused, got %d messages", len(again.Messages))
	}
}

func TestConversationIsolationAcrossTabs(t *testing.T) {
	store := NewConversationStore("test/model")

	store.AppendMessage("s1", "tab-a", models.Message{ID: "a", Role: models.RoleUser, Content: "a", Timestamp: time.Now()})
	store.AppendMessage("s1", "tab-b", models.Message{ID: "b", Role: models.RoleUser, Content: "b", Timestamp: time.Now()})

	convA, _ := store.Get("s1", "tab-a")
	convB, _ := store.Get("s1", "tab-b")
	if len(convA.Messages) != 1 || convA.Messages[0].ID != "a" {
		t.Errorf("Tab A log polluted: %+v", convA.Messages)
	}
	if len(convB.Messages) != 1 || convB.Messages[0].ID != "b" {
		t.Errorf("Tab B log polluted: %+v", convB.Messages)
	}
}

func TestConversationRetentionBound(t *testing.T) {
	store := NewConversationStore("test/model")

	for i := 0; i < 60; i++ {
		store.AppendMessage("s1", "tab", models.Message{
			ID:        fmt.Sprintf("m%d", i),
			Role:      models.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: time.Now(),
		})
	}

	conv, _ := store.Get("s1", "tab")
	if len(conv.Messages) != maxStoredMessages {
		t.Fatalf("Expected %d retained messages, got %d", maxStoredMessages, len(conv.Messages))
	}
	// The oldest 10 are dropped; order of the rest is preserved
	if conv.Messages[0].ID != "m10" {
		t.Errorf("Expected oldest retained message m10, got %s", conv.Messages[0].ID)
	}
	if conv.Messages[len(conv.Messages)-1].ID != "m59" {
		t.Errorf("Expected newest message m59, got %s", conv.Messages[len(conv.Messages)-1].ID)
	}
}

func TestConversationClearKeepsSettings(t *testing.T) {
	store := NewConversationStore("test/model")

	store.AppendMessage("s1", "tab", models.Message{ID: "m1", Role: models.RoleUser, Content: "hi", Timestamp: time.Now()})
	model := "other/model"
	comparison := true
	modelB := "second/model"
	store.UpdateSettings("s1", "tab", models.ConversationSettings{Model: &model, ComparisonMode: &comparison, ModelB: &modelB})

	if !store.Clear("s1", "tab") {
		t.Fatal("Expected clear to succeed")
	}

	conv, _ := store.Get("s1", "tab")
	if len(conv.Messages) != 0 {
		t.Errorf("Expected empty log after clear, got %d", len(conv.Messages))
	}
	if conv.Model != "other/model" || !conv.ComparisonMode || conv.ModelB != "second/model" {
		t.Errorf("Expected settings to survive clear: %+v", conv)
	}

	if store.Clear("s1", "missing") {
		t.Error("Expected clear of missing conversation to report false")
	}
}

func TestConversationUpdateSettingsPartial(t *testing.T) {
	store := NewConversationStore("test/model")
	store.GetOrCreate("s1", "tab")

	comparison := true
	conv, ok := store.UpdateSettings("s1", "tab", models.ConversationSettings{ComparisonMode: &comparison})
	if !ok {
		t.Fatal("Expected settings update to succeed")
	}
	if conv.Model != "test/model" {
		t.Errorf("Expected model untouched, got %s", conv.Model)
	}
	if !conv.ComparisonMode {
		t.Error("Expected comparisonMode set")
	}

	if _, ok := store.UpdateSettings("s1", "missing", models.ConversationSettings{}); ok {
		t.Error("Expected settings update on missing conversation to fail")
	}
}

func TestConversationSnapshotsAreCopies(t *testing.T) {
	store := NewConversationStore("test/model")
	store.AppendMessage("s1", "tab", models.Message{ID: "m1", Role: models.RoleUser, Content: "hi", Timestamp: time.Now()})

	conv, _ := store.Get("s1", "tab")
	conv.Messages[0].Content = "mutated"

	fresh, _ := store.Get("s1", "tab")
	if fresh.Messages[0].Content != "hi" {
		t.Error("Expected store state to be isolated from returned snapshots")
	}
}
