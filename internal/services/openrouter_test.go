package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"visioncoach/internal/models"
	"visioncoach/internal/prompts"
)

func TestBuildMessagesSystemFirst(t *testing.T) {
	svc := NewOpenRouterService("http://unused", "key")

	msgs := svc.BuildMessages(nil, models.LanguageEN, "hello")
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleSystem {
		t.Errorf("Expected system message first, got %s", msgs[0].Role)
	}
	if msgs[0].Content != prompts.System(models.LanguageEN) {
		t.Error("Expected the English persona text")
	}
	if msgs[1].Role != models.RoleUser || msgs[1].Content != "hello" {
		t.Errorf("Expected trailing user message, got %+v", msgs[1])
	}

	msgsDE := svc.BuildMessages(nil, models.LanguageDE, "hallo")
	if msgsDE[0].Content != prompts.System(models.LanguageDE) {
		t.Error("Expected the German persona text")
	}
	if msgsDE[0].Content == msgs[0].Content {
		t.Error("Expected language variants to differ")
	}
}

func TestBuildMessagesHistoryWindow(t *testing.T) {
	svc := NewOpenRouterService("http://unused", "key")

	var history []models.Message
	for i := 0; i < 25; i++ {
		history = append(history, models.Message{
			ID:      fmt.Sprintf("m%d", i),
			Role:    models.RoleUser,
			Content: fmt.Sprintf("turn %d", i),
		})
	}

	msgs := svc.BuildMessages(history, models.LanguageEN, "newest")
	// persona + last 20 history entries + new message
	if len(msgs) != 22 {
		t.Fatalf("Expected 22 messages, got %d", len(msgs))
	}
	if msgs[1].Content != "turn 5" {
		t.Errorf("Expected window to start at turn 5, got %q", msgs[1].Content)
	}
	if msgs[20].Content != "turn 24" {
		t.Errorf("Expected window to end at turn 24, got %q", msgs[20].Content)
	}
	if msgs[21].Content != "newest" {
		t.Errorf("Expected new message last, got %q", msgs[21].Content)
	}

	// Without a new message the window alone follows the persona
	msgs = svc.BuildMessages(history, models.LanguageEN, "")
	if len(msgs) != 21 {
		t.Fatalf("Expected 21 messages without a new user turn, got %d", len(msgs))
	}
}

func TestStreamCompletion(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected auth header %q", auth)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {not json}\n\n") // malformed record, must be skipped
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{}}]}\n\n") // empty delta, no fragment
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer upstream.Close()

	svc := NewOpenRouterService(upstream.URL, "test-key")
	stream, err := svc.StreamCompletion(context.Background(), "test/model", nil, 0.7, 100)
	if err != nil {
		t.Fatalf("Failed to open stream: %v", err)
	}
	defer stream.Close()

	var fragments []string
	for stream.Next() {
		fragments = append(fragments, stream.Text())
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("Unexpected stream error: %v", err)
	}
	if strings.Join(fragments, "") != "Hello" {
		t.Errorf("Expected fragments to assemble Hello, got %v", fragments)
	}
	if len(fragments) != 2 {
		t.Errorf("Expected 2 fragments, got %d", len(fragments))
	}

	// Close after exhaustion is fine, and Next stays false
	if err := stream.Close(); err != nil {
		t.Errorf("Unexpected close error: %v", err)
	}
	if stream.Next() {
		t.Error("Expected Next to stay false after close")
	}
}

func TestStreamCompletionUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","code":429}}`)
	}))
	defer upstream.Close()

	svc := NewOpenRouterService(upstream.URL, "test-key")
	_, err := svc.StreamCompletion(context.Background(), "test/model", nil, 0.7, 100)
	if err == nil {
		t.Fatal("Expected an error for a failed handshake")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("Expected upstream message in error, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"content":"full answer"}}]}`)
	}))
	defer upstream.Close()

	svc := NewOpenRouterService(upstream.URL, "test-key")
	text, err := svc.Complete(context.Background(), "test/model", nil, 0.7, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "full answer" {
		t.Errorf("Expected full answer, got %q", text)
	}
}

func TestMissingCredential(t *testing.T) {
	svc := NewOpenRouterService("http://unused", "")

	if svc.HasCredential() {
		t.Error("Expected no credential")
	}
	if _, err := svc.Complete(context.Background(), "m", nil, 0.7, 100); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got %v", err)
	}
	if _, err := svc.StreamCompletion(context.Background(), "m", nil, 0.7, 100); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got %v", err)
	}
	if svc.TestConnection(context.Background()) {
		t.Error("Expected probe to fail without a credential")
	}
}

func TestTestConnectionCachesResult(t *testing.T) {
	hits := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	svc := NewOpenRouterService(upstream.URL, "test-key")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if !svc.TestConnection(ctx) {
		t.Fatal("Expected probe to succeed")
	}
	if !svc.TestConnection(ctx) {
		t.Fatal("Expected cached probe to succeed")
	}
	if hits != 1 {
		t.Errorf("Expected a single upstream probe, got %d", hits)
	}
}
