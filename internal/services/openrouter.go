package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"visioncoach/internal/models"
	"visioncoach/internal/prompts"

	cache "github.com/patrickmn/go-cache"
)

// maxPromptHistory caps how much conversation history goes into a prompt.
// Independent of the store's maxStoredMessages retention bound; the tighter
// cap binds for prompt construction.
const maxPromptHistory = 20

// upstreamTimeout bounds every upstream exchange, handshake through body.
// A hung upstream releases the relay task instead of holding it forever.
const upstreamTimeout = 120 * time.Second

// probeCacheKey / probeCacheTTL govern the cached connectivity probe.
const (
	probeCacheKey = "connected"
	probeCacheTTL = 60 * time.Second
)

// ErrNoAPIKey is returned when the upstream credential is not configured.
var ErrNoAPIKey = errors.New("OpenRouter API key is not configured")

// OpenRouterService talks to an OpenRouter-compatible completion API: prompt
// assembly, one-shot completions, incremental streaming, and a liveness probe.
type OpenRouterService struct {
	baseURL    string
	apiKey     string
	client     *http.Client
	probeCache *cache.Cache
}

// NewOpenRouterService creates a client for the given base URL and credential.
// An empty apiKey is allowed; calls then fail with ErrNoAPIKey.
func NewOpenRouterService(baseURL, apiKey string) *OpenRouterService {
	return &OpenRouterService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		client:     &http.Client{Timeout: upstreamTimeout},
		probeCache: cache.New(probeCacheTTL, 5*time.Minute),
	}
}

// HasCredential reports whether an upstream credential is configured.
func (s *OpenRouterService) HasCredential() bool {
	return s.apiKey != ""
}

// BuildMessages assembles the prompt for one turn: the language's persona
// text first, then at most the last maxPromptHistory history entries in
// original order, then the new user message if non-empty. Pure.
func (s *OpenRouterService) BuildMessages(history []models.Message, language models.Language, newUserText string) []models.PromptMessage {
	messages := []models.PromptMessage{
		{Role: models.RoleSystem, Content: prompts.System(language)},
	}

	recent := history
	if len(recent) > maxPromptHistory {
		recent = recent[len(recent)-maxPromptHistory:]
	}
	for _, msg := range recent {
		messages = append(messages, models.PromptMessage{Role: msg.Role, Content: msg.Content})
	}

	if newUserText != "" {
		messages = append(messages, models.PromptMessage{Role: models.RoleUser, Content: newUserText})
	}
	return messages
}

func (s *OpenRouterService) newCompletionRequest(ctx context.Context, model string, messages []models.PromptMessage, temperature float64, maxTokens int, stream bool) (*http.Request, error) {
	body := models.CompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      stream,
	}
	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("HTTP-Referer", "https://ai-coaching-agent.com")
	req.Header.Set("X-Title", "AI Coaching Agent")
	return req, nil
}

// upstreamErrorMessage extracts the error message from a failed upstream
// response body, falling back to the HTTP status.
func upstreamErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	var envelope models.UpstreamError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return resp.Status
}

// Complete performs a single non-streaming completion round trip and returns
// the full response text.
func (s *OpenRouterService) Complete(ctx context.Context, model string, messages []models.PromptMessage, temperature float64, maxTokens int) (string, error) {
	if s.apiKey == "" {
		return "", ErrNoAPIKey
	}

	req, err := s.newCompletionRequest(ctx, model, messages, temperature, maxTokens, false)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API error (status %d): %s", resp.StatusCode, upstreamErrorMessage(resp))
	}

	var result models.CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}

// StreamCompletion opens a streaming completion and returns a pull-based
// stream of text fragments. The caller must Close the stream; Close is safe
// after normal exhaustion and on early abandonment.
func (s *OpenRouterService) StreamCompletion(ctx context.Context, model string, messages []models.PromptMessage, temperature float64, maxTokens int) (*CompletionStream, error) {
	if s.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	req, err := s.newCompletionRequest(ctx, model, messages, temperature, maxTokens, true)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, fmt.Errorf("OpenRouter API error (status %d): %s", resp.StatusCode, upstreamErrorMessage(resp))
	}

	scanner := bufio.NewScanner(resp.Body)
	// 1MB buffer for large SSE records (default is 64KB).
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)

	return &CompletionStream{
		body:    resp.Body,
		scanner: scanner,
	}, nil
}

// CompletionStream is a finite, forward-only sequence of text fragments
// decoded from an upstream SSE body. Not restartable and not safe for
// concurrent use.
type CompletionStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	current string
	err     error
	done    bool
}

// Next advances to the next non-empty text fragment. It returns false when
// the upstream sends its terminator record, the body ends, or a read fails;
// check Err afterwards. Malformed records are logged and skipped.
func (c *CompletionStream) Next() bool {
	if c.done {
		return false
	}

	for c.scanner.Scan() {
		line := strings.TrimSpace(c.scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			c.finish()
			return false
		}

		var chunk models.StreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			log.Printf("⚠️  Skipping malformed stream record: %v", err)
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			c.current = content
			return true
		}
	}

	c.err = c.scanner.Err()
	c.finish()
	return false
}

// Text returns the fragment produced by the last successful Next.
func (c *CompletionStream) Text() string {
	return c.current
}

// Err returns the first transport error encountered, if any. A clean
// terminator or EOF yields nil.
func (c *CompletionStream) Err() error {
	return c.err
}

// Close releases the underlying transport. Idempotent.
func (c *CompletionStream) Close() error {
	return c.finish()
}

func (c *CompletionStream) finish() error {
	if c.done {
		return nil
	}
	c.done = true
	return c.body.Close()
}

// TestConnection is a best-effort liveness probe against the upstream models
// endpoint. Any failure yields false. The result is cached for probeCacheTTL
// so startup and repeated health checks don't hammer the upstream.
func (s *OpenRouterService) TestConnection(ctx context.Context) bool {
	if s.apiKey == "" {
		return false
	}

	if cached, found := s.probeCache.Get(probeCacheKey); found {
		return cached.(bool)
	}

	connected := s.probe(ctx)
	s.probeCache.Set(probeCacheKey, connected, cache.DefaultExpiration)
	return connected
}

func (s *OpenRouterService) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️  OpenRouter connection test failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
