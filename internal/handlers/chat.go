package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"visioncoach/internal/config"
	"visioncoach/internal/logging"
	"visioncoach/internal/models"
	"visioncoach/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// ChatHandler drives chat turns: it relays the upstream model stream to the
// browser as server-sent events and manages per-tab conversation state.
type ChatHandler struct {
	sessions      *services.SessionStore
	conversations *services.ConversationStore
	gate          *services.AccessGate
	openrouter    *services.OpenRouterService
	catalog       *config.Catalog
	metrics       *services.Metrics
}

// NewChatHandler creates a new chat handler
func NewChatHandler(sessions *services.SessionStore, conversations *services.ConversationStore, gate *services.AccessGate, openrouter *services.OpenRouterService, catalog *config.Catalog, metrics *services.Metrics) *ChatHandler {
	return &ChatHandler{
		sessions:      sessions,
		conversations: conversations,
		gate:          gate,
		openrouter:    openrouter,
		catalog:       catalog,
		metrics:       metrics,
	}
}

// Send runs one chat turn and streams the assistant response(s)
// POST /api/chat/send
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		h.metrics.RecordChatError("validation")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.SessionID == "" || req.TabID == "" || req.Message == "" || req.Model == "" {
		h.metrics.RecordChatError("validation")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "sessionId, tabId, message and model are required",
		})
	}

	session, ok := h.sessions.Get(req.SessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}

	if !h.gate.IsUnlocked(req.SessionID, req.TabID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Tab is locked for this session",
		})
	}

	conv := h.conversations.GetOrCreate(req.SessionID, req.TabID)

	model := req.Model
	modelB := req.ModelB
	if modelB == "" {
		modelB = conv.ModelB
	}
	comparison := req.ComparisonMode && modelB != ""

	// Remember the turn's selection so the next turn defaults to it
	h.conversations.UpdateSettings(req.SessionID, req.TabID, models.ConversationSettings{
		Model:          &model,
		ComparisonMode: &comparison,
		ModelB:         &modelB,
	})

	// Prompt is built from the history as it stood before this turn, with the
	// new message appended exactly once by BuildMessages.
	history := conv.Messages
	messages := h.openrouter.BuildMessages(history, session.Language, req.Message)

	// The user turn is kept even when the model call fails below, so a failed
	// turn still shows the user's own message in history.
	h.conversations.AppendMessage(req.SessionID, req.TabID, models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Content:   req.Message,
		Timestamp: time.Now(),
	})

	h.metrics.RecordChatTurn()
	turnLog := logging.WithTurn(req.SessionID, req.TabID, model)
	turnLog.Info("chat turn started", "comparison", comparison)

	// Open the primary upstream stream before committing to an event-stream
	// response: a handshake failure here is still a plain HTTP error.
	stream, err := h.openrouter.StreamCompletion(context.Background(), model, messages, h.catalog.Temperature, h.catalog.MaxTokens)
	if err != nil {
		h.metrics.RecordChatError("upstream")
		log.Printf("❌ Upstream stream open failed for model %s: %v", model, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to reach the model provider",
		})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	sessionID, tabID := req.SessionID, req.TabID
	temperature, maxTokens := h.catalog.Temperature, h.catalog.MaxTokens

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		start := time.Now()
		defer func() {
			h.metrics.RecordStreamDuration(time.Since(start).Seconds())
		}()
		defer stream.Close()

		messageID := uuid.NewString()
		comparisonMessageID := ""
		if comparison {
			comparisonMessageID = uuid.NewString()
		}

		if err := writeEvent(w, models.NewStartEvent(messageID, comparisonMessageID)); err != nil {
			return
		}

		text, writeOK := pumpStream(w, stream, model, false)
		stream.Close()
		if !writeOK {
			// Client went away: drop the partial turn, persist nothing
			turnLog.Warn("client disconnected mid-stream")
			return
		}
		if err := stream.Err(); err != nil {
			h.metrics.RecordChatError("upstream")
			turnLog.Error("primary stream failed", "error", err)
			writeEvent(w, models.NewErrorEvent("The model response was interrupted. Please try again."))
			return
		}

		if text != "" {
			h.conversations.AppendMessage(sessionID, tabID, models.Message{
				ID:        messageID,
				Role:      models.RoleAssistant,
				Content:   text,
				Timestamp: time.Now(),
				Model:     model,
			})
		}

		if comparison {
			if err := writeEvent(w, models.NewComparisonStartEvent()); err != nil {
				return
			}

			// Second model runs only after the first fully completes
			streamB, err := h.openrouter.StreamCompletion(context.Background(), modelB, messages, temperature, maxTokens)
			if err != nil {
				h.metrics.RecordChatError("upstream")
				turnLog.Error("comparison stream open failed", "modelB", modelB, "error", err)
				writeEvent(w, models.NewErrorEvent("The comparison model is unavailable. Please try again."))
				return
			}
			defer streamB.Close()

			textB, writeOK := pumpStream(w, streamB, modelB, true)
			streamB.Close()
			if !writeOK {
				turnLog.Warn("client disconnected mid-stream")
				return
			}
			if err := streamB.Err(); err != nil {
				h.metrics.RecordChatError("upstream")
				turnLog.Error("comparison stream failed", "modelB", modelB, "error", err)
				writeEvent(w, models.NewErrorEvent("The comparison response was interrupted. Please try again."))
				return
			}

			if textB != "" {
				h.conversations.AppendMessage(sessionID, tabID, models.Message{
					ID:        comparisonMessageID,
					Role:      models.RoleAssistant,
					Content:   textB,
					Timestamp: time.Now(),
					Model:     modelB,
				})
			}
		}

		writeEvent(w, models.NewDoneEvent())
		turnLog.Info("chat turn completed", "duration", time.Since(start))
	}))

	return nil
}

// pumpStream relays one upstream stream as events, accumulating the full
// text. Returns false when a client write fails; the caller then abandons the
// turn without persisting.
func pumpStream(w *bufio.Writer, stream *services.CompletionStream, model string, comparison bool) (string, bool) {
	var accumulated strings.Builder
	for stream.Next() {
		fragment := stream.Text()
		accumulated.WriteString(fragment)

		var event models.StreamEvent
		if comparison {
			event = models.NewComparisonContentEvent(model, fragment)
		} else {
			event = models.NewContentEvent(model, fragment)
		}
		if err := writeEvent(w, event); err != nil {
			return "", false
		}
	}
	return accumulated.String(), true
}

// writeEvent frames one event as `data: <JSON>\n\n` and flushes it so the
// browser sees fragments as they arrive.
func writeEvent(w *bufio.Writer, event models.StreamEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

// History returns the conversation for one (session, tab) pair
// GET /api/chat/history/:sessionId/:tabId
func (h *ChatHandler) History(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	tabID := c.Params("tabId")

	if _, ok := h.sessions.Get(sessionID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}

	conv, ok := h.conversations.Get(sessionID, tabID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Conversation not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    conv,
	})
}

// ClearHistory erases the messages of one conversation, keeping its settings
// DELETE /api/chat/history/:sessionId/:tabId
func (h *ChatHandler) ClearHistory(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	tabID := c.Params("tabId")

	if _, ok := h.sessions.Get(sessionID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}

	if !h.conversations.Clear(sessionID, tabID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Conversation not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"cleared": true},
	})
}

// UpdateSettings applies a partial settings update to one conversation
// PUT /api/chat/settings/:sessionId/:tabId
func (h *ChatHandler) UpdateSettings(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	tabID := c.Params("tabId")

	if _, ok := h.sessions.Get(sessionID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}

	var settings models.ConversationSettings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	conv, ok := h.conversations.UpdateSettings(sessionID, tabID, settings)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Conversation not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    conv,
	})
}
