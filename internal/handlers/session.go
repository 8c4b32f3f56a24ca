package handlers

import (
	"log"

	"visioncoach/internal/models"
	"visioncoach/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles session lifecycle HTTP requests
type SessionHandler struct {
	sessions *services.SessionStore
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create registers a new session
// POST /api/session/create
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req models.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.UserName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "userName is required",
		})
	}

	language := req.Language
	if language == "" {
		language = models.LanguageEN
	}
	if !language.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "language must be 'en' or 'de'",
		})
	}

	session := h.sessions.Create(req.UserName, language, req.UserAge)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    session,
	})
}

// Get returns a session by ID and marks it active
// GET /api/session/:sessionId
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	session, ok := h.sessions.Get(sessionID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    session,
	})
}

// Update applies a partial update to a session
// PUT /api/session/:sessionId
func (h *SessionHandler) Update(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	var req models.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.Language != nil && !req.Language.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "language must be 'en' or 'de'",
		})
	}

	session, ok := h.sessions.Update(sessionID, req)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    session,
	})
}

// Delete removes a session and all of its conversations
// DELETE /api/session/:sessionId
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	if !h.sessions.Delete(sessionID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}
	log.Printf("🗑️  Session %s deleted", sessionID)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"deleted": true},
	})
}
