package handlers

import (
	"time"

	"visioncoach/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	sessions    *services.SessionStore
	openrouter  *services.OpenRouterService
	environment string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions *services.SessionStore, openrouter *services.OpenRouterService, environment string) *HealthHandler {
	return &HealthHandler{sessions: sessions, openrouter: openrouter, environment: environment}
}

// Handle responds with server health status
// GET /api/health
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	upstream := "disconnected"
	if h.openrouter.TestConnection(c.Context()) {
		upstream = "connected"
	}

	return c.JSON(fiber.Map{
		"status":       "ok",
		"timestamp":    time.Now().Format(time.RFC3339),
		"sessionCount": h.sessions.Count(),
		"environment":  h.environment,
		"openrouter":   upstream,
	})
}
