package handlers

import (
	"visioncoach/internal/config"
	"visioncoach/internal/models"
	"visioncoach/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TabsHandler handles tab listing and unlock requests
type TabsHandler struct {
	sessions *services.SessionStore
	gate     *services.AccessGate
	catalog  *config.Catalog
	metrics  *services.Metrics
}

// NewTabsHandler creates a new tabs handler
func NewTabsHandler(sessions *services.SessionStore, gate *services.AccessGate, catalog *config.Catalog, metrics *services.Metrics) *TabsHandler {
	return &TabsHandler{sessions: sessions, gate: gate, catalog: catalog, metrics: metrics}
}

// Available lists every tab with its effective lock state for a session
// GET /api/tabs/available/:sessionId
func (h *TabsHandler) Available(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")

	if _, ok := h.sessions.Get(sessionID); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}

	tabs := make([]models.TabInfo, 0, len(h.catalog.Tabs))
	for _, tab := range h.catalog.Tabs {
		tabs = append(tabs, models.TabInfo{
			ID:      tab.ID,
			LabelEn: tab.LabelEn,
			LabelDe: tab.LabelDe,
			Locked:  !h.gate.IsUnlocked(sessionID, tab.ID),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tabs,
	})
}

// Unlock grants a session access to a password-protected tab
// POST /api/tabs/unlock
func (h *TabsHandler) Unlock(c *fiber.Ctx) error {
	var req models.UnlockTabRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.SessionID == "" || req.TabID == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "sessionId, tabId and password are required",
		})
	}

	if h.catalog.Tab(req.TabID) == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Unknown tab",
		})
	}

	if _, ok := h.sessions.Get(req.SessionID); !ok {
		h.metrics.RecordTabUnlock("unknown_session")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Session not found",
		})
	}

	if !h.gate.Unlock(req.SessionID, req.TabID, req.Password) {
		h.metrics.RecordTabUnlock("wrong_password")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid password",
		})
	}

	h.metrics.RecordTabUnlock("success")
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"unlocked": true, "tabId": req.TabID},
	})
}
