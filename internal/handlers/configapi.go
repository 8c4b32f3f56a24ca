package handlers

import (
	"visioncoach/internal/config"
	"visioncoach/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ConfigHandler serves the model catalog and app-level generation defaults
type ConfigHandler struct {
	catalog *config.Catalog
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(catalog *config.Catalog) *ConfigHandler {
	return &ConfigHandler{catalog: catalog}
}

// Models lists the selectable models
// GET /api/config/models
func (h *ConfigHandler) Models(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.catalog.Models,
	})
}

// App returns the full generation configuration
// GET /api/config/app
func (h *ConfigHandler) App(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": models.AppConfig{
			Models:       h.catalog.Models,
			DefaultModel: h.catalog.DefaultModel,
			Temperature:  h.catalog.Temperature,
			MaxTokens:    h.catalog.MaxTokens,
		},
	})
}
