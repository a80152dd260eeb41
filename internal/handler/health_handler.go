package handler

import (
	"github.com/arturoeanton/resume-insight-assistant/internal/service"
	"github.com/gofiber/fiber/v3"
)

// HealthHandler reports process and corpus status.
type HealthHandler struct {
	appName   string
	retriever *service.RetrievalService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(appName string, retriever *service.RetrievalService) *HealthHandler {
	return &HealthHandler{appName: appName, retriever: retriever}
}

// Register sets up the health route.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/api/health", h.Health)
}

// Health reports "degraded" when the corpus could not be embedded.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := "healthy"
	size := h.retriever.CorpusSize()
	if size == 0 {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status":     status,
		"app":        h.appName,
		"candidates": size,
	})
}
