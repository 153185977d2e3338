package handler

import (
	"talenthub/internal/pkg/response"
	"talenthub/internal/store"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	store *store.Store
}

func NewHealthHandler(st *store.Store) *HealthHandler {
	return &HealthHandler{store: st}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.HandleHealth)
	app.Get("/health/ready", h.HandleReady)
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// HandleReady reports 503 until the initial catalog load has resolved or
// failed; either way the store then serves the session.
func (h *HealthHandler) HandleReady(c fiber.Ctx) error {
	if h.store != nil && h.store.Loading() {
		return response.Error(c, fiber.StatusServiceUnavailable, "loading", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
