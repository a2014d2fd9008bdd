package handler

import (
	"context"
	"time"

	"talent-rank/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything with a liveness probe, in practice the postgres pool and
// the redis wrapper.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := make(map[string]string, len(h.deps))
	for name, dep := range h.deps {
		if dep == nil {
			checks[name] = "not configured"
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "degraded", checks)
	}
	return response.Success(c, status, response.MessageOK, checks)
}
