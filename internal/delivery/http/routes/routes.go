package routes

import (
	"talent-rank/internal/delivery/http/handler"
	"talent-rank/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	ranking *handler.CandidateRankingHandler
	skills  *handler.CandidateSkillsHandler
	auth    *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	ranking *handler.CandidateRankingHandler,
	skills *handler.CandidateSkillsHandler,
	auth *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:  health,
		ranking: ranking,
		skills:  skills,
		auth:    auth,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))
}
