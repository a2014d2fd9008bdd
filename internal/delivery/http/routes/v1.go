package routes

import (
	"github.com/gofiber/fiber/v3"
)

func (r *Registry) registerV1(v1 fiber.Router) {
	if v1 == nil {
		return
	}

	v1.Use(r.auth.Middleware())

	v1.Get("/jobs/:job_id/candidates", r.ranking.RankForJob)
	v1.Get("/candidates/discover", r.ranking.Discover)
	v1.Get("/candidates/:candidate_id/skills", r.skills.GetBreakdown)
}
