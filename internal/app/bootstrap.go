package app

import (
	"fmt"
	"strings"

	"talent-rank/internal/config"
	"talent-rank/internal/delivery/http/handler"
	"talent-rank/internal/delivery/http/middleware"
	"talent-rank/internal/delivery/http/routes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(log)
	f.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(log)
	f.Use(accessMw.Middleware())

	validate := validator.New(validator.WithRequiredStructEnabled())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": c.DB,
			"redis":    c.Cache,
		}),
		handler.NewCandidateRankingHandler(c.Ranking, validate),
		handler.NewCandidateSkillsHandler(c.CandidateSkills),
		middleware.NewAuthMiddleware(c.JWT),
	)
	registry.Register(f)

	app := &App{Fiber: f, Container: c}
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
