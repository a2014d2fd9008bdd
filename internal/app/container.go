package app

import (
	"context"
	"time"

	"talent-rank/internal/config"
	"talent-rank/internal/database"
	dbpostgres "talent-rank/internal/database/postgres"
	"talent-rank/internal/infrastructure/cache"
	"talent-rank/internal/pkg/jwt"
	"talent-rank/internal/repository"
	"talent-rank/internal/usecase"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	JWT    jwt.Service

	Ranking         usecase.CandidateRankingUsecase
	CandidateSkills usecase.CandidateSkillsUsecase
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(log)
	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	jobs := repository.NewPostgresJobRepository(db)
	candidates := repository.NewPostgresCandidateRepository(db, log)
	interviews := repository.NewPostgresInterviewRepository(db)
	reports := repository.NewPostgresAIReportRepository(db)

	ranking := usecase.NewCandidateRankingUsecase(jobs, candidates, interviews, reports, redis, cfg.Ranking, log)
	candidateSkills := usecase.NewCandidateSkillsUsecase(candidates, interviews, jobs, log)

	return &Container{
		Config:          cfg,
		Log:             log,
		DB:              db,
		Cache:           redis,
		JWT:             jwtSvc,
		Ranking:         ranking,
		CandidateSkills: candidateSkills,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
