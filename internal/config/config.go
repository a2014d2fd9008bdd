package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Ranking  RankingConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	Debug       bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	PoolMaxConns int32
	PoolMinConns int32
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

type RankingConfig struct {
	// CandidateScanLimit bounds how many candidate profiles one ranking
	// request pulls into memory before scoring.
	CandidateScanLimit int
	// Workers sizes the scoring worker pool.
	Workers int
	// CacheTTL is how long ranked shortlists stay in redis.
	CacheTTL time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		Debug:       parseBool(opt("APP_DEBUG"), false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:       opt("DB_HOST"),
		DBPort:       opt("DB_PORT"),
		DBName:       opt("DB_NAME"),
		DBUser:       opt("DB_USER"),
		DBPassword:   opt("DB_PASSWORD"),
		DBSSLMode:    opt("DB_SSL_MODE"),
		PoolMaxConns: int32(parseInt(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns: int32(parseInt(opt("DB_POOL_MIN_CONNS"), 0)),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    req("JWT_ACCESS_SECRET"),
		AccessExpiresIn: parseDuration(opt("JWT_ACCESS_EXPIRES_IN"), 15*time.Minute),
	}

	cfg.Ranking = RankingConfig{
		CandidateScanLimit: parseInt(opt("RANKING_CANDIDATE_SCAN_LIMIT"), 200),
		Workers:            parseInt(opt("RANKING_WORKERS"), 8),
		CacheTTL:           parseDuration(opt("RANKING_CACHE_TTL"), 5*time.Minute),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func parseBool(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
