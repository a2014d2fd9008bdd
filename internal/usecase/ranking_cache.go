package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RankingCache is the slice of the redis wrapper the ranking usecases need.
type RankingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type rankingCacheKeyInput struct {
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
	MinScore int `json:"min_score"`
}

// RankingsCacheKey builds the cache key for one job's ranked shortlist. Keys
// share the "rankings:job:<id>:" prefix so a whole job can be invalidated by
// pattern when its requirements change.
func RankingsCacheKey(jobID uuid.UUID, params CandidateRankingParams) string {
	return "rankings:job:" + jobID.String() + ":" + hashParams(params)
}

// DiscoveryCacheKey builds the cache key for the jobless discovery listing.
func DiscoveryCacheKey(params CandidateRankingParams) string {
	return "rankings:discover:" + hashParams(params)
}

func hashParams(params CandidateRankingParams) string {
	in := rankingCacheKeyInput{
		Limit:    params.Limit,
		Offset:   params.Offset,
		MinScore: params.MinScore,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
