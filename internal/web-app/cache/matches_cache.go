package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-loto-web/pkg/contracts/api"
)

const keyMatches = "matches:list"

// MatchSource é a origem real das partidas (o backend)
type MatchSource interface {
	Matches(ctx context.Context) ([]api.Match, error)
}

// Matches guarda a lista de partidas no Redis por alguns segundos.
// Falha ou ausência do Redis nunca bloqueia: cai direto no backend.
type Matches struct {
	R      *redis.Client // nil desativa o cache
	Source MatchSource
	TTL    time.Duration
	Log    *zap.Logger
}

func NewMatches(r *redis.Client, src MatchSource, ttl time.Duration, log *zap.Logger) *Matches {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matches{R: r, Source: src, TTL: ttl, Log: log}
}

func (c *Matches) Matches(ctx context.Context) ([]api.Match, error) {
	if c.R == nil || c.TTL <= 0 {
		return c.Source.Matches(ctx)
	}

	var cached []api.Match
	ok, err := c.get(ctx, &cached)
	if err != nil {
		c.Log.Warn("matches cache get", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	ms, err := c.Source.Matches(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.set(ctx, ms); err != nil {
		c.Log.Warn("matches cache set", zap.Error(err))
	}
	return ms, nil
}

func (c *Matches) get(ctx context.Context, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keyMatches).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Matches) set(ctx context.Context, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, keyMatches, b, c.TTL).Err()
}
