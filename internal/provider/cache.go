package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CachedClient is a read-through redis cache in front of the provider
// client. Game logs for a player change at most once a day, so a short TTL
// takes most of the load off the provider during a batch scan without
// risking stale reward detection for long.
//
// Cache failures degrade to a direct fetch; redis being down must never
// look like a provider outage.
type CachedClient struct {
	inner *Client
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedClient(inner *Client, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedClient {
	l := logger.With().Str("module", "provider").Str("component", "cache").Logger()
	return &CachedClient{inner: inner, rdb: rdb, ttl: ttl, log: l}
}

func gameLogKey(providerID string) string {
	return fmt.Sprintf("provider:gamelog:%s", providerID)
}

func scheduleKey(teamAbbr string) string {
	return fmt.Sprintf("provider:schedule:%s", teamAbbr)
}

// FetchGameLogs serves from redis when possible and falls back to the
// wrapped client, populating the cache on the way out.
func (c *CachedClient) FetchGameLogs(ctx context.Context, providerID string) ([]model.GameLogEntry, error) {
	key := gameLogKey(providerID)
	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached []model.GameLogEntry
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			return cached, nil
		}
		// Corrupt cache entry: drop it and refetch.
		c.rdb.Del(ctx, key)
	}

	entries, err := c.inner.FetchGameLogs(ctx, providerID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, entries)
	return entries, nil
}

// FetchTeamSchedule mirrors FetchGameLogs for the schedule source.
func (c *CachedClient) FetchTeamSchedule(ctx context.Context, teamAbbr string) ([]model.TeamGameDay, error) {
	key := scheduleKey(teamAbbr)
	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached []model.TeamGameDay
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			return cached, nil
		}
		c.rdb.Del(ctx, key)
	}

	days, err := c.inner.FetchTeamSchedule(ctx, teamAbbr)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, days)
	return days, nil
}

func (c *CachedClient) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("cache write failed")
	}
}
