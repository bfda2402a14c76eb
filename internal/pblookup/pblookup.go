// Package pblookup is the out-of-core client for an external personal-best
// lookup service (§1 OUT OF SCOPE collaborator, §6): given an athlete name
// and event, it returns that athlete's best recorded mark, backed by a
// Redis response cache. The scheduling core never imports this package —
// nothing it computes feeds back into scheduling decisions. Grounded on
// the pack's Redis client usage (Sergey-Bar-Alfred's redisclient, the
// tournament planner's cache_service.go).
package pblookup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

// Record is one athlete's personal best for a single event, as returned
// by the external lookup system.
type Record struct {
	AthleteName string              `json:"athlete_name"`
	EventType   scheduler.EventType `json:"event_type"`
	Mark        string              `json:"mark"`
	Date        string              `json:"date"`
}

// Source is the external lookup system this client talks to. The only
// Source shipped in this module is Unavailable, which always errors — the
// actual remote lookup is an out-of-core collaborator per §1.
type Source interface {
	Lookup(ctx context.Context, athleteName string, eventType scheduler.EventType) (*Record, error)
}

// Client wraps a Source with a Redis response cache, so repeated lookups
// for the same athlete/event across a report run don't re-hit the remote
// system. The cache is used only when New is given a Redis address; with a
// nil redis client, Lookup always falls through to the Source uncached.
type Client struct {
	source Source
	redis  *redis.Client
	ttl    time.Duration
}

// cacheTTL matches a single meet day: personal bests don't change mid-meet,
// so there is no reason to invalidate sooner.
const cacheTTL = 24 * time.Hour

// New constructs a Client. redisAddr may be empty, in which case lookups
// are never cached (every call reaches the Source directly).
func New(source Source, redisAddr string) (*Client, error) {
	c := &Client{source: source, ttl: cacheTTL}
	if redisAddr == "" {
		return c, nil
	}

	opt, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("pblookup: invalid redis address: %w", err)
	}
	c.redis = redis.NewClient(opt)
	return c, nil
}

// Close releases the Redis connection, if one was opened.
func (c *Client) Close() error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}

func cacheKey(athleteName string, eventType scheduler.EventType) string {
	return fmt.Sprintf("pblookup:%s:%s", eventType, athleteName)
}

// Lookup returns an athlete's personal best for an event, checking the
// Redis cache first when one is configured.
func (c *Client) Lookup(ctx context.Context, athleteName string, eventType scheduler.EventType) (*Record, error) {
	key := cacheKey(athleteName, eventType)

	if c.redis != nil {
		if cached, err := c.redis.Get(ctx, key).Bytes(); err == nil {
			var rec Record
			if err := json.Unmarshal(cached, &rec); err == nil {
				return &rec, nil
			}
		}
	}

	rec, err := c.source.Lookup(ctx, athleteName, eventType)
	if err != nil {
		return nil, fmt.Errorf("pblookup: source lookup failed for %s/%s: %w", athleteName, eventType, err)
	}

	if c.redis != nil && rec != nil {
		if data, err := json.Marshal(rec); err == nil {
			c.redis.Set(ctx, key, data, c.ttl)
		}
	}

	return rec, nil
}

// Unavailable is a Source that always reports the lookup system as
// unreachable. Used as the default Source until a real remote collaborator
// is wired up — this module's scope ends at the client interface (§1).
type Unavailable struct{}

// Lookup always returns an error: no remote personal-best system is wired
// into this module.
func (Unavailable) Lookup(ctx context.Context, athleteName string, eventType scheduler.EventType) (*Record, error) {
	return nil, fmt.Errorf("pblookup: no personal-best lookup system configured")
}
