// Package guard holds short-lived per-resource reservation locks in Redis.
// The lock is an optimization that sheds most racing writers before they
// reach the database transaction, which remains the source of truth; a nil
// or unreachable Redis degrades to letting everything through.
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTTL = 10 * time.Second

// Guard serializes booking attempts per seat or table.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *Guard {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Guard{client: client, ttl: ttl, logger: logger}
}

func seatKey(seatID int64) string { return fmt.Sprintf("guard:seat:%d", seatID) }

func tableKey(tableID int64) string { return fmt.Sprintf("guard:table:%d", tableID) }

// AcquireSeats takes locks for every listed seat and, optionally, a group
// table. It returns a release func and whether all locks were obtained; on a
// partial acquire it releases what it took so the loser backs out clean.
func (g *Guard) AcquireSeats(ctx context.Context, seatIDs []int64, tableID *int64) (release func(), ok bool) {
	if g == nil || g.client == nil {
		return func() {}, true
	}

	keys := make([]string, 0, len(seatIDs)+1)
	for _, id := range seatIDs {
		keys = append(keys, seatKey(id))
	}
	if tableID != nil {
		keys = append(keys, tableKey(*tableID))
	}

	var held []string
	release = func() {
		if len(held) == 0 {
			return
		}
		if err := g.client.Del(context.WithoutCancel(ctx), held...).Err(); err != nil {
			g.logger.Warn().Err(err).Msg("guard release failed, locks expire by ttl")
		}
	}

	for _, key := range keys {
		set, err := g.client.SetNX(ctx, key, 1, g.ttl).Result()
		if err != nil {
			// Redis trouble never blocks bookings.
			g.logger.Warn().Err(err).Str("key", key).Msg("guard unavailable, skipping lock")
			continue
		}
		if !set {
			release()
			return func() {}, false
		}
		held = append(held, key)
	}
	return release, true
}
