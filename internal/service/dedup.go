package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// MoveDeduper stores processed move ids in Redis so every instance behind a
// load balancer skips a replayed drag-end request.
type MoveDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMoveDeduper(client *redis.Client, ttl time.Duration) *MoveDeduper {
	return &MoveDeduper{client: client, ttl: ttl}
}

func (d *MoveDeduper) key(moveID string) string {
	return "move:" + moveID
}

// Add records the move id if unseen. It returns true when the id was newly
// recorded.
func (d *MoveDeduper) Add(ctx context.Context, moveID string) (bool, error) {
	return d.client.SetNX(ctx, d.key(moveID), 1, d.ttl).Result()
}

// Remove forgets a recorded id so the client may retry after a failed apply.
func (d *MoveDeduper) Remove(ctx context.Context, moveID string) error {
	return d.client.Del(ctx, d.key(moveID)).Err()
}
