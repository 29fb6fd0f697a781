package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eparcel/eparcel-api/internal/core/domain"
)

// dedupTTL is deliberately short: the guard only needs to absorb accidental
// double submissions of the same transition, not provide long-term idempotency.
const dedupTTL = 30 * time.Second

// TransitionDeduper absorbs repeated status-change requests backed by Redis.
// Key format: transition:<parcel_id>:<status>
type TransitionDeduper struct {
	client *redis.Client
}

func NewTransitionDeduper(client *redis.Client) *TransitionDeduper {
	return &TransitionDeduper{client: client}
}

// IsDuplicate reports whether this exact transition was requested recently.
func (d *TransitionDeduper) IsDuplicate(ctx context.Context, parcelID string, status domain.ParcelStatus) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(parcelID, status)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the transition request (expires after dedupTTL).
func (d *TransitionDeduper) Mark(ctx context.Context, parcelID string, status domain.ParcelStatus) error {
	return d.client.Set(ctx, d.key(parcelID, status), "1", dedupTTL).Err()
}

func (d *TransitionDeduper) key(parcelID string, status domain.ParcelStatus) string {
	return fmt.Sprintf("transition:%s:%s", parcelID, status)
}
