package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petconnect/activities-api/internal/core/domain"
)

const listingKey = "actividades:list"
const listingTTL = 30 * time.Second

// ListingCache caches the full activity listing under a single key with a
// short TTL. Writers invalidate; readers fall through to Mongo on a miss.
type ListingCache struct {
	client *redis.Client
}

// NewListingCache creates a ListingCache wrapping the given Redis client.
func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// Get returns the cached listing and whether the key was present.
func (c *ListingCache) Get(ctx context.Context) ([]domain.Activity, bool, error) {
	raw, err := c.client.Get(ctx, listingKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("listing cache get: %w", err)
	}

	var activities []domain.Activity
	if err := json.Unmarshal(raw, &activities); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, false, fmt.Errorf("listing cache decode: %w", err)
	}
	return activities, true, nil
}

// Set stores the listing with the cache TTL.
func (c *ListingCache) Set(ctx context.Context, activities []domain.Activity) error {
	raw, err := json.Marshal(activities)
	if err != nil {
		return fmt.Errorf("listing cache encode: %w", err)
	}
	if err := c.client.Set(ctx, listingKey, raw, listingTTL).Err(); err != nil {
		return fmt.Errorf("listing cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		return fmt.Errorf("listing cache invalidate: %w", err)
	}
	return nil
}
