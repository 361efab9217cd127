package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "gallery:state:"

	// maxPatchAttempts bounds optimistic retries when another writer touches the key.
	maxPatchAttempts = 10
)

// GalleryStateCache shares the last known gallery state between instances.
type GalleryStateCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewGalleryStateCache(rdb *redis.Client, ttl time.Duration) contract.GalleryStateRepository {
	return &GalleryStateCache{rdb: rdb, ttl: ttl}
}

func (c *GalleryStateCache) Get(ctx context.Context, siteSlug string) (*entity.GalleryState, bool, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+siteSlug).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", siteSlug, err)
	}

	var state entity.GalleryState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, false, fmt.Errorf("decode gallery state %s: %w", siteSlug, err)
	}
	return &state, true, nil
}

func (c *GalleryStateCache) Save(ctx context.Context, state *entity.GalleryState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode gallery state %s: %w", state.SiteSlug, err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+state.SiteSlug, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", state.SiteSlug, err)
	}
	return nil
}

// Patch updates one slot under WATCH so a concurrent write to the same site
// aborts the transaction and the patch is retried on the fresh value.
func (c *GalleryStateCache) Patch(ctx context.Context, siteSlug, slotId string, fn func(*entity.SlotImage)) (bool, error) {
	key := keyPrefix + siteSlug

	var patched bool
	txf := func(tx *redis.Tx) error {
		patched = false
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}

		var state entity.GalleryState
		if err := json.Unmarshal(raw, &state); err != nil {
			return fmt.Errorf("decode gallery state %s: %w", siteSlug, err)
		}
		slot, ok := state.Slot(slotId)
		if !ok {
			return nil
		}
		fn(slot)

		raw, err = json.Marshal(&state)
		if err != nil {
			return fmt.Errorf("encode gallery state %s: %w", siteSlug, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		if err == nil {
			patched = true
		}
		return err
	}

	for attempt := 0; attempt < maxPatchAttempts; attempt++ {
		err := c.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("redis patch %s/%s: %w", siteSlug, slotId, err)
		}
		return patched, nil
	}
	return false, fmt.Errorf("redis patch %s/%s: gave up after %d attempts", siteSlug, slotId, maxPatchAttempts)
}
