package memory

import (
	"context"
	"sync"
	"time"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// GalleryStateRepository is the in-process fallback when Redis is not configured.
type GalleryStateRepository struct {
	// mu orders Save against Patch; go-cache alone only guards single calls.
	mu    sync.Mutex
	cache *cache.Cache
}

func NewGalleryStateRepository(ttl time.Duration) contract.GalleryStateRepository {
	return &GalleryStateRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *GalleryStateRepository) Get(_ context.Context, siteSlug string) (*entity.GalleryState, bool, error) {
	if x, found := r.cache.Get(siteSlug); found {
		return cloneState(x.(*entity.GalleryState)), true, nil
	}
	return nil, false, nil
}

func (r *GalleryStateRepository) Save(_ context.Context, state *entity.GalleryState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(state.SiteSlug, cloneState(state), cache.DefaultExpiration)
	return nil
}

func (r *GalleryStateRepository) Patch(_ context.Context, siteSlug, slotId string, fn func(*entity.SlotImage)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(siteSlug)
	if !found {
		return false, nil
	}
	state := cloneState(x.(*entity.GalleryState))
	slot, ok := state.Slot(slotId)
	if !ok {
		return false, nil
	}
	fn(slot)
	r.cache.Set(siteSlug, state, cache.DefaultExpiration)
	return true, nil
}

func cloneState(s *entity.GalleryState) *entity.GalleryState {
	cp := *s
	cp.Slots = make([]entity.SlotImage, len(s.Slots))
	for i, slot := range s.Slots {
		if slot.ImageURL != nil {
			u := *slot.ImageURL
			slot.ImageURL = &u
		}
		cp.Slots[i] = slot
	}
	return &cp
}
