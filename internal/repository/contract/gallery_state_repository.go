package contract

import (
	"context"

	"site-gallery-be/internal/entity"
)

// GalleryStateRepository keeps the last successfully loaded state per site so a
// failed load can fall back to it.
type GalleryStateRepository interface {
	Get(ctx context.Context, siteSlug string) (*entity.GalleryState, bool, error)
	Save(ctx context.Context, state *entity.GalleryState) error
	// Patch applies fn to one slot of the stored state as a single
	// read-modify-write; other slots are never written back from a stale copy.
	// It reports false when no state is stored or the slot is unknown.
	Patch(ctx context.Context, siteSlug, slotId string, fn func(*entity.SlotImage)) (bool, error)
}
