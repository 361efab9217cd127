package entity

import (
	"time"

	"site-gallery-be/pkg/gallery"
)

type SlotImage struct {
	SlotId      string
	Title       string
	ImageURL    *string
	Path        string
	UploadState gallery.UploadState
}

// GalleryState is the slot -> image mapping for one site, in catalog order.
type GalleryState struct {
	SiteSlug string
	Slots    []SlotImage
	Stale    bool
	LoadedAt time.Time
}

func (g *GalleryState) Slot(id string) (*SlotImage, bool) {
	for i := range g.Slots {
		if g.Slots[i].SlotId == id {
			return &g.Slots[i], true
		}
	}
	return nil, false
}

// SlotReplaced is emitted after an upload becomes the live image for a slot.
type SlotReplaced struct {
	SiteSlug   string    `json:"site_slug"`
	SlotId     string    `json:"slot_id"`
	Path       string    `json:"path"`
	ImageURL   string    `json:"image_url"`
	Removed    []string  `json:"removed"`
	UploadedBy string    `json:"uploaded_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
