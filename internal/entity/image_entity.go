package entity

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	Id        uuid.UUID
	UserId    string
	Path      string
	SlotKey   *string
	Metadata  ImageMetadata
	CreatedAt time.Time
}

// ImageMetadata is informational only; nothing reads it back for selection.
type ImageMetadata struct {
	OriginalName string
	ContentType  string
	Size         int64
	SiteSlug     string
	SlotId       string
}
