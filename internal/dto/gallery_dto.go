package dto

import (
	"io"
	"time"

	"site-gallery-be/pkg/gallery"
)

type SlotImageResponse struct {
	SlotId      string              `json:"slot_id"`
	Title       string              `json:"title"`
	ImageURL    *string             `json:"image_url"`
	UploadState gallery.UploadState `json:"upload_state"`
}

type GalleryStateResponse struct {
	SiteSlug string              `json:"site"`
	Slots    []SlotImageResponse `json:"slots"`
	Stale    bool                `json:"stale"`
	LoadedAt time.Time           `json:"loaded_at"`
}

// UploadFile is the part of a multipart upload the gallery needs.
type UploadFile struct {
	Filename string
	Size     int64
	Body     io.Reader
}

type UploadResponse struct {
	SiteSlug string `json:"site"`
	SlotId   string `json:"slot_id"`
	ImageURL string `json:"image_url"`
	Path     string `json:"path"`
	Removed  int    `json:"removed"`
}

type PromptResponse struct {
	SiteSlug string `json:"site"`
	SlotId   string `json:"slot_id"`
	Title    string `json:"title"`
	Prompt   string `json:"prompt"`
}

type PruneResult struct {
	SiteSlug       string   `json:"site"`
	Paths          []string `json:"paths"`
	RowsDeleted    int64    `json:"rows_deleted"`
	ObjectsRemoved int      `json:"objects_removed"`
}
