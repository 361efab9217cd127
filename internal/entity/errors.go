package entity

import "errors"

var (
	ErrSiteNotFound       = errors.New("site not found")
	ErrSlotNotFound       = errors.New("slot not found")
	ErrForbidden          = errors.New("admin session required")
	ErrEmptyFile          = errors.New("no file selected")
	ErrFileTooLarge       = errors.New("file too large")
	ErrUnsupportedMedia   = errors.New("file is not an image")
	ErrFormNotAccepted    = errors.New("form not available on this site")
	ErrMalformedBody      = errors.New("malformed request body")
	ErrSlotConflict       = errors.New("slot was replaced concurrently")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
