package gallery

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Storage paths look like {owner}/{prefix}/{slot}/{unix_ms}_{filename}.
// Existing buckets rely on this layout, so it must not change.

type PathParts struct {
	OwnerId   string
	Prefix    string
	SlotId    string
	Timestamp int64 // unix milliseconds, 0 when the file segment has no numeric prefix
	Filename  string
}

// SanitizeFilename strips anything that would add path segments.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}

func BuildPath(ownerId, prefix, slotId string, at time.Time, filename string) string {
	return fmt.Sprintf("%s/%s/%s/%d_%s", ownerId, prefix, slotId, at.UnixMilli(), SanitizeFilename(filename))
}

// GalleryPrefix is the listing prefix for a whole gallery: "{owner}/{prefix}/".
func GalleryPrefix(ownerId, prefix string) string {
	return ownerId + "/" + prefix + "/"
}

// SlotPrefix is the listing prefix for one slot: "{owner}/{prefix}/{slot}/".
func SlotPrefix(ownerId, prefix, slotId string) string {
	return ownerId + "/" + prefix + "/" + slotId + "/"
}

// SlotKey identifies a slot across galleries; it is stored on every row written
// so the database can enforce one live row per slot.
func SlotKey(ownerId, prefix, slotId string) string {
	return ownerId + "/" + prefix + "/" + slotId
}

// ParsePath splits a storage path. Paths with fewer than four segments are rejected.
// Extra segments are folded into the filename.
func ParsePath(path string) (PathParts, bool) {
	segments := strings.SplitN(path, "/", 4)
	if len(segments) < 4 {
		return PathParts{}, false
	}
	for _, s := range segments[:3] {
		if s == "" {
			return PathParts{}, false
		}
	}

	parts := PathParts{
		OwnerId:  segments[0],
		Prefix:   segments[1],
		SlotId:   segments[2],
		Filename: segments[3],
	}

	if ts, name, ok := strings.Cut(segments[3], "_"); ok {
		if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
			parts.Timestamp = ms
			parts.Filename = name
		}
	}

	return parts, true
}
