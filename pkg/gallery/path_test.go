package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPath(t *testing.T) {
	at := time.UnixMilli(1717171717171)

	got := BuildPath("admin-1", "bakery", "hero", at, "loaf.png")
	assert.Equal(t, "admin-1/bakery/hero/1717171717171_loaf.png", got)

	parts, ok := ParsePath(got)
	require.True(t, ok)
	assert.Equal(t, PathParts{
		OwnerId:   "admin-1",
		Prefix:    "bakery",
		SlotId:    "hero",
		Timestamp: 1717171717171,
		Filename:  "loaf.png",
	}, parts)
}

func TestBuildPathSanitizesFilename(t *testing.T) {
	at := time.UnixMilli(1)
	got := BuildPath("o", "p", "s", at, "../../etc/passwd")

	parts, ok := ParsePath(got)
	require.True(t, ok)
	assert.Equal(t, "s", parts.SlotId)
	assert.Equal(t, ".._.._etc_passwd", parts.Filename)
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		wantOK bool
		want   PathParts
	}{
		{name: "too short", path: "owner/prefix/slot", wantOK: false},
		{name: "empty segment", path: "owner//slot/1_a.png", wantOK: false},
		{
			name:   "no timestamp",
			path:   "owner/prefix/slot/photo.jpg",
			wantOK: true,
			want:   PathParts{OwnerId: "owner", Prefix: "prefix", SlotId: "slot", Filename: "photo.jpg"},
		},
		{
			name:   "underscore in name",
			path:   "owner/prefix/slot/42_my_photo.jpg",
			wantOK: true,
			want:   PathParts{OwnerId: "owner", Prefix: "prefix", SlotId: "slot", Timestamp: 42, Filename: "my_photo.jpg"},
		},
		{
			name:   "extra segments fold into filename",
			path:   "owner/prefix/slot/nested/file.jpg",
			wantOK: true,
			want:   PathParts{OwnerId: "owner", Prefix: "prefix", SlotId: "slot", Filename: "nested/file.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePath(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPrefixes(t *testing.T) {
	assert.Equal(t, "o/p/", GalleryPrefix("o", "p"))
	assert.Equal(t, "o/p/s/", SlotPrefix("o", "p", "s"))
	assert.Equal(t, "o/p/s", SlotKey("o", "p", "s"))
}
