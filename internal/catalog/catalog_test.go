package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := New(DefaultSites()...)
	require.NoError(t, err)
	assert.Len(t, c.All(), len(DefaultSites()))

	for _, site := range c.All() {
		assert.NotEmpty(t, site.Slots, site.Slug)
		for _, slot := range site.Slots {
			assert.NotEmpty(t, slot.Prompt, "%s/%s", site.Slug, slot.Id)
		}
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		sites []Site
	}{
		{
			name: "duplicate slug",
			sites: []Site{
				{Slug: "a", GalleryPrefix: "p1"},
				{Slug: "a", GalleryPrefix: "p2"},
			},
		},
		{
			name: "duplicate prefix",
			sites: []Site{
				{Slug: "a", GalleryPrefix: "p"},
				{Slug: "b", GalleryPrefix: "p"},
			},
		},
		{
			name: "duplicate slot",
			sites: []Site{
				{Slug: "a", GalleryPrefix: "p", Slots: []Slot{{Id: "x"}, {Id: "x"}}},
			},
		},
		{
			name:  "missing prefix",
			sites: []Site{{Slug: "a"}},
		},
		{
			name:  "slash in prefix",
			sites: []Site{{Slug: "a", GalleryPrefix: "p/q"}},
		},
		{
			name: "slash in slot id",
			sites: []Site{
				{Slug: "a", GalleryPrefix: "p", Slots: []Slot{{Id: "hero/wide"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sites...)
			assert.Error(t, err)
		})
	}
}

func TestSiteLookups(t *testing.T) {
	c := Default()

	site, ok := c.Get("trattoria-nonna")
	require.True(t, ok)
	assert.True(t, site.AcceptsForm(FormReservation))
	assert.False(t, site.AcceptsForm(FormBooking))

	slot, ok := site.Slot("pasta")
	require.True(t, ok)
	assert.Equal(t, "Handmade Pasta", slot.Title)

	_, ok = site.Slot("missing")
	assert.False(t, ok)

	_, ok = c.Get("nope")
	assert.False(t, ok)
}
