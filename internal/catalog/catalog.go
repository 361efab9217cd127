// Package catalog holds the static site definitions served by the gallery.
// Sites and slots are compiled in; nothing here is persisted.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

type Category string

const (
	CategoryWellness     Category = "wellness"
	CategoryCoffee       Category = "coffee"
	CategorySalon        Category = "salon"
	CategoryDental       Category = "dental"
	CategoryRestaurant   Category = "restaurant"
	CategoryBakery       Category = "bakery"
	CategoryArchitecture Category = "architecture"
	CategoryPhotography  Category = "photography"
	CategorySaaS         Category = "saas"
)

// Slot is a logical image placeholder on a page.
type Slot struct {
	Id          string
	Title       string
	Prompt      string // handed to an external image generator by the site admin
	Description string
	Aspect      string
}

type Site struct {
	Slug          string
	Name          string
	Category      Category
	GalleryPrefix string
	Slots         []Slot
	Forms         []string
}

func (s Site) Slot(id string) (Slot, bool) {
	for _, slot := range s.Slots {
		if slot.Id == id {
			return slot, true
		}
	}
	return Slot{}, false
}

func (s Site) SlotIds() []string {
	ids := make([]string, len(s.Slots))
	for i, slot := range s.Slots {
		ids[i] = slot.Id
	}
	return ids
}

func (s Site) AcceptsForm(kind string) bool {
	for _, f := range s.Forms {
		if f == kind {
			return true
		}
	}
	return false
}

type Catalog struct {
	sites map[string]Site
	order []string
}

// New builds a catalog and rejects duplicate slugs, prefixes or slot ids, and
// prefixes or slot ids that would not fit in one path segment.
func New(sites ...Site) (*Catalog, error) {
	c := &Catalog{sites: make(map[string]Site, len(sites))}
	prefixes := make(map[string]string)

	for _, site := range sites {
		if site.Slug == "" || site.GalleryPrefix == "" {
			return nil, fmt.Errorf("site %q: slug and gallery prefix are required", site.Name)
		}
		if _, dup := c.sites[site.Slug]; dup {
			return nil, fmt.Errorf("duplicate site slug %q", site.Slug)
		}
		// Prefix and slot id are single path segments ({owner}/{prefix}/{slot}/{file}).
		if strings.Contains(site.GalleryPrefix, "/") {
			return nil, fmt.Errorf("site %q: gallery prefix %q must not contain '/'", site.Slug, site.GalleryPrefix)
		}
		if other, dup := prefixes[site.GalleryPrefix]; dup {
			return nil, fmt.Errorf("gallery prefix %q used by both %q and %q", site.GalleryPrefix, other, site.Slug)
		}
		seen := make(map[string]bool, len(site.Slots))
		for _, slot := range site.Slots {
			if slot.Id == "" {
				return nil, fmt.Errorf("site %q: empty slot id", site.Slug)
			}
			if strings.Contains(slot.Id, "/") {
				return nil, fmt.Errorf("site %q: slot id %q must not contain '/'", site.Slug, slot.Id)
			}
			if seen[slot.Id] {
				return nil, fmt.Errorf("site %q: duplicate slot id %q", site.Slug, slot.Id)
			}
			seen[slot.Id] = true
		}

		prefixes[site.GalleryPrefix] = site.Slug
		c.sites[site.Slug] = site
		c.order = append(c.order, site.Slug)
	}

	return c, nil
}

// Default returns the catalog of every bundled site.
func Default() *Catalog {
	c, err := New(DefaultSites()...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Get(slug string) (Site, bool) {
	site, ok := c.sites[slug]
	return site, ok
}

// All returns sites in registration order.
func (c *Catalog) All() []Site {
	out := make([]Site, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, c.sites[slug])
	}
	return out
}

func (c *Catalog) Slugs() []string {
	out := append([]string(nil), c.order...)
	sort.Strings(out)
	return out
}
