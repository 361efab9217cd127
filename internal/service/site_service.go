package service

import (
	"fmt"

	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/dto"
	"site-gallery-be/internal/entity"
)

type ISiteService interface {
	List() []dto.SiteResponse
	Get(slug string) (*dto.SiteResponse, error)
}

type siteService struct {
	catalog *catalog.Catalog
}

func NewSiteService(cat *catalog.Catalog) ISiteService {
	return &siteService{catalog: cat}
}

// List omits slots; fetch a single site for those.
func (s *siteService) List() []dto.SiteResponse {
	sites := s.catalog.All()
	out := make([]dto.SiteResponse, 0, len(sites))
	for _, site := range sites {
		out = append(out, toSiteResponse(site, false))
	}
	return out
}

func (s *siteService) Get(slug string) (*dto.SiteResponse, error) {
	site, ok := s.catalog.Get(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrSiteNotFound, slug)
	}
	res := toSiteResponse(site, true)
	return &res, nil
}

func toSiteResponse(site catalog.Site, withSlots bool) dto.SiteResponse {
	res := dto.SiteResponse{
		Slug:          site.Slug,
		Name:          site.Name,
		Category:      string(site.Category),
		GalleryPrefix: site.GalleryPrefix,
		Forms:         append([]string{}, site.Forms...),
	}
	if withSlots {
		res.Slots = make([]dto.SlotResponse, len(site.Slots))
		for i, slot := range site.Slots {
			res.Slots[i] = dto.SlotResponse{
				Id:          slot.Id,
				Title:       slot.Title,
				Prompt:      slot.Prompt,
				Description: slot.Description,
				Aspect:      slot.Aspect,
			}
		}
	}
	return res
}
