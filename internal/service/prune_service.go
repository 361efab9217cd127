package service

import (
	"context"
	"fmt"

	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/dto"
	"site-gallery-be/internal/pkg/logger"
	"site-gallery-be/internal/repository/unitofwork"
	"site-gallery-be/pkg/gallery"
	"site-gallery-be/pkg/objectstore"
)

// IPruneService removes superseded slot images in bulk. Upload only cleans the
// slot it writes to, and the legacy strategy can leave objects behind when a
// step fails halfway.
type IPruneService interface {
	Prune(ctx context.Context, dryRun bool) ([]dto.PruneResult, error)
}

type pruneService struct {
	catalog    *catalog.Catalog
	uowFactory unitofwork.RepositoryFactory
	store      objectstore.Store
	logger     logger.ILogger
	ownerId    string
}

func NewPruneService(cat *catalog.Catalog, uowFactory unitofwork.RepositoryFactory, store objectstore.Store, log logger.ILogger, ownerId string) IPruneService {
	return &pruneService{
		catalog:    cat,
		uowFactory: uowFactory,
		store:      store,
		logger:     log,
		ownerId:    ownerId,
	}
}

func (s *pruneService) Prune(ctx context.Context, dryRun bool) ([]dto.PruneResult, error) {
	results := make([]dto.PruneResult, 0, len(s.catalog.All()))
	for _, site := range s.catalog.All() {
		res, err := s.pruneSite(ctx, site, dryRun)
		if err != nil {
			return results, fmt.Errorf("prune %s: %w", site.Slug, err)
		}
		results = append(results, *res)
	}
	return results, nil
}

func (s *pruneService) pruneSite(ctx context.Context, site catalog.Site, dryRun bool) (*dto.PruneResult, error) {
	repo := s.uowFactory.NewUnitOfWork(ctx).ImageRepository()
	rows, err := repo.FindByPathPrefix(ctx, s.ownerId, gallery.GalleryPrefix(s.ownerId, site.GalleryPrefix))
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	candidates := make([]gallery.Candidate, len(rows))
	for i, row := range rows {
		candidates[i] = gallery.Candidate{Id: row.Id.String(), Path: row.Path, CreatedAt: row.CreatedAt}
	}
	stale := gallery.Superseded(candidates, site.GalleryPrefix, site.SlotIds())

	res := &dto.PruneResult{SiteSlug: site.Slug, Paths: make([]string, len(stale))}
	for i, c := range stale {
		res.Paths[i] = c.Path
	}
	if dryRun || len(res.Paths) == 0 {
		return res, nil
	}

	// Rows first: a leftover object is invisible, a leftover row is not.
	deleted, err := repo.DeleteByPaths(ctx, res.Paths)
	if err != nil {
		return nil, fmt.Errorf("delete rows: %w", err)
	}
	res.RowsDeleted = deleted

	if err := s.store.Remove(ctx, res.Paths); err != nil {
		s.logger.Warn("PRUNE", "Failed to remove superseded objects", map[string]interface{}{
			"site":  site.Slug,
			"count": len(res.Paths),
			"error": err.Error(),
		})
		return res, nil
	}
	res.ObjectsRemoved = len(res.Paths)

	s.logger.Info("PRUNE", "Superseded images removed", map[string]interface{}{
		"site": site.Slug,
		"rows": deleted,
	})
	return res, nil
}
