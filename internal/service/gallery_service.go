package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/config"
	"site-gallery-be/internal/dto"
	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/pkg/logger"
	"site-gallery-be/internal/repository/contract"
	"site-gallery-be/internal/repository/unitofwork"
	"site-gallery-be/pkg/gallery"
	"site-gallery-be/pkg/objectstore"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
)

type IGalleryService interface {
	Load(ctx context.Context, siteSlug string) (*dto.GalleryStateResponse, error)
	Upload(ctx context.Context, session entity.Session, siteSlug, slotId string, file *dto.UploadFile) (*dto.UploadResponse, error)
	CopyPrompt(siteSlug, slotId string) (*dto.PromptResponse, error)
}

type GalleryOptions struct {
	OwnerId        string
	UploadStrategy string
	MaxUploadBytes int64
}

type galleryService struct {
	catalog    *catalog.Catalog
	uowFactory unitofwork.RepositoryFactory
	store      objectstore.Store
	states     contract.GalleryStateRepository
	tracker    *gallery.UploadTracker
	publisher  IPublisherService
	logger     logger.ILogger
	opts       GalleryOptions
	now        func() time.Time
	guards     sync.Map // site slug -> *siteGuard
}

// siteGuard orders state writes for one site within this process. gen moves
// on every patch so a Load whose query predates the patch does not save over it.
type siteGuard struct {
	mu  sync.Mutex
	gen uint64
}

func (s *galleryService) guard(siteSlug string) *siteGuard {
	g, _ := s.guards.LoadOrStore(siteSlug, &siteGuard{})
	return g.(*siteGuard)
}

func NewGalleryService(
	cat *catalog.Catalog,
	uowFactory unitofwork.RepositoryFactory,
	store objectstore.Store,
	states contract.GalleryStateRepository,
	publisher IPublisherService,
	log logger.ILogger,
	opts GalleryOptions,
) IGalleryService {
	if opts.UploadStrategy == "" {
		opts.UploadStrategy = config.UploadStrategyAtomic
	}
	return &galleryService{
		catalog:    cat,
		uowFactory: uowFactory,
		store:      store,
		states:     states,
		tracker:    gallery.NewUploadTracker(),
		publisher:  publisher,
		logger:     log,
		opts:       opts,
		now:        time.Now,
	}
}

func (s *galleryService) site(slug string) (catalog.Site, error) {
	site, ok := s.catalog.Get(slug)
	if !ok {
		return catalog.Site{}, fmt.Errorf("%w: %s", entity.ErrSiteNotFound, slug)
	}
	return site, nil
}

// Load rebuilds the slot -> image mapping from the metadata table. A failed
// query is logged and answered with the last known state marked stale.
func (s *galleryService) Load(ctx context.Context, siteSlug string) (*dto.GalleryStateResponse, error) {
	site, err := s.site(siteSlug)
	if err != nil {
		return nil, err
	}

	guard := s.guard(site.Slug)
	guard.mu.Lock()
	gen := guard.gen
	guard.mu.Unlock()

	state, err := s.query(ctx, site)
	if err != nil {
		s.logger.Warn("GALLERY", "Gallery load failed, serving last known state", map[string]interface{}{
			"site":  site.Slug,
			"error": err.Error(),
		})
		state = s.fallback(ctx, site)
	} else {
		s.storeLoaded(ctx, guard, gen, state)
	}

	return s.toResponse(site, state), nil
}

func (s *galleryService) query(ctx context.Context, site catalog.Site) (*entity.GalleryState, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.ImageRepository().FindByPathPrefix(ctx, s.opts.OwnerId, gallery.GalleryPrefix(s.opts.OwnerId, site.GalleryPrefix))
	if err != nil {
		return nil, err
	}

	candidates := make([]gallery.Candidate, len(rows))
	for i, row := range rows {
		candidates[i] = gallery.Candidate{Id: row.Id.String(), Path: row.Path, CreatedAt: row.CreatedAt}
	}
	latest := gallery.SelectLatest(candidates, site.GalleryPrefix, site.SlotIds())

	state := emptyState(site, false, s.now())
	for i := range state.Slots {
		if c, ok := latest[state.Slots[i].SlotId]; ok {
			url := s.store.PublicURL(c.Path)
			state.Slots[i].ImageURL = &url
			state.Slots[i].Path = c.Path
		}
	}
	return state, nil
}

func (s *galleryService) fallback(ctx context.Context, site catalog.Site) *entity.GalleryState {
	prev, ok, err := s.states.Get(ctx, site.Slug)
	if err != nil {
		s.logger.Warn("GALLERY", "Failed to read stored gallery state", map[string]interface{}{"site": site.Slug, "error": err.Error()})
	}
	if !ok || err != nil {
		return emptyState(site, true, s.now())
	}
	prev.Stale = true
	return prev
}

func emptyState(site catalog.Site, stale bool, at time.Time) *entity.GalleryState {
	state := &entity.GalleryState{
		SiteSlug: site.Slug,
		Slots:    make([]entity.SlotImage, len(site.Slots)),
		Stale:    stale,
		LoadedAt: at,
	}
	for i, slot := range site.Slots {
		state.Slots[i] = entity.SlotImage{SlotId: slot.Id, Title: slot.Title}
	}
	return state
}

// toResponse follows catalog order so slots added to a site since the state
// was stored still show up (as empty).
func (s *galleryService) toResponse(site catalog.Site, state *entity.GalleryState) *dto.GalleryStateResponse {
	res := &dto.GalleryStateResponse{
		SiteSlug: site.Slug,
		Slots:    make([]dto.SlotImageResponse, 0, len(site.Slots)),
		Stale:    state.Stale,
		LoadedAt: state.LoadedAt,
	}
	for _, slot := range site.Slots {
		item := dto.SlotImageResponse{
			SlotId:      slot.Id,
			Title:       slot.Title,
			UploadState: s.tracker.State(site.GalleryPrefix, slot.Id),
		}
		if stored, ok := state.Slot(slot.Id); ok && stored.ImageURL != nil {
			url := *stored.ImageURL
			item.ImageURL = &url
		}
		res.Slots = append(res.Slots, item)
	}
	return res
}

func (s *galleryService) Upload(ctx context.Context, session entity.Session, siteSlug, slotId string, file *dto.UploadFile) (*dto.UploadResponse, error) {
	site, err := s.site(siteSlug)
	if err != nil {
		return nil, err
	}
	slot, ok := site.Slot(slotId)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", entity.ErrSlotNotFound, siteSlug, slotId)
	}
	if !session.IsAdmin() {
		return nil, entity.ErrForbidden
	}
	if file == nil || file.Body == nil || file.Size == 0 {
		return nil, entity.ErrEmptyFile
	}
	if s.opts.MaxUploadBytes > 0 && file.Size > s.opts.MaxUploadBytes {
		return nil, entity.ErrFileTooLarge
	}

	if err := s.tracker.Begin(site.GalleryPrefix, slot.Id); err != nil {
		return nil, err
	}

	res, err := s.replace(ctx, site, slot, file)
	if err != nil {
		s.tracker.Fail(site.GalleryPrefix, slot.Id, failureReason(err))
		s.logger.Error("GALLERY", "Upload failed", map[string]interface{}{
			"site":     site.Slug,
			"slot_id":  slot.Id,
			"strategy": s.opts.UploadStrategy,
			"error":    err.Error(),
		})
		return nil, err
	}
	s.tracker.Finish(site.GalleryPrefix, slot.Id)

	s.patchState(ctx, site, slot.Id, res)
	s.announce(ctx, session, site, slot.Id, res)

	s.logger.Info("GALLERY", "Slot image replaced", map[string]interface{}{
		"site":     site.Slug,
		"slot_id":  slot.Id,
		"path":     res.Path,
		"removed":  res.Removed,
		"strategy": s.opts.UploadStrategy,
	})
	return &dto.UploadResponse{
		SiteSlug: site.Slug,
		SlotId:   slot.Id,
		ImageURL: res.ImageURL,
		Path:     res.Path,
		Removed:  len(res.Removed),
	}, nil
}

// failureReason reduces an upload error to a code safe to show anonymous
// visitors. The full error only goes to the log.
func failureReason(err error) string {
	switch {
	case errors.Is(err, entity.ErrStorageUnavailable):
		return gallery.ReasonStorageUnavailable
	case errors.Is(err, entity.ErrSlotConflict), errors.Is(err, objectstore.ErrObjectExists):
		return gallery.ReasonConflict
	case errors.Is(err, entity.ErrEmptyFile), errors.Is(err, entity.ErrFileTooLarge), errors.Is(err, entity.ErrUnsupportedMedia):
		return gallery.ReasonRejected
	default:
		return gallery.ReasonFailed
	}
}

type replacement struct {
	Path     string
	ImageURL string
	Removed  []string
}

type preparedUpload struct {
	data        []byte
	contentType string
	path        string
	record      *entity.Image
}

func (s *galleryService) prepare(site catalog.Site, slot catalog.Slot, file *dto.UploadFile) (*preparedUpload, error) {
	limit := s.opts.MaxUploadBytes
	var reader io.Reader = file.Body
	if limit > 0 {
		reader = io.LimitReader(file.Body, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, entity.ErrEmptyFile
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, entity.ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", entity.ErrUnsupportedMedia, mtype.String())
	}

	now := s.now()
	path := gallery.BuildPath(s.opts.OwnerId, site.GalleryPrefix, slot.Id, now, file.Filename)
	slotKey := gallery.SlotKey(s.opts.OwnerId, site.GalleryPrefix, slot.Id)

	return &preparedUpload{
		data:        data,
		contentType: mtype.String(),
		path:        path,
		record: &entity.Image{
			UserId:  s.opts.OwnerId,
			Path:    path,
			SlotKey: &slotKey,
			Metadata: entity.ImageMetadata{
				OriginalName: file.Filename,
				ContentType:  mtype.String(),
				Size:         int64(len(data)),
				SiteSlug:     site.Slug,
				SlotId:       slot.Id,
			},
			CreatedAt: now,
		},
	}, nil
}

func (s *galleryService) replace(ctx context.Context, site catalog.Site, slot catalog.Slot, file *dto.UploadFile) (*replacement, error) {
	up, err := s.prepare(site, slot, file)
	if err != nil {
		return nil, err
	}

	var removed []string
	if s.opts.UploadStrategy == config.UploadStrategyLegacy {
		removed, err = s.replaceLegacy(ctx, site, slot, up)
	} else {
		removed, err = s.replaceAtomic(ctx, site, slot, up)
	}
	if err != nil {
		return nil, err
	}

	return &replacement{
		Path:     up.path,
		ImageURL: s.store.PublicURL(up.path),
		Removed:  removed,
	}, nil
}

// replaceAtomic stores the new object first, then swaps the slot's rows in a
// single transaction. Until the commit the old row stays live; after it, the
// unique slot_key guarantees a single row. Old objects are removed last and
// a failure there only leaves orphans for prune_orphans.
func (s *galleryService) replaceAtomic(ctx context.Context, site catalog.Site, slot catalog.Slot, up *preparedUpload) ([]string, error) {
	if err := s.store.Upload(ctx, up.path, bytes.NewReader(up.data), up.contentType, true); err != nil {
		return nil, fmt.Errorf("%w: upload object: %w", entity.ErrStorageUnavailable, err)
	}

	oldPaths, err := s.swapRows(ctx, site, slot, up.record)
	if err != nil {
		s.discard(ctx, up.path)
		return nil, err
	}

	if len(oldPaths) > 0 {
		if err := s.store.Remove(ctx, oldPaths); err != nil {
			s.logger.Warn("GALLERY", "Failed to remove superseded objects", map[string]interface{}{
				"site":  site.Slug,
				"paths": oldPaths,
				"error": err.Error(),
			})
		}
	}
	return oldPaths, nil
}

func (s *galleryService) swapRows(ctx context.Context, site catalog.Site, slot catalog.Slot, record *entity.Image) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.ImageRepository()
	existing, err := repo.FindByPathPrefix(ctx, s.opts.OwnerId, gallery.SlotPrefix(s.opts.OwnerId, site.GalleryPrefix, slot.Id))
	if err != nil {
		return nil, fmt.Errorf("list slot rows: %w", err)
	}
	oldPaths := pathsOf(existing, record.Path)

	if _, err := repo.DeleteByPaths(ctx, oldPaths); err != nil {
		return nil, fmt.Errorf("delete slot rows: %w", err)
	}
	if err := repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("insert slot row: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit slot swap: %w", err)
	}
	return oldPaths, nil
}

// replaceLegacy keeps the historical order: delete everything under the slot,
// then upload and insert. Nothing is rolled back, so an upload failure after
// the delete leaves the slot empty.
func (s *galleryService) replaceLegacy(ctx context.Context, site catalog.Site, slot catalog.Slot, up *preparedUpload) ([]string, error) {
	repo := s.uowFactory.NewUnitOfWork(ctx).ImageRepository()

	existing, err := repo.FindByPathPrefix(ctx, s.opts.OwnerId, gallery.SlotPrefix(s.opts.OwnerId, site.GalleryPrefix, slot.Id))
	if err != nil {
		return nil, fmt.Errorf("list slot rows: %w", err)
	}
	oldPaths := pathsOf(existing, "")

	if len(oldPaths) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := s.store.Remove(gctx, oldPaths); err != nil {
				return fmt.Errorf("%w: remove objects: %w", entity.ErrStorageUnavailable, err)
			}
			return nil
		})
		g.Go(func() error {
			if _, err := repo.DeleteByPaths(gctx, oldPaths); err != nil {
				return fmt.Errorf("delete slot rows: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if err := s.store.Upload(ctx, up.path, bytes.NewReader(up.data), up.contentType, false); err != nil {
		return nil, fmt.Errorf("%w: upload object: %w", entity.ErrStorageUnavailable, err)
	}
	if err := repo.Create(ctx, up.record); err != nil {
		return nil, fmt.Errorf("insert slot row: %w", err)
	}
	return oldPaths, nil
}

func (s *galleryService) discard(ctx context.Context, path string) {
	if err := s.store.Remove(context.WithoutCancel(ctx), []string{path}); err != nil {
		s.logger.Warn("GALLERY", "Failed to remove uploaded object after error", map[string]interface{}{"path": path, "error": err.Error()})
	}
}

func pathsOf(images []*entity.Image, except string) []string {
	paths := make([]string, 0, len(images))
	for _, img := range images {
		if img.Path != except {
			paths = append(paths, img.Path)
		}
	}
	return paths
}

// storeLoaded saves a freshly queried state unless an upload patched the site
// after the query started; the stored copy is newer then.
func (s *galleryService) storeLoaded(ctx context.Context, guard *siteGuard, gen uint64, state *entity.GalleryState) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.gen != gen {
		return
	}
	if err := s.states.Save(ctx, state); err != nil {
		s.logger.Warn("GALLERY", "Failed to store gallery state", map[string]interface{}{"site": state.SiteSlug, "error": err.Error()})
	}
}

// patchState updates only the uploaded slot in the stored state. Without a
// stored state there is nothing to patch; the next Load rebuilds it.
func (s *galleryService) patchState(ctx context.Context, site catalog.Site, slotId string, res *replacement) {
	guard := s.guard(site.Slug)
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.gen++

	url := res.ImageURL
	_, err := s.states.Patch(ctx, site.Slug, slotId, func(slot *entity.SlotImage) {
		slot.ImageURL = &url
		slot.Path = res.Path
	})
	if err != nil {
		s.logger.Warn("GALLERY", "Failed to patch gallery state", map[string]interface{}{"site": site.Slug, "slot_id": slotId, "error": err.Error()})
	}
}

func (s *galleryService) announce(ctx context.Context, session entity.Session, site catalog.Site, slotId string, res *replacement) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(entity.SlotReplaced{
		SiteSlug:   site.Slug,
		SlotId:     slotId,
		Path:       res.Path,
		ImageURL:   res.ImageURL,
		Removed:    res.Removed,
		UploadedBy: session.UserId,
		OccurredAt: s.now(),
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("GALLERY", "Failed to publish slot replacement", map[string]interface{}{"site": site.Slug, "error": err.Error()})
	}
}

func (s *galleryService) CopyPrompt(siteSlug, slotId string) (*dto.PromptResponse, error) {
	site, err := s.site(siteSlug)
	if err != nil {
		return nil, err
	}
	slot, ok := site.Slot(slotId)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", entity.ErrSlotNotFound, siteSlug, slotId)
	}
	return &dto.PromptResponse{
		SiteSlug: site.Slug,
		SlotId:   slot.Id,
		Title:    slot.Title,
		Prompt:   slot.Prompt,
	}, nil
}
