package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"site-gallery-be/internal/catalog"
	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/repository/contract"
	"site-gallery-be/internal/repository/unitofwork"
	"site-gallery-be/pkg/objectstore"

	"github.com/stretchr/testify/require"
)

const testOwner = "admin-1"

// 1x1 transparent PNG.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89\x00\x00\x00\rIDATx\x9cc\xf8\x0f\x00\x00\x01\x01\x00\x05\x18\xd8N\x00\x00\x00\x00IEND\xaeB`\x82")

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		catalog.Site{
			Slug:          "demo-site",
			Name:          "Demo",
			Category:      catalog.CategoryBakery,
			GalleryPrefix: "demo",
			Slots: []catalog.Slot{
				{Id: "a", Title: "Slot A", Prompt: "prompt for a"},
				{Id: "b", Title: "Slot B", Prompt: "prompt for b"},
			},
			Forms: []string{catalog.FormNewsletter, catalog.FormReservation},
		},
		catalog.Site{
			Slug:          "other-site",
			Name:          "Other",
			Category:      catalog.CategorySalon,
			GalleryPrefix: "other",
			Slots:         []catalog.Slot{{Id: "a", Title: "Other A", Prompt: "other prompt"}},
		},
	)
	require.NoError(t, err)
	return cat
}

// flakyStore wraps a real store with switchable failures and an optional
// hold on uploads for one slot.
type flakyStore struct {
	objectstore.Store

	mu         sync.Mutex
	failUpload error
	failRemove error

	holdSlot string
	entered  chan struct{}
	release  chan struct{}
}

func (f *flakyStore) setFailUpload(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failUpload = err
}

func (f *flakyStore) setFailRemove(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRemove = err
}

func (f *flakyStore) Upload(ctx context.Context, path string, body io.Reader, contentType string, upsert bool) error {
	if f.holdSlot != "" && strings.Contains(path, "/"+f.holdSlot+"/") {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	err := f.failUpload
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Upload(ctx, path, body, contentType, upsert)
}

func (f *flakyStore) Remove(ctx context.Context, paths []string) error {
	f.mu.Lock()
	err := f.failRemove
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Remove(ctx, paths)
}

// flakyFactory injects repository failures on top of the in-memory factory.
type flakyFactory struct {
	inner unitofwork.RepositoryFactory

	mu         sync.Mutex
	failFind   error
	failCreate error
}

func (f *flakyFactory) set(find, create error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failFind = find
	f.failCreate = create
}

func (f *flakyFactory) current() (error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failFind, f.failCreate
}

func (f *flakyFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &flakyUnitOfWork{UnitOfWork: f.inner.NewUnitOfWork(ctx), factory: f}
}

type flakyUnitOfWork struct {
	unitofwork.UnitOfWork
	factory *flakyFactory
}

func (u *flakyUnitOfWork) ImageRepository() contract.ImageRepository {
	return &flakyImageRepository{ImageRepository: u.UnitOfWork.ImageRepository(), factory: u.factory}
}

type flakyImageRepository struct {
	contract.ImageRepository
	factory *flakyFactory
}

func (r *flakyImageRepository) FindByPathPrefix(ctx context.Context, userId, prefix string) ([]*entity.Image, error) {
	if err, _ := r.factory.current(); err != nil {
		return nil, err
	}
	return r.ImageRepository.FindByPathPrefix(ctx, userId, prefix)
}

func (r *flakyImageRepository) Create(ctx context.Context, image *entity.Image) error {
	if _, err := r.factory.current(); err != nil {
		return err
	}
	return r.ImageRepository.Create(ctx, image)
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) all() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.payloads...)
}

// steppingClock advances one second per reading so successive uploads get
// distinct, increasing timestamps.
type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}
