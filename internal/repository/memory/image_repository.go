package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/repository/contract"
	"site-gallery-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// imageTable is the shared backing store. It enforces the same unique
// constraints as the SQL schema: path, and slot_key when set.
type imageTable struct {
	mu   sync.RWMutex
	rows []*entity.Image
}

type tableOp func(rows []*entity.Image) ([]*entity.Image, error)

func cloneImage(img *entity.Image) *entity.Image {
	cp := *img
	if img.SlotKey != nil {
		k := *img.SlotKey
		cp.SlotKey = &k
	}
	return &cp
}

func insertOp(img *entity.Image) tableOp {
	return func(rows []*entity.Image) ([]*entity.Image, error) {
		for _, r := range rows {
			if r.Path == img.Path {
				return nil, fmt.Errorf("insert %s: duplicate path: %w", img.Path, entity.ErrSlotConflict)
			}
			if img.SlotKey != nil && r.SlotKey != nil && *r.SlotKey == *img.SlotKey {
				return nil, fmt.Errorf("insert %s: duplicate slot key: %w", img.Path, entity.ErrSlotConflict)
			}
		}
		return append(rows, cloneImage(img)), nil
	}
}

func deleteOp(paths []string, affected *int64) tableOp {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(rows []*entity.Image) ([]*entity.Image, error) {
		kept := rows[:0:0]
		var n int64
		for _, r := range rows {
			if set[r.Path] {
				n++
				continue
			}
			kept = append(kept, r)
		}
		if affected != nil {
			*affected = n
		}
		return kept, nil
	}
}

// apply runs ops against a copy of the live rows and swaps only if all succeed.
func (t *imageTable) apply(ops ...tableOp) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := append([]*entity.Image(nil), t.rows...)
	var err error
	for _, op := range ops {
		if rows, err = op(rows); err != nil {
			return err
		}
	}
	t.rows = rows
	return nil
}

func (t *imageTable) snapshot() []*entity.Image {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]*entity.Image(nil), t.rows...)
}

// memoryTx stages changes on a private copy and replays them on commit.
type memoryTx struct {
	staged  []*entity.Image
	journal []tableOp
}

type ImageRepository struct {
	table *imageTable
	uow   *UnitOfWork
}

func (r *ImageRepository) run(op tableOp) error {
	if tx := r.uow.tx; tx != nil {
		rows, err := op(tx.staged)
		if err != nil {
			return err
		}
		tx.staged = rows
		tx.journal = append(tx.journal, op)
		return nil
	}
	return r.table.apply(op)
}

func (r *ImageRepository) rows() []*entity.Image {
	if tx := r.uow.tx; tx != nil {
		return tx.staged
	}
	return r.table.snapshot()
}

func (r *ImageRepository) Create(ctx context.Context, image *entity.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if image.Id == uuid.Nil {
		image.Id = uuid.New()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}
	return r.run(insertOp(image))
}

func (r *ImageRepository) DeleteByPaths(ctx context.Context, paths []string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, nil
	}
	var affected int64
	if err := r.run(deleteOp(paths, &affected)); err != nil {
		return 0, err
	}
	return affected, nil
}

func (r *ImageRepository) FindByPathPrefix(ctx context.Context, userId, prefix string) ([]*entity.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entity.Image
	for _, row := range r.rows() {
		if row.UserId == userId && strings.HasPrefix(row.Path, prefix) {
			out = append(out, cloneImage(row))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Path != b.Path {
			return a.Path > b.Path
		}
		return a.Id.String() > b.Id.String()
	})
	return out, nil
}

func (r *ImageRepository) CountByPathPrefix(ctx context.Context, userId, prefix string) (int64, error) {
	rows, err := r.FindByPathPrefix(ctx, userId, prefix)
	return int64(len(rows)), err
}

type UnitOfWork struct {
	table *imageTable
	tx    *memoryTx
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = &memoryTx{staged: u.table.snapshot()}
	return nil
}

func (u *UnitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	journal := u.tx.journal
	u.tx = nil
	return u.table.apply(journal...)
}

func (u *UnitOfWork) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	u.tx = nil
	return nil
}

func (u *UnitOfWork) ImageRepository() contract.ImageRepository {
	return &ImageRepository{table: u.table, uow: u}
}

// RepositoryFactory backs the service when no database is configured and in tests.
type RepositoryFactory struct {
	table *imageTable
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{table: &imageTable{}}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{table: f.table}
}
