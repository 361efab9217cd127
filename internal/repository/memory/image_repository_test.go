package memory

import (
	"context"
	"testing"
	"time"

	"site-gallery-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestImageRepositoryFindOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory().NewUnitOfWork(ctx).ImageRepository()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/1_x.png", CreatedAt: at}))
	require.NoError(t, repo.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/3_x.png", CreatedAt: at.Add(time.Second)}))
	require.NoError(t, repo.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/2_x.png", CreatedAt: at}))
	require.NoError(t, repo.Create(ctx, &entity.Image{UserId: "b", Path: "b/p/s/9_x.png", CreatedAt: at}))

	rows, err := repo.FindByPathPrefix(ctx, "a", "a/p/")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a/p/s/3_x.png", rows[0].Path)
	assert.Equal(t, "a/p/s/2_x.png", rows[1].Path)
	assert.Equal(t, "a/p/s/1_x.png", rows[2].Path)

	n, err := repo.CountByPathPrefix(ctx, "b", "b/")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestImageRepositoryUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory().NewUnitOfWork(ctx).ImageRepository()

	require.NoError(t, repo.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/1_x.png", SlotKey: strPtr("a/p/s")}))

	err := repo.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/1_x.png"})
	assert.ErrorIs(t, err, entity.ErrSlotConflict)

	err = repo.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/2_x.png", SlotKey: strPtr("a/p/s")})
	assert.ErrorIs(t, err, entity.ErrSlotConflict)

	// legacy rows without a slot key do not collide
	require.NoError(t, repo.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/3_x.png"}))
	require.NoError(t, repo.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/4_x.png"}))
}

func TestUnitOfWorkCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory()

	seed := factory.NewUnitOfWork(ctx).ImageRepository()
	require.NoError(t, seed.Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/1_old.png", SlotKey: strPtr("a/p/s")}))

	// rolled back: nothing changes
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	_, err := uow.ImageRepository().DeleteByPaths(ctx, []string{"a/p/s/1_old.png"})
	require.NoError(t, err)

	inside, err := uow.ImageRepository().FindByPathPrefix(ctx, "a", "a/p/s/")
	require.NoError(t, err)
	assert.Empty(t, inside, "transaction sees its own delete")

	outside, err := seed.FindByPathPrefix(ctx, "a", "a/p/s/")
	require.NoError(t, err)
	assert.Len(t, outside, 1, "uncommitted delete is invisible")

	require.NoError(t, uow.Rollback())
	outside, err = seed.FindByPathPrefix(ctx, "a", "a/p/s/")
	require.NoError(t, err)
	assert.Len(t, outside, 1)

	// committed: replace in one step
	uow = factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	n, err := uow.ImageRepository().DeleteByPaths(ctx, []string{"a/p/s/1_old.png"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, uow.ImageRepository().Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/2_new.png", SlotKey: strPtr("a/p/s")}))
	require.NoError(t, uow.Commit())

	rows, err := seed.FindByPathPrefix(ctx, "a", "a/p/s/")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a/p/s/2_new.png", rows[0].Path)

	assert.Error(t, uow.Commit(), "no open transaction")
}

func TestUnitOfWorkCommitConflict(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory()

	first := factory.NewUnitOfWork(ctx)
	second := factory.NewUnitOfWork(ctx)
	require.NoError(t, first.Begin(ctx))
	require.NoError(t, second.Begin(ctx))

	require.NoError(t, first.ImageRepository().Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/1.png", SlotKey: strPtr("a/p/s")}))
	require.NoError(t, second.ImageRepository().Create(ctx, &entity.Image{UserId: "a", Path: "a/p/s/2.png", SlotKey: strPtr("a/p/s")}))

	require.NoError(t, first.Commit())
	assert.ErrorIs(t, second.Commit(), entity.ErrSlotConflict)

	rows, err := factory.NewUnitOfWork(ctx).ImageRepository().FindByPathPrefix(ctx, "a", "a/")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
