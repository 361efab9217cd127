package contract

import (
	"context"

	"site-gallery-be/internal/entity"
)

type ImageRepository interface {
	Create(ctx context.Context, image *entity.Image) error
	DeleteByPaths(ctx context.Context, paths []string) (int64, error)
	// FindByPathPrefix returns rows owned by userId under prefix, newest first
	// (created_at DESC, path DESC, id DESC).
	FindByPathPrefix(ctx context.Context, userId, prefix string) ([]*entity.Image, error)
	CountByPathPrefix(ctx context.Context, userId, prefix string) (int64, error)
}
