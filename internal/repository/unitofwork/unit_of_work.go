package unitofwork

import (
	"context"

	"site-gallery-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ImageRepository() contract.ImageRepository
}
