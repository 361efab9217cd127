package implementation

import (
	"context"
	"errors"
	"fmt"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/mapper"
	"site-gallery-be/internal/model"
	"site-gallery-be/internal/repository/contract"
	"site-gallery-be/internal/repository/scope"
	"site-gallery-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ImageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ImageMapper
}

func NewImageRepository(db *gorm.DB) contract.ImageRepository {
	return &ImageRepositoryImpl{
		db:     db,
		mapper: mapper.NewImageMapper(),
	}
}

func (r *ImageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *entity.Image) error {
	m := r.mapper.ToModel(image)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// Requires gorm.Config.TranslateError (see pkg/database)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("insert %s: %w", image.Path, entity.ErrSlotConflict)
		}
		return err
	}
	*image = *r.mapper.ToEntity(m)
	return nil
}

func (r *ImageRepositoryImpl) DeleteByPaths(ctx context.Context, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}
	query := r.applySpecifications(r.db.WithContext(ctx), specification.PathIn{Paths: paths})
	res := query.Delete(&model.Image{})
	return res.RowsAffected, res.Error
}

func (r *ImageRepositoryImpl) FindByPathPrefix(ctx context.Context, userId, prefix string) ([]*entity.Image, error) {
	var models []*model.Image
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.OwnedBy{UserId: userId},
		specification.PathPrefix{Prefix: prefix},
	)
	if err := query.Scopes(scope.NewestFirst).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ImageRepositoryImpl) CountByPathPrefix(ctx context.Context, userId, prefix string) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Image{}),
		specification.OwnedBy{UserId: userId},
		specification.PathPrefix{Prefix: prefix},
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
