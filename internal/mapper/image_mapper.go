package mapper

import (
	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/model"

	"gorm.io/datatypes"
)

type ImageMapper struct{}

func NewImageMapper() *ImageMapper {
	return &ImageMapper{}
}

func (m *ImageMapper) ToEntity(i *model.Image) *entity.Image {
	if i == nil {
		return nil
	}

	return &entity.Image{
		Id:        i.Id,
		UserId:    i.UserId,
		Path:      i.Path,
		SlotKey:   i.SlotKey,
		Metadata:  metadataFromJSON(i.Metadata),
		CreatedAt: i.CreatedAt,
	}
}

func (m *ImageMapper) ToModel(i *entity.Image) *model.Image {
	if i == nil {
		return nil
	}

	return &model.Image{
		Id:        i.Id,
		UserId:    i.UserId,
		Path:      i.Path,
		SlotKey:   i.SlotKey,
		Metadata:  metadataToJSON(i.Metadata),
		CreatedAt: i.CreatedAt,
	}
}

func (m *ImageMapper) ToEntities(images []*model.Image) []*entity.Image {
	entities := make([]*entity.Image, len(images))
	for i, img := range images {
		entities[i] = m.ToEntity(img)
	}
	return entities
}

func metadataToJSON(meta entity.ImageMetadata) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	if meta.OriginalName != "" {
		out["original_name"] = meta.OriginalName
	}
	if meta.ContentType != "" {
		out["content_type"] = meta.ContentType
	}
	if meta.Size > 0 {
		out["size"] = meta.Size
	}
	if meta.SiteSlug != "" {
		out["site"] = meta.SiteSlug
	}
	if meta.SlotId != "" {
		out["slot_id"] = meta.SlotId
	}
	return out
}

// metadataFromJSON tolerates rows written by other clients (missing keys,
// numbers decoded as float64).
func metadataFromJSON(raw datatypes.JSONMap) entity.ImageMetadata {
	var meta entity.ImageMetadata
	if raw == nil {
		return meta
	}
	meta.OriginalName, _ = raw["original_name"].(string)
	meta.ContentType, _ = raw["content_type"].(string)
	meta.SiteSlug, _ = raw["site"].(string)
	meta.SlotId, _ = raw["slot_id"].(string)
	switch v := raw["size"].(type) {
	case float64:
		meta.Size = int64(v)
	case int64:
		meta.Size = v
	case int:
		meta.Size = int64(v)
	}
	return meta
}
