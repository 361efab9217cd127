package mapper

import (
	"testing"
	"time"

	"site-gallery-be/internal/entity"
	"site-gallery-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestImageMapperMetadataFromForeignRows(t *testing.T) {
	m := NewImageMapper()

	got := m.ToEntity(&model.Image{
		Id:        uuid.New(),
		UserId:    "admin",
		Path:      "admin/p/s/1_a.png",
		Metadata:  datatypes.JSONMap{"size": float64(2048), "content_type": "image/png", "extra": true},
		CreatedAt: time.Unix(10, 0),
	})

	assert.Equal(t, int64(2048), got.Metadata.Size)
	assert.Equal(t, "image/png", got.Metadata.ContentType)
	assert.Empty(t, got.Metadata.OriginalName)
	assert.Nil(t, got.SlotKey)

	assert.Equal(t, entity.ImageMetadata{}, m.ToEntity(&model.Image{}).Metadata)
	assert.Nil(t, m.ToEntity(nil))
}

func TestImageMapperToModelOmitsEmptyMetadata(t *testing.T) {
	m := NewImageMapper()
	key := "admin/p/s"

	got := m.ToModel(&entity.Image{
		UserId:   "admin",
		Path:     "admin/p/s/1_a.png",
		SlotKey:  &key,
		Metadata: entity.ImageMetadata{SlotId: "s", Size: 12},
	})

	assert.Equal(t, datatypes.JSONMap{"slot_id": "s", "size": int64(12)}, got.Metadata)
	assert.Equal(t, &key, got.SlotKey)
}
