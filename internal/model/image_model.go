package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Image is a row of the shared `images` metadata table. Rows written before
// slot_key existed keep it NULL and are still resolved through their path.
type Image struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string            `gorm:"column:user_id;type:varchar(255);not null;index"`
	Path      string            `gorm:"type:text;not null;uniqueIndex"`
	SlotKey   *string           `gorm:"type:text;uniqueIndex"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index"`
}

func (Image) TableName() string {
	return "images"
}
