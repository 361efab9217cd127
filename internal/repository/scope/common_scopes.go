package scope

import "gorm.io/gorm"

// NewestFirst is a total order: created_at, then path (which embeds the
// upload millis), then id.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("path DESC").Order("id DESC")
}
