package specification

import (
	"strings"

	"gorm.io/gorm"
)

// OwnedBy filters by the owning user id (a string; ids come from the external auth provider).
type OwnedBy struct {
	UserId string
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// PathPrefix filters rows whose path starts with Prefix. LIKE wildcards in the
// prefix are escaped so "feature_1/" does not match "featureX1/".
type PathPrefix struct {
	Prefix string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s PathPrefix) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("path LIKE ?", likeEscaper.Replace(s.Prefix)+"%")
}

type PathIn struct {
	Paths []string
}

func (s PathIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("path IN ?", s.Paths)
}
