package scope

import "gorm.io/gorm"

// OrderByCreatedDesc lists newest first; id breaks ties so pages stay stable.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

