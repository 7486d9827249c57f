package db

import "gorm.io/gorm"

// Latest orders by id descending and keeps the first row.
func Latest() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("id DESC").Limit(1)
	}
}
