package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей сервисного ядра.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Provider{},
		&Booking{},
		&Message{},
		&Review{},
		&Event{},
	)
}
