package model

import (
	"time"

	"github.com/google/uuid"
)

// Роль аккаунта. Закрытое перечисление, валидируется на границе сервиса.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleServiceProvider Role = "service_provider"
)

// ValidRole проверяет, что строка — одна из известных ролей.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleServiceProvider:
		return true
	default:
		return false
	}
}

// users
type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	FirstName string `gorm:"type:varchar(255);not null"`
	LastName  string `gorm:"type:varchar(255);not null"`
	Phone     string `gorm:"type:varchar(32)"`

	Role Role `gorm:"type:varchar(32);not null;index"`

	// Клиенты активируются сразу при регистрации,
	// провайдеры — только после ручной проверки анкеты.
	IsVerified bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально)
	Provider *Provider `gorm:"foreignKey:UserID"`
}
