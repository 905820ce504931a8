package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Статус проверки анкеты провайдера.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// Provider — исполнитель услуг (сантехник, электрик, механик и т.п.).
// Привязан к базе пользователей через UserID.
type Provider struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	// Внешний ключ на таблицу пользователей. Один профиль на аккаунт.
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	// Название в интерфейсе; может быть пустым, тогда показываем имя пользователя.
	BusinessName string `gorm:"type:varchar(255)"`

	// Краткое описание, специализация и т.п.
	Description string `gorm:"type:text"`

	// Список тегов услуг в виде JSON-массива строк: ["plumber","electrician"].
	ServiceTypes datatypes.JSON `gorm:"type:jsonb"`

	// Почасовая ставка. Стоимость бронирования фиксируется по ставке
	// на момент создания и при смене ставки не пересчитывается.
	HourlyRate float64 `gorm:"not null"`

	ExperienceYears int64 `gorm:"not null;default:0"`

	// Адрес и координаты в виде JSON-документа.
	Location datatypes.JSON `gorm:"type:jsonb"`

	IsVerified         bool               `gorm:"not null;default:false;index"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(32);not null;default:'pending'"`

	// Агрегаты отзывов, пересчитываются при создании отзыва.
	Rating       float64 `gorm:"not null;default:0"`
	TotalReviews int64   `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля для GORM (опционально, но удобно для Preload).
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
