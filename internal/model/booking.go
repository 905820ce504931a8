package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Статус жизненного цикла бронирования.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// ValidBookingStatus проверяет, что строка — один из известных статусов.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// Статус оплаты бронирования.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// bookings
//
// Бронирования никогда не удаляются физически: отмена — это терминальный
// статус, а не удаление записи.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Свободный тег услуги ("plumber", "electrician" и т.п.).
	ServiceType string `gorm:"type:varchar(64);not null"`
	Description string `gorm:"type:text;not null"`

	// Адрес и координаты места выполнения в виде JSON-документа.
	Location datatypes.JSON `gorm:"type:jsonb"`

	ScheduledDate datatypes.Date `gorm:"type:date;not null"`
	ScheduledTime string         `gorm:"type:varchar(8);not null"` // "HH:MM"

	EstimatedHours float64 `gorm:"not null"`
	IsEmergency    bool    `gorm:"not null;default:false"`

	// Полная стоимость, зафиксированная при создании:
	// ставка провайдера × часы × 1.5 при срочном вызове.
	TotalAmount float64 `gorm:"not null"`

	Status        BookingStatus `gorm:"type:varchar(32);not null;default:'pending';index"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(32);not null;default:'pending'"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля для GORM (опционально, но удобно для Preload).
	Customer *User     `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Provider *Provider `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
