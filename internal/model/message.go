package model

import (
	"time"

	"github.com/google/uuid"
)

// messages — история чата по бронированию.
//
// Сообщения неизменяемы: набор сообщений бронирования только растёт,
// записи не редактируются и не удаляются.
type Message struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	BookingID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`

	Content string `gorm:"type:text;not null"`

	// Серверная отметка времени в момент записи; порядок записи
	// определяет порядок доставки подписчикам.
	CreatedAt time.Time `gorm:"not null;default:now();index"`

	// Навигационные поля (опционально)
	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Sender  *User    `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
