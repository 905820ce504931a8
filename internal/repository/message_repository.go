package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

type MessageRepository interface {
	// Записать новое сообщение; серверная отметка времени проставляется
	// в момент записи.
	Create(ctx context.Context, message *model.Message) error
	// Вся история бронирования по возрастанию времени создания.
	// Пагинации нет — известное ограничение масштаба.
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Message, error)
}

// Реализация на GORM.
type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, message *model.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *GormMessageRepository) ListByBooking(
	ctx context.Context,
	bookingID uuid.UUID,
) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&messages).
		Error; err != nil {
		return nil, err
	}
	return messages, nil
}
