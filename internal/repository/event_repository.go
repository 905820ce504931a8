package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

type EventRepository interface {
	// Дописать событие аудита.
	Append(ctx context.Context, event *model.Event) error
	// События по бронированию в хронологическом порядке.
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Event, error)
}

// Реализация на GORM.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Append(ctx context.Context, event *model.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormEventRepository) ListByBooking(
	ctx context.Context,
	bookingID uuid.UUID,
) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&events).
		Error; err != nil {
		return nil, err
	}
	return events, nil
}
