package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

type BookingRepository interface {
	// Создать новое бронирование.
	Create(ctx context.Context, booking *model.Booking) error
	// Получить бронирование по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// Получить бронирование с предзагруженными участниками для ответа клиенту.
	GetByIDPreloaded(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// Обновить статус бронирования.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
	// Обновить статус оплаты.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error
	// Список бронирований клиента, новые сверху, с пагинацией.
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]model.Booking, int64, error)
	// Список бронирований провайдера, новые сверху, с пагинацией.
	ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]model.Booking, int64, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) GetByIDPreloaded(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Provider").
		First(&b, "id = ?", id).
		Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status model.BookingStatus,
) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *GormBookingRepository) UpdatePaymentStatus(
	ctx context.Context,
	id uuid.UUID,
	status model.PaymentStatus,
) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Update("payment_status", status).
		Error
}

func (r *GormBookingRepository) ListByCustomer(
	ctx context.Context,
	customerID uuid.UUID,
	limit, offset int,
) ([]model.Booking, int64, error) {
	return r.list(ctx, "customer_id = ?", customerID, limit, offset)
}

func (r *GormBookingRepository) ListByProvider(
	ctx context.Context,
	providerID uuid.UUID,
	limit, offset int,
) ([]model.Booking, int64, error) {
	return r.list(ctx, "provider_id = ?", providerID, limit, offset)
}

func (r *GormBookingRepository) list(
	ctx context.Context,
	cond string,
	id uuid.UUID,
	limit, offset int,
) ([]model.Booking, int64, error) {
	var (
		bookings []model.Booking
		total    int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where(cond, id)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}
