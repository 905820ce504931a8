package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

type ReviewRepository interface {
	// Создать отзыв.
	Create(ctx context.Context, review *model.Review) error
	// Есть ли уже отзыв по бронированию.
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	// Все отзывы провайдера, новые сверху.
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]model.Review, error)
	// Средний рейтинг и количество отзывов провайдера.
	AggregateForProvider(ctx context.Context, providerID uuid.UUID) (float64, int64, error)
}

// Реализация на GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *GormReviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).
		Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormReviewRepository) ListByProvider(
	ctx context.Context,
	providerID uuid.UUID,
) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&reviews).
		Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) AggregateForProvider(
	ctx context.Context,
	providerID uuid.UUID,
) (float64, int64, error) {
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Scan(&agg).
		Error; err != nil {
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}
