package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

type ProviderRepository interface {
	// Создать профиль провайдера.
	Create(ctx context.Context, provider *model.Provider) error
	// Получить профиль по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Provider, error)
	// Получить профиль по пользователю-владельцу.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Provider, error)
	// Обновить редактируемые поля профиля.
	Update(ctx context.Context, provider *model.Provider) error
	// Список проверенных провайдеров с пагинацией.
	ListVerified(ctx context.Context, limit, offset int) ([]model.Provider, int64, error)
	// Обновить агрегаты отзывов.
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, totalReviews int64) error
}

// Реализация на GORM.
type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

func (r *GormProviderRepository) Create(ctx context.Context, provider *model.Provider) error {
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *GormProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	var p model.Provider
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Provider, error) {
	var p model.Provider
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) Update(ctx context.Context, provider *model.Provider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

func (r *GormProviderRepository) ListVerified(
	ctx context.Context,
	limit, offset int,
) ([]model.Provider, int64, error) {
	var (
		providers []model.Provider
		total     int64
	)

	q := r.db.WithContext(ctx).
		Model(&model.Provider{}).
		Where("is_verified = ?", true)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	if err := q.Order("rating DESC").Find(&providers).Error; err != nil {
		return nil, 0, err
	}

	return providers, total, nil
}

func (r *GormProviderRepository) UpdateRating(
	ctx context.Context,
	id uuid.UUID,
	rating float64,
	totalReviews int64,
) error {
	return r.db.WithContext(ctx).
		Model(&model.Provider{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":        rating,
			"total_reviews": totalReviews,
		}).
		Error
}
