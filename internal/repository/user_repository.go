package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

type UserRepository interface {
	// Создать нового пользователя.
	Create(ctx context.Context, user *model.User) error
	// Получить пользователя по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// Найти пользователя по e-mail (nil, gorm.ErrRecordNotFound если нет).
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Обновить контактные поля профиля.
	UpdateContacts(ctx context.Context, id uuid.UUID, firstName, lastName, phone string) (*model.User, error)
}

// Реализация на GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) UpdateContacts(
	ctx context.Context,
	id uuid.UUID,
	firstName, lastName, phone string,
) (*model.User, error) {
	update := map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"phone":      phone,
	}
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(update).
		Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
