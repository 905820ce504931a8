package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/auth"
	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
)

const minPasswordLen = 6

// IdentityService реализует регистрацию, вход и профиль аккаунта.
type IdentityService struct {
	userRepo repository.UserRepository
	tokens   *auth.Manager
}

func NewIdentityService(userRepo repository.UserRepository, tokens *auth.Manager) *IdentityService {
	return &IdentityService{userRepo: userRepo, tokens: tokens}
}

// RegisterInput — параметры регистрации.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      model.Role
}

// Register создаёт аккаунт. Клиенты активируются сразу, провайдеры ждут
// ручной проверки анкеты. Возвращает профиль и токен сессии.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, "", status.Error(codes.InvalidArgument, "valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, "", status.Errorf(codes.InvalidArgument, "password must be at least %d characters", minPasswordLen)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, "", status.Error(codes.InvalidArgument, "first and last name are required")
	}
	if !model.ValidRole(in.Role) {
		return nil, "", status.Error(codes.InvalidArgument, "role must be customer or service_provider")
	}

	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", status.Error(codes.AlreadyExists, "user already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", status.Errorf(codes.Internal, "lookup user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", status.Errorf(codes.Internal, "hash password: %v", err)
	}

	u := &model.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         in.Role,
		IsVerified:   in.Role == model.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, "", status.Errorf(codes.Internal, "create user: %v", err)
	}

	token, err := s.tokens.CreateAccessToken(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, "", status.Errorf(codes.Internal, "issue token: %v", err)
	}
	return u, token, nil
}

// Login проверяет учётные данные и выдаёт токен сессии. Неизвестный e-mail
// и неверный пароль дают одинаковый ответ.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", status.Error(codes.Unauthenticated, "invalid credentials")
		}
		return nil, "", status.Errorf(codes.Internal, "lookup user: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", status.Error(codes.Unauthenticated, "invalid credentials")
	}

	token, err := s.tokens.CreateAccessToken(u.ID, u.Role, u.Email)
	if err != nil {
		return nil, "", status.Errorf(codes.Internal, "issue token: %v", err)
	}
	return u, token, nil
}

// UpdateContacts обновляет контактные поля профиля.
func (s *IdentityService) UpdateContacts(
	ctx context.Context,
	id uuid.UUID,
	firstName, lastName, phone string,
) (*model.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, status.Error(codes.InvalidArgument, "first and last name are required")
	}

	u, err := s.userRepo.UpdateContacts(ctx, id, firstName, lastName, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "user not found")
		}
		return nil, status.Errorf(codes.Internal, "update user: %v", err)
	}
	return u, nil
}

// GetProfile возвращает профиль пользователя по ID.
func (s *IdentityService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "user not found")
		}
		return nil, status.Errorf(codes.Internal, "load user: %v", err)
	}
	return u, nil
}
