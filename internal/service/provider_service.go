package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/booking"
	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
)

// ProviderService — справочник провайдеров: анкеты, ставки, флаг проверки.
type ProviderService struct {
	providerRepo repository.ProviderRepository
}

func NewProviderService(providerRepo repository.ProviderRepository) *ProviderService {
	return &ProviderService{providerRepo: providerRepo}
}

// ProviderProfileInput — редактируемые поля анкеты.
type ProviderProfileInput struct {
	BusinessName    string
	Description     string
	ServiceTypes    datatypes.JSON
	HourlyRate      float64
	ExperienceYears int64
	Location        datatypes.JSON
}

// CreateProfile создаёт анкету провайдера для аккаунта. Новая анкета
// не проверена: бронирования к ней недоступны до одобрения.
func (s *ProviderService) CreateProfile(
	ctx context.Context,
	userID uuid.UUID,
	role model.Role,
	in ProviderProfileInput,
) (*model.Provider, error) {
	if role != model.RoleServiceProvider {
		return nil, status.Error(codes.PermissionDenied, "only service providers can create a profile")
	}
	if in.HourlyRate < 0 {
		return nil, status.Error(codes.InvalidArgument, "hourly rate must not be negative")
	}

	if _, err := s.providerRepo.GetByUserID(ctx, userID); err == nil {
		return nil, status.Error(codes.AlreadyExists, "provider profile already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, status.Errorf(codes.Internal, "lookup provider: %v", err)
	}

	p := &model.Provider{
		UserID:             userID,
		BusinessName:       in.BusinessName,
		Description:        in.Description,
		ServiceTypes:       in.ServiceTypes,
		HourlyRate:         in.HourlyRate,
		ExperienceYears:    in.ExperienceYears,
		Location:           in.Location,
		VerificationStatus: model.VerificationStatusPending,
	}
	if err := s.providerRepo.Create(ctx, p); err != nil {
		return nil, status.Errorf(codes.Internal, "create provider: %v", err)
	}
	return p, nil
}

// UpdateProfile обновляет анкету её владельца. Смена ставки не влияет
// на стоимость уже созданных бронирований.
func (s *ProviderService) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	in ProviderProfileInput,
) (*model.Provider, error) {
	p, err := s.providerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "provider profile not found")
		}
		return nil, status.Errorf(codes.Internal, "lookup provider: %v", err)
	}
	if in.HourlyRate < 0 {
		return nil, status.Error(codes.InvalidArgument, "hourly rate must not be negative")
	}

	p.BusinessName = in.BusinessName
	p.Description = in.Description
	p.ServiceTypes = in.ServiceTypes
	p.HourlyRate = in.HourlyRate
	p.ExperienceYears = in.ExperienceYears
	p.Location = in.Location

	if err := s.providerRepo.Update(ctx, p); err != nil {
		return nil, status.Errorf(codes.Internal, "update provider: %v", err)
	}
	return p, nil
}

// Get возвращает анкету провайдера по ID.
func (s *ProviderService) Get(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	p, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "service provider not found")
		}
		return nil, status.Errorf(codes.Internal, "load provider: %v", err)
	}
	return p, nil
}

// List — страница проверенных провайдеров, лучший рейтинг сверху.
func (s *ProviderService) List(
	ctx context.Context,
	page, pageSize int,
) (booking.Page[model.Provider], error) {
	var empty booking.Page[model.Provider]

	page, pageSize, offset := booking.NormalizePage(page, pageSize)

	items, total, err := s.providerRepo.ListVerified(ctx, pageSize, offset)
	if err != nil {
		return empty, status.Errorf(codes.Internal, "list providers: %v", err)
	}
	return booking.NewPage(items, int(total), page, pageSize), nil
}
