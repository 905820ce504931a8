package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
)

// ReviewService — отзывы о завершённых бронированиях и пересчёт среднего
// рейтинга провайдера.
type ReviewService struct {
	reviewRepo   repository.ReviewRepository
	bookingRepo  repository.BookingRepository
	providerRepo repository.ProviderRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	providerRepo repository.ProviderRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
	}
}

// Create создаёт отзыв клиента о завершённом бронировании и пересчитывает
// агрегаты провайдера. Не больше одного отзыва на бронирование.
func (s *ReviewService) Create(
	ctx context.Context,
	customerID uuid.UUID,
	role model.Role,
	bookingID uuid.UUID,
	rating int64,
	comment string,
) (*model.Review, error) {
	if role != model.RoleCustomer {
		return nil, status.Error(codes.PermissionDenied, "only customers can create reviews")
	}
	if rating < 1 || rating > 5 {
		return nil, status.Error(codes.InvalidArgument, "rating must be between 1 and 5")
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "booking not found")
		}
		return nil, status.Errorf(codes.Internal, "load booking: %v", err)
	}
	if b.CustomerID != customerID {
		return nil, status.Error(codes.PermissionDenied, "not the customer of this booking")
	}
	if b.Status != model.BookingStatusCompleted {
		return nil, status.Error(codes.FailedPrecondition, "can only review completed bookings")
	}

	exists, err := s.reviewRepo.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "lookup review: %v", err)
	}
	if exists {
		return nil, status.Error(codes.AlreadyExists, "review already exists for this booking")
	}

	review := &model.Review{
		BookingID:  bookingID,
		CustomerID: customerID,
		ProviderID: b.ProviderID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, status.Errorf(codes.Internal, "create review: %v", err)
	}

	// пересчёт среднего рейтинга провайдера
	avg, count, err := s.reviewRepo.AggregateForProvider(ctx, b.ProviderID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "aggregate reviews: %v", err)
	}
	if err := s.providerRepo.UpdateRating(ctx, b.ProviderID, avg, count); err != nil {
		return nil, status.Errorf(codes.Internal, "update provider rating: %v", err)
	}

	return review, nil
}

// ListByProvider возвращает все отзывы провайдера, новые сверху.
func (s *ReviewService) ListByProvider(
	ctx context.Context,
	providerID uuid.UUID,
) ([]model.Review, error) {
	reviews, err := s.reviewRepo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list reviews: %v", err)
	}
	return reviews, nil
}
