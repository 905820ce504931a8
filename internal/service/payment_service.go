package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/payment"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
)

// PaymentService — тонкая прослойка над платёжным шлюзом: создаёт intent
// на сумму бронирования и по подтверждённому intent'у ведёт бронирование
// в paid через идемпотентный MarkPaid леджера.
type PaymentService struct {
	ledger      *BookingService
	bookingRepo repository.BookingRepository
	gateway     payment.Gateway
	lock        *payment.IntentLock // nil — замок отключён
}

func NewPaymentService(
	ledger *BookingService,
	bookingRepo repository.BookingRepository,
	gateway payment.Gateway,
	lock *payment.IntentLock,
) *PaymentService {
	return &PaymentService{
		ledger:      ledger,
		bookingRepo: bookingRepo,
		gateway:     gateway,
		lock:        lock,
	}
}

// IntentResponse — данные для завершения платежа на клиенте.
type IntentResponse struct {
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
}

// CreateIntent создаёт платёжный intent на полную сумму бронирования.
// Доступно только клиенту бронирования и только пока оно не оплачено.
func (s *PaymentService) CreateIntent(
	ctx context.Context,
	bookingID, actorID uuid.UUID,
) (*IntentResponse, error) {
	if s.gateway == nil {
		return nil, status.Error(codes.Unavailable, "payment gateway is not configured")
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "booking not found")
		}
		return nil, status.Errorf(codes.Internal, "load booking: %v", err)
	}
	if b.CustomerID != actorID {
		return nil, status.Error(codes.PermissionDenied, "not the customer of this booking")
	}
	if b.PaymentStatus == model.PaymentStatusPaid {
		return nil, status.Error(codes.FailedPrecondition, "booking already paid")
	}

	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx, bookingID)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "acquire intent lock: %v", err)
		}
		if !ok {
			return nil, status.Error(codes.Aborted, "payment intent already in progress")
		}
	}

	amountCents := int64(math.Round(b.TotalAmount * 100))
	intent, err := s.gateway.CreateIntent(ctx, bookingID, amountCents)
	if err != nil {
		if s.lock != nil {
			_ = s.lock.Release(ctx, bookingID)
		}
		return nil, status.Errorf(codes.Internal, "create payment intent: %v", err)
	}

	return &IntentResponse{
		ClientSecret: intent.ClientSecret,
		Amount:       b.TotalAmount,
	}, nil
}

// Confirm проверяет intent в шлюзе и отмечает бронирование оплаченным.
func (s *PaymentService) Confirm(
	ctx context.Context,
	bookingID uuid.UUID,
	intentID string,
) (*model.Booking, error) {
	if s.gateway == nil {
		return nil, status.Error(codes.Unavailable, "payment gateway is not configured")
	}
	if intentID == "" {
		return nil, status.Error(codes.InvalidArgument, "payment intent id is required")
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "retrieve payment intent: %v", err)
	}
	if !intent.Succeeded {
		return nil, status.Error(codes.FailedPrecondition, "payment not successful")
	}

	b, err := s.ledger.MarkPaid(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if s.lock != nil {
		_ = s.lock.Release(ctx, bookingID)
	}
	return b, nil
}
