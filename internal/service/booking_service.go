package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/booking"
	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/mq"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
)

// BookingService — авторитетный владелец состояния бронирований:
// создание, машина переходов статуса и отметка оплаты.
type BookingService struct {
	bookingRepo  repository.BookingRepository
	providerRepo repository.ProviderRepository
	eventRepo    repository.EventRepository
	events       mq.Publisher
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	providerRepo repository.ProviderRepository,
	eventRepo repository.EventRepository,
	events mq.Publisher,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		eventRepo:    eventRepo,
		events:       events,
	}
}

// CreateBookingInput — параметры создания бронирования.
type CreateBookingInput struct {
	ProviderID     uuid.UUID
	ServiceType    string
	Description    string
	Location       datatypes.JSON
	ScheduledDate  time.Time
	ScheduledTime  string
	EstimatedHours float64
	IsEmergency    bool
}

// Create создаёт бронирование в статусе pending. Стоимость фиксируется
// по текущей ставке провайдера и дальше не пересчитывается.
func (s *BookingService) Create(
	ctx context.Context,
	customerID uuid.UUID,
	role model.Role,
	in CreateBookingInput,
) (*model.Booking, error) {
	if role != model.RoleCustomer {
		return nil, status.Error(codes.PermissionDenied, "only customers can create bookings")
	}
	if in.ProviderID == uuid.Nil || in.ServiceType == "" || in.Description == "" ||
		len(in.Location) == 0 || in.ScheduledDate.IsZero() || in.ScheduledTime == "" {
		return nil, status.Error(codes.InvalidArgument, "missing required fields")
	}
	if _, err := booking.ParseScheduledTime(in.ScheduledTime); err != nil {
		return nil, status.Error(codes.InvalidArgument, "scheduled time must be in HH:MM format")
	}

	provider, err := s.providerRepo.GetByID(ctx, in.ProviderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "service provider not found")
		}
		return nil, status.Errorf(codes.Internal, "lookup provider: %v", err)
	}
	if !provider.IsVerified {
		return nil, status.Error(codes.FailedPrecondition, "service provider is not verified")
	}

	total, err := booking.Quote(provider.HourlyRate, in.EstimatedHours, in.IsEmergency)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	b := &model.Booking{
		CustomerID:     customerID,
		ProviderID:     provider.ID,
		ServiceType:    in.ServiceType,
		Description:    in.Description,
		Location:       in.Location,
		ScheduledDate:  datatypes.Date(in.ScheduledDate),
		ScheduledTime:  in.ScheduledTime,
		EstimatedHours: in.EstimatedHours,
		IsEmergency:    in.IsEmergency,
		TotalAmount:    total,
		Status:         model.BookingStatusPending,
		PaymentStatus:  model.PaymentStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, status.Errorf(codes.Internal, "create booking: %v", err)
	}

	// аудит и события — best-effort, созданное бронирование они не откатывают
	when, _ := booking.FormatScheduleForUser(in.ScheduledDate, in.ScheduledTime, nil)
	scheduledAt, _ := booking.CombineSchedule(in.ScheduledDate, in.ScheduledTime, nil)
	s.audit(ctx, model.EventTypeBookingCreated, customerID, b.ID,
		fmt.Sprintf("booking created for %s, total %.2f", when, total))
	_ = s.events.PublishJSON(ctx, "booking.created", map[string]any{
		"booking_id":   b.ID,
		"customer_id":  b.CustomerID,
		"provider_id":  b.ProviderID,
		"total":        b.TotalAmount,
		"scheduled_at": scheduledAt,
	})

	created, err := s.bookingRepo.GetByIDPreloaded(ctx, b.ID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "load booking: %v", err)
	}
	return created, nil
}

// Get возвращает бронирование участнику; остальным — PermissionDenied.
func (s *BookingService) Get(ctx context.Context, id, actorID uuid.UUID) (*model.Booking, error) {
	b, err := s.bookingRepo.GetByIDPreloaded(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "booking not found")
		}
		return nil, status.Errorf(codes.Internal, "load booking: %v", err)
	}

	pair, err := s.ParticipantPair(ctx, b)
	if err != nil {
		return nil, err
	}
	if !pair.Contains(actorID) {
		return nil, status.Error(codes.PermissionDenied, "not a participant of this booking")
	}
	return b, nil
}

// ListForUser — страница бронирований текущего пользователя: клиент видит
// свои, провайдер — бронирования своего профиля. Новые сверху.
func (s *BookingService) ListForUser(
	ctx context.Context,
	actorID uuid.UUID,
	role model.Role,
	page, pageSize int,
) (booking.Page[model.Booking], error) {
	var empty booking.Page[model.Booking]

	page, pageSize, offset := booking.NormalizePage(page, pageSize)

	var (
		items []model.Booking
		total int64
		err   error
	)
	switch role {
	case model.RoleCustomer:
		items, total, err = s.bookingRepo.ListByCustomer(ctx, actorID, pageSize, offset)
	case model.RoleServiceProvider:
		var provider *model.Provider
		provider, err = s.providerRepo.GetByUserID(ctx, actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return emptyBookingPage(page, pageSize), nil
			}
			return empty, status.Errorf(codes.Internal, "lookup provider: %v", err)
		}
		items, total, err = s.bookingRepo.ListByProvider(ctx, provider.ID, pageSize, offset)
	default:
		return empty, status.Error(codes.PermissionDenied, "unknown role")
	}
	if err != nil {
		return empty, status.Errorf(codes.Internal, "list bookings: %v", err)
	}

	return booking.NewPage(items, int(total), page, pageSize), nil
}

func emptyBookingPage(page, pageSize int) booking.Page[model.Booking] {
	return booking.NewPage([]model.Booking{}, 0, page, pageSize)
}

// TransitionStatus проверяет переход по таблице машины статусов и сохраняет
// новый статус. Любое нарушение таблицы или прав актора — PermissionDenied,
// чтобы не раскрывать лишнего. Отмена не запускает возврат средств:
// refund — отдельная ручная операция платёжного контура.
func (s *BookingService) TransitionStatus(
	ctx context.Context,
	id uuid.UUID,
	to model.BookingStatus,
	actorID uuid.UUID,
	role model.Role,
) (*model.Booking, error) {
	if !model.ValidBookingStatus(to) {
		return nil, status.Error(codes.InvalidArgument, "unknown booking status")
	}

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "booking not found")
		}
		return nil, status.Errorf(codes.Internal, "load booking: %v", err)
	}

	pair, err := s.ParticipantPair(ctx, b)
	if err != nil {
		return nil, err
	}

	actor := booking.Actor{
		Role:       role,
		IsCustomer: role == model.RoleCustomer && actorID == pair.CustomerID,
		IsProvider: role == model.RoleServiceProvider && actorID == pair.ProviderUserID,
	}
	if err := booking.ValidateTransition(b.Status, to, actor); err != nil {
		return nil, status.Error(codes.PermissionDenied, "unauthorized or invalid status update")
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, status.Errorf(codes.Internal, "update status: %v", err)
	}

	s.audit(ctx, model.EventTypeBookingStatusChanged, actorID, id,
		fmt.Sprintf("%s -> %s", b.Status, to))
	_ = s.events.PublishJSON(ctx, "booking.status_changed", map[string]any{
		"booking_id": id,
		"from":       b.Status,
		"to":         to,
	})

	updated, err := s.bookingRepo.GetByIDPreloaded(ctx, id)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "load booking: %v", err)
	}
	return updated, nil
}

// MarkPaid отмечает бронирование оплаченным. Идемпотентна: повторный вызов
// по уже оплаченному бронированию — no-op.
func (s *BookingService) MarkPaid(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "booking not found")
		}
		return nil, status.Errorf(codes.Internal, "load booking: %v", err)
	}

	if b.PaymentStatus == model.PaymentStatusPaid {
		return b, nil
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, id, model.PaymentStatusPaid); err != nil {
		return nil, status.Errorf(codes.Internal, "update payment status: %v", err)
	}

	s.audit(ctx, model.EventTypeBookingPaid, uuid.Nil, id, "payment confirmed")
	_ = s.events.PublishJSON(ctx, "booking.paid", map[string]any{
		"booking_id": id,
		"amount":     b.TotalAmount,
	})

	return s.bookingRepo.GetByID(ctx, id)
}

// ParticipantPair возвращает пару участников бронирования: клиента и
// пользователя-владельца провайдера.
func (s *BookingService) ParticipantPair(
	ctx context.Context,
	b *model.Booking,
) (booking.Pair, error) {
	provider, err := s.providerRepo.GetByID(ctx, b.ProviderID)
	if err != nil {
		return booking.Pair{}, status.Errorf(codes.Internal, "lookup provider: %v", err)
	}
	return booking.Pair{
		CustomerID:     b.CustomerID,
		ProviderUserID: provider.UserID,
	}, nil
}

func (s *BookingService) audit(
	ctx context.Context,
	typ model.EventType,
	userID, bookingID uuid.UUID,
	details string,
) {
	ev := &model.Event{
		EventType: typ,
		BookingID: &bookingID,
		Details:   details,
	}
	if userID != uuid.Nil {
		ev.UserID = &userID
	}
	_ = s.eventRepo.Append(ctx, ev)
}
