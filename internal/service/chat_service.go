package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/booking"
	"github.com/Anugrah-Ajith/service-connect/internal/chat"
	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
)

// ChatService — обмен сообщениями между двумя участниками бронирования
// с durable-историей. Неавторизованные subscribe/publish глушатся молча:
// отказ не должен подтверждать само существование бронирования.
type ChatService struct {
	bookingRepo  repository.BookingRepository
	providerRepo repository.ProviderRepository
	messageRepo  repository.MessageRepository
	hub          *chat.Hub

	// Порядок доставки равен порядку записи: запись и рассылка одного
	// бронирования идут под общим замком.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewChatService(
	bookingRepo repository.BookingRepository,
	providerRepo repository.ProviderRepository,
	messageRepo repository.MessageRepository,
	hub *chat.Hub,
) *ChatService {
	return &ChatService{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		messageRepo:  messageRepo,
		hub:          hub,
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

// Subscribe подключает сессию к каналу бронирования. Не-участник получает
// отвязанную сессию, в которую никогда ничего не придёт, и nil-ошибку —
// снаружи это неотличимо от успешной подписки.
func (s *ChatService) Subscribe(
	ctx context.Context,
	bookingID, userID uuid.UUID,
) (*chat.Session, error) {
	ok, err := s.isParticipant(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return chat.NewDetachedSession(bookingID), nil
	}
	return s.hub.Subscribe(bookingID), nil
}

// Publish записывает сообщение и раздаёт его всем сессиям канала, включая
// другие сессии отправителя. Сообщение не-участника молча отбрасывается:
// ничего не пишется и не рассылается, ошибки нет. Ошибка записи прерывает
// операцию до любой рассылки.
func (s *ChatService) Publish(
	ctx context.Context,
	bookingID, senderID uuid.UUID,
	content string,
) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, status.Error(codes.InvalidArgument, "message content must not be empty")
	}

	ok, err := s.isParticipant(ctx, bookingID, senderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	lock := s.bookingLock(bookingID)
	lock.Lock()
	defer lock.Unlock()

	msg := &model.Message{
		BookingID: bookingID,
		SenderID:  senderID,
		Content:   content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, status.Errorf(codes.Internal, "persist message: %v", err)
	}

	s.hub.Broadcast(bookingID, *msg)

	return msg, nil
}

// History возвращает всю историю бронирования по возрастанию времени.
// Здесь, в отличие от subscribe/publish, отказ явный: PermissionDenied.
func (s *ChatService) History(
	ctx context.Context,
	bookingID, userID uuid.UUID,
) ([]model.Message, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.Error(codes.NotFound, "booking not found")
		}
		return nil, status.Errorf(codes.Internal, "load booking: %v", err)
	}

	pair, err := s.participantPair(ctx, b)
	if err != nil {
		return nil, err
	}
	if !pair.Contains(userID) {
		return nil, status.Error(codes.PermissionDenied, "not a participant of this booking")
	}

	messages, err := s.messageRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list messages: %v", err)
	}
	return messages, nil
}

func (s *ChatService) isParticipant(
	ctx context.Context,
	bookingID, userID uuid.UUID,
) (bool, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// несуществующее бронирование неотличимо от чужого
			return false, nil
		}
		return false, status.Errorf(codes.Internal, "load booking: %v", err)
	}

	pair, err := s.participantPair(ctx, b)
	if err != nil {
		return false, err
	}
	return pair.Contains(userID), nil
}

func (s *ChatService) participantPair(ctx context.Context, b *model.Booking) (booking.Pair, error) {
	provider, err := s.providerRepo.GetByID(ctx, b.ProviderID)
	if err != nil {
		return booking.Pair{}, status.Errorf(codes.Internal, "lookup provider: %v", err)
	}
	return booking.Pair{
		CustomerID:     b.CustomerID,
		ProviderUserID: provider.UserID,
	}, nil
}

func (s *ChatService) bookingLock(bookingID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[bookingID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[bookingID] = lock
	}
	return lock
}
