package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/chat"
	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
)

type chatEnv struct {
	db             *gorm.DB
	svc            *ChatService
	bookingID      uuid.UUID
	customerID     uuid.UUID
	providerUserID uuid.UUID
}

// newChatEnv wires a chat service over a booking with two participants.
func newChatEnv(t *testing.T) *chatEnv {
	t.Helper()

	db := newTestDB(t)
	ctx := context.Background()

	customerID := seedCustomer(t, db, "cust@example.com")
	providerUserID, providerID := seedProvider(t, db, "prov@example.com", 40, true)

	bookings := newBookingSvc(db)
	b, err := bookings.Create(ctx, customerID, model.RoleCustomer, validInput(providerID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	svc := NewChatService(
		repository.NewGormBookingRepository(db),
		repository.NewGormProviderRepository(db),
		repository.NewGormMessageRepository(db),
		chat.NewHub(),
	)

	return &chatEnv{
		db:             db,
		svc:            svc,
		bookingID:      b.ID,
		customerID:     customerID,
		providerUserID: providerUserID,
	}
}

func receiveOne(t *testing.T, s *chat.Session) model.Message {
	t.Helper()
	select {
	case msg := <-s.Messages():
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return model.Message{}
	}
}

func TestChatService_PublishEchoesToAllSessions(t *testing.T) {
	env := newChatEnv(t)
	ctx := context.Background()

	custSess, err := env.svc.Subscribe(ctx, env.bookingID, env.customerID)
	if err != nil {
		t.Fatalf("customer subscribe: %v", err)
	}
	defer custSess.Close()

	provSess, err := env.svc.Subscribe(ctx, env.bookingID, env.providerUserID)
	if err != nil {
		t.Fatalf("provider subscribe: %v", err)
	}
	defer provSess.Close()

	msg, err := env.svc.Publish(ctx, env.bookingID, env.customerID, "  hello  ")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if msg == nil || msg.Content != "hello" {
		t.Fatalf("published message: %+v", msg)
	}

	// Both participants receive the message, the sender's session included.
	for _, s := range []*chat.Session{custSess, provSess} {
		got := receiveOne(t, s)
		if got.ID != msg.ID || got.Content != "hello" {
			t.Fatalf("received %+v, want id %s", got, msg.ID)
		}
	}
}

func TestChatService_NonParticipantIsSilentlyIgnored(t *testing.T) {
	env := newChatEnv(t)
	ctx := context.Background()
	strangerID := seedCustomer(t, env.db, "stranger@example.com")

	// Subscribe succeeds but the session never receives anything.
	sess, err := env.svc.Subscribe(ctx, env.bookingID, strangerID)
	if err != nil {
		t.Fatalf("stranger subscribe: %v", err)
	}
	defer sess.Close()

	// Publish reports no error and persists nothing.
	msg, err := env.svc.Publish(ctx, env.bookingID, strangerID, "let me in")
	if err != nil {
		t.Fatalf("stranger publish: %v", err)
	}
	if msg != nil {
		t.Fatalf("stranger publish returned %+v, want nil", msg)
	}

	var count int64
	if err := env.db.Model(&model.Message{}).Count(&count).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if count != 0 {
		t.Fatalf("messages persisted = %d, want 0", count)
	}

	// A real participant's message does not reach the stranger either.
	if _, err := env.svc.Publish(ctx, env.bookingID, env.customerID, "private"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	select {
	case got := <-sess.Messages():
		t.Fatalf("stranger received %+v", got)
	default:
	}
}

func TestChatService_UnknownBookingLooksLikeForeignOne(t *testing.T) {
	env := newChatEnv(t)
	ctx := context.Background()

	// Same silent treatment for a booking that does not exist.
	msg, err := env.svc.Publish(ctx, uuid.New(), env.customerID, "anyone here?")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if msg != nil {
		t.Fatalf("got %+v, want nil", msg)
	}

	sess, err := env.svc.Subscribe(ctx, uuid.New(), env.customerID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	sess.Close()
}

func TestChatService_EmptyContentRejected(t *testing.T) {
	env := newChatEnv(t)
	ctx := context.Background()

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := env.svc.Publish(ctx, env.bookingID, env.customerID, content)
		wantCode(t, err, codes.InvalidArgument)
	}
}

func TestChatService_HistoryOrderAndAccess(t *testing.T) {
	env := newChatEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sender := env.customerID
		if i%2 == 1 {
			sender = env.providerUserID
		}
		if _, err := env.svc.Publish(ctx, env.bookingID, sender, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("publish #%d: %v", i, err)
		}
	}

	history, err := env.svc.History(ctx, env.bookingID, env.providerUserID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	for i, msg := range history {
		if msg.Content != fmt.Sprintf("message %d", i) {
			t.Fatalf("history[%d] = %q, want oldest first", i, msg.Content)
		}
	}

	// History is the explicit access path: strangers get a hard error.
	strangerID := seedCustomer(t, env.db, "stranger@example.com")
	_, err = env.svc.History(ctx, env.bookingID, strangerID)
	wantCode(t, err, codes.PermissionDenied)

	_, err = env.svc.History(ctx, uuid.New(), env.customerID)
	wantCode(t, err, codes.NotFound)
}
