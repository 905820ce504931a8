package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
)

func newReviewSvc(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewGormReviewRepository(db),
		repository.NewGormBookingRepository(db),
		repository.NewGormProviderRepository(db),
	)
}

// completedBooking seeds a booking already in the completed state.
func completedBooking(t *testing.T, db *gorm.DB, customerID, providerID uuid.UUID) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	bookings := newBookingSvc(db)
	b, err := bookings.Create(ctx, customerID, model.RoleCustomer, validInput(providerID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if err := db.Model(&model.Booking{}).Where("id = ?", b.ID).
		Update("status", model.BookingStatusCompleted).Error; err != nil {
		t.Fatalf("complete booking: %v", err)
	}
	return b.ID
}

func TestReviewService_Create_RecomputesProviderRating(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewSvc(db)
	ctx := context.Background()

	customerID := seedCustomer(t, db, "cust@example.com")
	otherID := seedCustomer(t, db, "other@example.com")
	_, providerID := seedProvider(t, db, "prov@example.com", 40, true)

	first := completedBooking(t, db, customerID, providerID)
	second := completedBooking(t, db, otherID, providerID)

	if _, err := svc.Create(ctx, customerID, model.RoleCustomer, first, 5, "great work"); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if _, err := svc.Create(ctx, otherID, model.RoleCustomer, second, 2, "late"); err != nil {
		t.Fatalf("second review: %v", err)
	}

	var p model.Provider
	if err := db.First(&p, "id = ?", providerID).Error; err != nil {
		t.Fatalf("load provider: %v", err)
	}
	if p.Rating != 3.5 || p.TotalReviews != 2 {
		t.Fatalf("rating = %v/%d, want 3.5/2", p.Rating, p.TotalReviews)
	}

	reviews, err := svc.ListByProvider(ctx, providerID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(reviews))
	}
}

func TestReviewService_Create_Guards(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewSvc(db)
	ctx := context.Background()

	customerID := seedCustomer(t, db, "cust@example.com")
	strangerID := seedCustomer(t, db, "stranger@example.com")
	_, providerID := seedProvider(t, db, "prov@example.com", 40, true)

	bookingID := completedBooking(t, db, customerID, providerID)

	t.Run("provider role rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, customerID, model.RoleServiceProvider, bookingID, 5, "")
		wantCode(t, err, codes.PermissionDenied)
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, r := range []int64{0, 6, -1} {
			_, err := svc.Create(ctx, customerID, model.RoleCustomer, bookingID, r, "")
			wantCode(t, err, codes.InvalidArgument)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.Create(ctx, customerID, model.RoleCustomer, uuid.New(), 5, "")
		wantCode(t, err, codes.NotFound)
	})

	t.Run("not the booking customer", func(t *testing.T) {
		_, err := svc.Create(ctx, strangerID, model.RoleCustomer, bookingID, 5, "")
		wantCode(t, err, codes.PermissionDenied)
	})

	t.Run("not completed yet", func(t *testing.T) {
		bookings := newBookingSvc(db)
		pending, err := bookings.Create(ctx, customerID, model.RoleCustomer, validInput(providerID))
		if err != nil {
			t.Fatalf("create booking: %v", err)
		}
		_, err = svc.Create(ctx, customerID, model.RoleCustomer, pending.ID, 5, "")
		wantCode(t, err, codes.FailedPrecondition)
	})

	t.Run("one review per booking", func(t *testing.T) {
		if _, err := svc.Create(ctx, customerID, model.RoleCustomer, bookingID, 4, ""); err != nil {
			t.Fatalf("first review: %v", err)
		}
		_, err := svc.Create(ctx, customerID, model.RoleCustomer, bookingID, 5, "")
		wantCode(t, err, codes.AlreadyExists)
	})
}
