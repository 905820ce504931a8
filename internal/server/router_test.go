package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/auth"
	"github.com/Anugrah-Ajith/service-connect/internal/chat"
	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/mq"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
	"github.com/Anugrah-Ajith/service-connect/internal/service"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY, email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '', first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '', phone TEXT, role TEXT NOT NULL,
			is_verified BOOLEAN NOT NULL DEFAULT 0, created_at DATETIME, updated_at DATETIME
		);`,
		`CREATE TABLE providers (
			id TEXT PRIMARY KEY, user_id TEXT NOT NULL UNIQUE,
			business_name TEXT, description TEXT, service_types TEXT,
			hourly_rate REAL NOT NULL DEFAULT 0, experience_years INTEGER NOT NULL DEFAULT 0,
			location TEXT, is_verified BOOLEAN NOT NULL DEFAULT 0,
			verification_status TEXT NOT NULL DEFAULT 'pending',
			rating REAL NOT NULL DEFAULT 0, total_reviews INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME, updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY, customer_id TEXT NOT NULL, provider_id TEXT NOT NULL,
			service_type TEXT NOT NULL, description TEXT NOT NULL, location TEXT,
			scheduled_date DATE NOT NULL, scheduled_time TEXT NOT NULL,
			estimated_hours REAL NOT NULL, is_emergency BOOLEAN NOT NULL DEFAULT 0,
			total_amount REAL NOT NULL DEFAULT 0, status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending', created_at DATETIME, updated_at DATETIME
		);`,
		`CREATE TABLE messages (
			id TEXT PRIMARY KEY, booking_id TEXT NOT NULL, sender_id TEXT NOT NULL,
			content TEXT NOT NULL, created_at DATETIME
		);`,
		`CREATE TABLE reviews (
			id TEXT PRIMARY KEY, booking_id TEXT NOT NULL UNIQUE, customer_id TEXT NOT NULL,
			provider_id TEXT NOT NULL, rating INTEGER NOT NULL, comment TEXT,
			created_at DATETIME, updated_at DATETIME
		);`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY, event_type TEXT NOT NULL, created_at DATETIME,
			user_id TEXT, booking_id TEXT, details TEXT
		);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	userRepo := repository.NewGormUserRepository(db)
	providerRepo := repository.NewGormProviderRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	eventRepo := repository.NewGormEventRepository(db)

	tokens := auth.NewManager("test-secret", time.Hour)
	hub := chat.NewHub()

	bookingSvc := service.NewBookingService(bookingRepo, providerRepo, eventRepo, mq.NopPublisher{})

	h := &Handlers{
		Identity:  service.NewIdentityService(userRepo, tokens),
		Providers: service.NewProviderService(providerRepo),
		Bookings:  bookingSvc,
		Chat:      service.NewChatService(bookingRepo, providerRepo, messageRepo, hub),
		Payments:  service.NewPaymentService(bookingSvc, bookingRepo, nil, nil),
		Reviews:   service.NewReviewService(reviewRepo, bookingRepo, providerRepo),
	}
	return NewRouter(h, tokens), db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func registerAccount(t *testing.T, router *gin.Engine, email, role string) (token, userID string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":     email,
		"password":  "secret123",
		"firstName": "Test",
		"lastName":  "Account",
		"role":      role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	user := body["user"].(map[string]any)
	return body["token"].(string), user["ID"].(string)
}

func TestRouter_BookingFlow(t *testing.T) {
	router, db := newTestServer(t)

	custToken, _ := registerAccount(t, router, "cust@example.com", "customer")
	provToken, _ := registerAccount(t, router, "prov@example.com", "service_provider")
	strangerToken, _ := registerAccount(t, router, "stranger@example.com", "customer")

	// Provider fills out the profile.
	w := doJSON(t, router, http.MethodPost, "/api/providers", provToken, gin.H{
		"businessName": "Test Plumbing",
		"serviceTypes": []string{"plumber"},
		"hourlyRate":   40,
		"location":     gin.H{"city": "Springfield"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	providerID := decode(t, w)["ID"].(string)

	// Unverified profiles are not bookable and not listed.
	w = doJSON(t, router, http.MethodGet, "/api/providers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 0, decode(t, w)["total"])

	bookingReq := gin.H{
		"serviceProviderId": providerID,
		"serviceType":       "plumber",
		"description":       "leaking pipe",
		"location":          gin.H{"address": "742 Evergreen Terrace"},
		"scheduledDate":     "2026-09-01",
		"scheduledTime":     "14:30",
		"estimatedHours":    2,
		"isEmergency":       true,
	}
	w = doJSON(t, router, http.MethodPost, "/api/bookings", custToken, bookingReq)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// Manual verification happens out of band.
	require.NoError(t, db.Model(&model.Provider{}).
		Where("id = ?", providerID).
		Updates(map[string]any{"is_verified": true, "verification_status": "approved"}).Error)

	w = doJSON(t, router, http.MethodPost, "/api/bookings", custToken, bookingReq)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode(t, w)
	bookingID := booking["ID"].(string)
	require.EqualValues(t, 120, booking["TotalAmount"]) // 40 * 2 * 1.5
	require.EqualValues(t, "pending", booking["Status"])

	// Providers may not create bookings at all.
	w = doJSON(t, router, http.MethodPost, "/api/bookings", provToken, bookingReq)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Only participants see the booking.
	w = doJSON(t, router, http.MethodGet, "/api/bookings/"+bookingID, strangerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/bookings/"+bookingID, "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Provider drives the lifecycle.
	for _, next := range []string{"confirmed", "in_progress", "completed"} {
		w = doJSON(t, router, http.MethodPatch, "/api/bookings/"+bookingID+"/status", provToken, gin.H{"status": next})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.EqualValues(t, next, decode(t, w)["Status"])
	}

	// The customer cannot push the machine.
	w = doJSON(t, router, http.MethodPatch, "/api/bookings/"+bookingID+"/status", custToken, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Review after completion updates the provider aggregates.
	w = doJSON(t, router, http.MethodPost, "/api/reviews", custToken, gin.H{
		"bookingId": bookingID,
		"rating":    5,
		"comment":   "fast and tidy",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/providers/"+providerID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	prov := decode(t, w)
	require.EqualValues(t, 5, prov["Rating"])
	require.EqualValues(t, 1, prov["TotalReviews"])
}

func TestRouter_ChatEndpoints(t *testing.T) {
	router, db := newTestServer(t)

	custToken, _ := registerAccount(t, router, "cust@example.com", "customer")
	provToken, _ := registerAccount(t, router, "prov@example.com", "service_provider")
	strangerToken, _ := registerAccount(t, router, "stranger@example.com", "customer")

	w := doJSON(t, router, http.MethodPost, "/api/providers", provToken, gin.H{
		"hourlyRate": 40,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	providerID := decode(t, w)["ID"].(string)
	require.NoError(t, db.Model(&model.Provider{}).
		Where("id = ?", providerID).
		Updates(map[string]any{"is_verified": true, "verification_status": "approved"}).Error)

	w = doJSON(t, router, http.MethodPost, "/api/bookings", custToken, gin.H{
		"serviceProviderId": providerID,
		"serviceType":       "plumber",
		"description":       "leaking pipe",
		"location":          gin.H{"address": "742 Evergreen Terrace"},
		"scheduledDate":     "2026-09-01",
		"scheduledTime":     "14:30",
		"estimatedHours":    2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := decode(t, w)["ID"].(string)

	chatPath := fmt.Sprintf("/api/chat/%s/messages", bookingID)

	w = doJSON(t, router, http.MethodPost, chatPath, custToken, gin.H{"content": "when can you come?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.EqualValues(t, "when can you come?", decode(t, w)["Content"])

	w = doJSON(t, router, http.MethodPost, chatPath, provToken, gin.H{"content": "tomorrow at noon"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A stranger's message is accepted on the wire but dropped.
	w = doJSON(t, router, http.MethodPost, chatPath, strangerToken, gin.H{"content": "let me in"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Empty(t, decode(t, w))

	w = doJSON(t, router, http.MethodGet, chatPath, custToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)
	require.EqualValues(t, "when can you come?", history[0]["Content"])
	require.EqualValues(t, "tomorrow at noon", history[1]["Content"])

	// History access is explicit.
	w = doJSON(t, router, http.MethodGet, chatPath, strangerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_PaymentsWithoutGateway(t *testing.T) {
	router, _ := newTestServer(t)

	custToken, _ := registerAccount(t, router, "cust@example.com", "customer")

	w := doJSON(t, router, http.MethodPost, "/api/payments/create-intent", custToken, gin.H{
		"bookingId": "00000000-0000-0000-0000-000000000001",
	})
	require.Equal(t, http.StatusServiceUnavailable, w.Code, w.Body.String())
}
