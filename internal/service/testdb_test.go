package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Anugrah-Ajith/service-connect/internal/model"
)

// newTestDB opens an in-memory sqlite database with a minimal
// sqlite-friendly schema for the service tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT,
			role TEXT NOT NULL,
			is_verified BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE providers (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			business_name TEXT,
			description TEXT,
			service_types TEXT,
			hourly_rate REAL NOT NULL DEFAULT 0,
			experience_years INTEGER NOT NULL DEFAULT 0,
			location TEXT,
			is_verified BOOLEAN NOT NULL DEFAULT 0,
			verification_status TEXT NOT NULL DEFAULT 'pending',
			rating REAL NOT NULL DEFAULT 0,
			total_reviews INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			provider_id TEXT NOT NULL,
			service_type TEXT NOT NULL,
			description TEXT NOT NULL,
			location TEXT,
			scheduled_date DATE NOT NULL,
			scheduled_time TEXT NOT NULL,
			estimated_hours REAL NOT NULL,
			is_emergency BOOLEAN NOT NULL DEFAULT 0,
			total_amount REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE messages (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL,
			sender_id TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME
		);`,
		`CREATE TABLE reviews (
			id TEXT PRIMARY KEY,
			booking_id TEXT NOT NULL UNIQUE,
			customer_id TEXT NOT NULL,
			provider_id TEXT NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			created_at DATETIME,
			user_id TEXT,
			booking_id TEXT,
			details TEXT
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()

	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Customer",
		Role:         model.RoleCustomer,
		IsVerified:   true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return u.ID
}

// seedProvider creates the provider account and its profile, returning
// both the account id and the provider profile id.
func seedProvider(t *testing.T, db *gorm.DB, email string, rate float64, verified bool) (userID, providerID uuid.UUID) {
	t.Helper()

	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Provider",
		Role:         model.RoleServiceProvider,
		IsVerified:   verified,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed provider user: %v", err)
	}

	p := &model.Provider{
		ID:           uuid.New(),
		UserID:       u.ID,
		BusinessName: "Test Plumbing",
		ServiceTypes: []byte(`["plumber"]`),
		HourlyRate:   rate,
		Location:     []byte(`{"city":"Springfield"}`),
		IsVerified:   verified,
	}
	if verified {
		p.VerificationStatus = model.VerificationStatusApproved
	} else {
		p.VerificationStatus = model.VerificationStatusPending
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed provider profile: %v", err)
	}
	return u.ID, p.ID
}
