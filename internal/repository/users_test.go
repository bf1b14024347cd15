package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

func TestCreateUserAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresUserRepository(db, logging.NewLogger("test"))

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	user, err := repo.Create(context.Background(), &models.User{
		Name:         "Amina Hassan",
		Email:        "amina@example.com",
		Phone:        "0712345678",
		Country:      "Tanzania",
		PasswordHash: "hashed",
		Role:         models.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if user.ID != 3 {
		t.Errorf("Expected user id 3, got %d", user.ID)
	}
	if user.Status != models.UserStatusActive {
		t.Errorf("Expected status active, got %s", user.Status)
	}
}

func TestEmailExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresUserRepository(db, logging.NewLogger("test"))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("amina@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "amina@example.com")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !exists {
		t.Error("Expected email to exist")
	}
}

func TestGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresUserRepository(db, logging.NewLogger("test"))

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetByEmailScansNullableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open sqlmock: %v", err)
	}
	defer db.Close()

	repo := NewPostgresUserRepository(db, logging.NewLogger("test"))

	lastLogin := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "country", "password", "user_type", "status",
		"remember_token", "token_expiry", "last_login", "created_at",
	}).AddRow(
		int64(5), "Amina Hassan", "amina@example.com", "0712345678", "Tanzania",
		"hashed", "farmer", "active", nil, nil, lastLogin, time.Now(),
	)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("amina@example.com").
		WillReturnRows(rows)

	user, err := repo.GetByEmail(context.Background(), "amina@example.com")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if user.RememberToken != "" {
		t.Errorf("Expected empty remember token, got %q", user.RememberToken)
	}
	if user.TokenExpiry != nil {
		t.Error("Expected nil token expiry")
	}
	if user.LastLogin == nil || !user.LastLogin.Equal(lastLogin) {
		t.Errorf("Expected last login %v, got %v", lastLogin, user.LastLogin)
	}
}
