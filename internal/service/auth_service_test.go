package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

type stubUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*models.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.nextID++
	user.ID = s.nextID
	user.Status = models.UserStatusActive
	user.CreatedAt = time.Now()
	s.users[user.Email] = user
	return user, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubUserRepo) GetByRememberToken(ctx context.Context, token string) (*models.User, error) {
	for _, user := range s.users {
		if user.RememberToken == token && user.TokenExpiry != nil && user.TokenExpiry.After(time.Now()) {
			return user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := s.users[email]
	return ok, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	return nil
}

func (s *stubUserRepo) SetRememberToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	for _, user := range s.users {
		if user.ID == id {
			user.RememberToken = token
			user.TokenExpiry = &expiry
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func authTestConfig() *config.Config {
	cfg := testConfig()
	cfg.Session = config.SessionConfig{RememberAge: 30 * 24 * time.Hour}
	return cfg
}

func validRegisterRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:            "Amina Hassan",
		Email:           "amina@traders.co.tz",
		Phone:           "+255712345678",
		Country:         "Tanzania",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Terms:           true,
	}
}

func TestRegisterClassifiesRoleAndHashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	events := &stubPublisher{}
	svc := NewAuthService(repo, &stubMailer{}, events, &stubActivity{}, authTestConfig())

	user, err := svc.Register(context.Background(), validRegisterRequest(), "127.0.0.1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if user.Role != models.RoleBusiness {
		t.Errorf("Expected business role for .co. domain, got %s", user.Role)
	}
	if user.PasswordHash == "secret123" {
		t.Error("Expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("Expected stored hash to verify: %v", err)
	}
	if events.userEvents != 1 {
		t.Errorf("Expected 1 registration event, got %d", events.userEvents)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMailer{}, &stubPublisher{}, &stubActivity{}, authTestConfig())

	if _, err := svc.Register(context.Background(), validRegisterRequest(), ""); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	_, err := svc.Register(context.Background(), validRegisterRequest(), "")
	if err != ErrEmailTaken {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterAccumulatesValidationErrors(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), &stubMailer{}, &stubPublisher{}, &stubActivity{}, authTestConfig())

	req := validRegisterRequest()
	req.Phone = "12345"
	req.ConfirmPassword = "different"
	req.Terms = false

	_, err := svc.Register(context.Background(), req, "")
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	for _, want := range []string{
		"Invalid phone number format",
		"Passwords do not match",
		"You must agree to the terms and conditions",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %q", want, err.Error())
		}
	}
}

func TestLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &stubMailer{}, &stubPublisher{}, &stubActivity{}, authTestConfig())

	if _, err := svc.Register(context.Background(), validRegisterRequest(), ""); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		user, token, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "amina@traders.co.tz",
			Password: "secret123",
		}, "127.0.0.1")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if user.Email != "amina@traders.co.tz" {
			t.Errorf("Unexpected user %q", user.Email)
		}
		if token != "" {
			t.Error("Expected no remember token without remember flag")
		}
	})

	t.Run("remember issues token", func(t *testing.T) {
		_, token, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "amina@traders.co.tz",
			Password: "secret123",
			Remember: true,
		}, "127.0.0.1")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(token) != 64 {
			t.Errorf("Expected 64-char hex token, got %d chars", len(token))
		}

		user, err := svc.ResolveRememberToken(context.Background(), token)
		if err != nil {
			t.Fatalf("Expected token to resolve: %v", err)
		}
		if user.Email != "amina@traders.co.tz" {
			t.Errorf("Token resolved to wrong user %q", user.Email)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		}, "")
		if err != ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "amina@traders.co.tz",
			Password: "wrong",
		}, "")
		if err != ErrInvalidPassword {
			t.Errorf("Expected ErrInvalidPassword, got %v", err)
		}
	})

	t.Run("inactive account", func(t *testing.T) {
		repo.users["amina@traders.co.tz"].Status = models.UserStatusInactive
		defer func() { repo.users["amina@traders.co.tz"].Status = models.UserStatusActive }()

		_, _, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "amina@traders.co.tz",
			Password: "secret123",
		}, "")
		if err != ErrAccountInactive {
			t.Errorf("Expected ErrAccountInactive, got %v", err)
		}
	})
}
