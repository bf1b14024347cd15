package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/apperrors"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/metrics"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

// Login failure messages. Missing accounts and wrong passwords are
// reported distinctly, as the storefront always has. This discloses which
// emails are registered; kept deliberately for parity, revisit if the
// platform's threat model changes.
var (
	ErrUserNotFound    = errors.New("User not found")
	ErrInvalidPassword = errors.New("Invalid password")
	ErrAccountInactive = errors.New("Account is not active")
	ErrEmailTaken      = errors.New("Email already registered")
)

// AuthService handles registration, login and remember tokens.
type AuthService struct {
	users    UserRepository
	mailer   Mailer
	events   EventPublisher
	activity ActivityRecorder
	config   *config.Config
	logger   *logging.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(
	users UserRepository,
	mailer Mailer,
	events EventPublisher,
	activity ActivityRecorder,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:    users,
		mailer:   mailer,
		events:   events,
		activity: activity,
		config:   cfg,
		logger:   logging.NewLogger("auth-service"),
	}
}

// Register validates and creates a new account. The role is inferred from
// the email domain by the classifier heuristic. Duplicate emails are
// rejected without creating a second row.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest, ip string) (*models.User, error) {
	req.Name = SanitizeInput(req.Name)
	req.Email = SanitizeInput(req.Email)
	req.Phone = SanitizeInput(req.Phone)
	req.Country = SanitizeInput(req.Country)

	if err := ValidateRegisterRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Country:      req.Country,
		PasswordHash: string(hash),
		Role:         ClassifyRole(req.Email),
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegistered.Inc()

	s.activity.Record(ctx, user.ID, "registration", "New user registered", ip)

	if s.config.Features.EnableOrderEvents {
		if err := s.events.PublishUserRegistered(ctx, user); err != nil {
			s.logger.Error("Failed to publish registration event", logging.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			})
		}
	}

	go s.sendWelcomeMail(context.Background(), user)

	return user, nil
}

// Login verifies credentials and returns the account. When remember is
// set, a persistent token is issued and stored with a 30-day expiry.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest, ip string) (*models.User, string, error) {
	req.Email = SanitizeInput(req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, "", apperrors.NewValidationError("credentials", "Please fill in all fields")
	}
	if !ValidEmail(req.Email) {
		return nil, "", apperrors.NewValidationError("email", "Invalid email address")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", err
	}

	if user.Status != models.UserStatusActive {
		return nil, "", ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidPassword
	}

	var rememberToken string
	if req.Remember {
		rememberToken, err = generateToken()
		if err != nil {
			return nil, "", err
		}
		expiry := time.Now().Add(s.config.Session.RememberAge)
		if err := s.users.SetRememberToken(ctx, user.ID, rememberToken, expiry); err != nil {
			s.logger.Error("Failed to store remember token", logging.Fields{
				"user_id": user.ID,
				"error":   err.Error(),
			})
			rememberToken = ""
		}
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Error("Failed to update last login", logging.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}

	s.activity.Record(ctx, user.ID, "login", "User logged in successfully", ip)

	return user, rememberToken, nil
}

// ResolveRememberToken restores an identity from a persistent login cookie.
func (s *AuthService) ResolveRememberToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.ErrNotFound
	}
	return s.users.GetByRememberToken(ctx, token)
}

// GetUser retrieves an account by id, used to prefill checkout contact
// details for authenticated callers.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) sendWelcomeMail(ctx context.Context, user *models.User) {
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for registering with %s!\nYour account has been successfully created.\n\nYou can now access all features of our platform.\n\nBest regards,\n%s Team",
		user.Name, s.config.Site.Name, s.config.Site.Name)

	if err := s.mailer.Send(ctx, user.Email, "Welcome to "+s.config.Site.Name, body); err != nil {
		s.logger.Error("Failed to send welcome mail", logging.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}
}

// generateToken returns 32 random bytes hex-encoded, the remember-token
// format stored in the users table.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
