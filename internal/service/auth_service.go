package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bharatmovers/booking-service/internal/auth"
	"github.com/bharatmovers/booking-service/internal/config"
	"github.com/bharatmovers/booking-service/internal/domain"
	"github.com/bharatmovers/booking-service/internal/repository"
	apperrors "github.com/bharatmovers/booking-service/pkg/util/errorutil"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// RegisterInput describes registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Password string
}

// AuthService coordinates registration and login flows. New accounts are
// always customers; role elevation is an admin operation.
type AuthService struct {
	actors     repository.ActorRepository
	redis      *redis.Client
	tokenMgr   *auth.TokenManager
	bcryptCost int
	cfg        config.AuthConfig
	logger     *zap.Logger
}

// NewAuthService builds the service. The redis client may be nil; login
// throttling is then disabled.
func NewAuthService(cfg config.AuthConfig, actors repository.ActorRepository, redisClient *redis.Client, logger *zap.Logger) *AuthService {
	return &AuthService{
		actors:     actors,
		redis:      redisClient,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		cfg:        cfg,
		logger:     logger,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a customer account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Actor, string, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	details := map[string]any{}
	if input.Name == "" {
		details["name"] = "required"
	}
	if !emailPattern.MatchString(input.Email) {
		details["email"] = "must be a valid email address"
	}
	if !phonePattern.MatchString(input.Phone) {
		details["phone"] = "must be a 10-digit phone number"
	}
	if reason := passwordPolicy(input.Password); reason != "" {
		details["password"] = reason
	}
	if len(details) > 0 {
		return nil, "", apperrors.NewValidationError("invalid registration payload", details)
	}

	if _, err := s.actors.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	actor := &domain.Actor{
		Name:               input.Name,
		Email:              input.Email,
		Phone:              input.Phone,
		Address:            input.Address,
		PasswordHash:       hash,
		Role:               domain.RoleCustomer,
		Active:             true,
		EmailNotifications: true,
		SMSNotifications:   true,
	}
	if err := s.actors.Create(ctx, actor); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokenMgr.GenerateToken(actor.ID, actor.Role)
	if err != nil {
		return nil, "", err
	}
	return actor, token, nil
}

// Login authenticates an actor of any role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Actor, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apperrors.NewValidationError("email and password required", nil)
	}
	if err := s.checkThrottle(ctx, email); err != nil {
		return nil, "", err
	}

	actor, err := s.actors.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.recordFailure(ctx, email)
			return nil, "", apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", err
	}
	if !actor.Active {
		return nil, "", apperrors.NewUnauthorized("account deactivated")
	}
	if err := auth.ComparePassword(actor.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return nil, "", apperrors.NewUnauthorized("invalid credentials")
	}

	s.clearFailures(ctx, email)
	token, _, err := s.tokenMgr.GenerateToken(actor.ID, actor.Role)
	if err != nil {
		return nil, "", err
	}
	return actor, token, nil
}

func passwordPolicy(password string) string {
	if len(password) < 8 {
		return "must be at least 8 characters"
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasUpper {
		return "must contain an uppercase letter"
	}
	if !hasDigit {
		return "must contain a digit"
	}
	return ""
}

func (s *AuthService) throttleKey(email string) string {
	return fmt.Sprintf("login_failures:%s", email)
}

func (s *AuthService) checkThrottle(ctx context.Context, email string) error {
	if s.redis == nil || s.cfg.LoginAttemptLimit <= 0 {
		return nil
	}
	count, err := s.redis.Get(ctx, s.throttleKey(email)).Int()
	if err != nil && err != redis.Nil {
		s.logger.Warn("login throttle check failed", zap.Error(err))
		return nil
	}
	if count >= s.cfg.LoginAttemptLimit {
		return apperrors.NewDomainError("TOO_MANY_ATTEMPTS", "too many failed logins, try again later", 429, nil)
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	key := s.throttleKey(email)
	if err := s.redis.Incr(ctx, key).Err(); err != nil {
		s.logger.Warn("login throttle incr failed", zap.Error(err))
		return
	}
	_ = s.redis.Expire(ctx, key, s.cfg.LoginAttemptWindow()).Err()
}

func (s *AuthService) clearFailures(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, s.throttleKey(email)).Err()
}
