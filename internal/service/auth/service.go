package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/store"
)

// TokenPair is the access/refresh credential pair issued on login,
// registration, and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Name     string
	Phone    string
	Password string
}

// Service implements the authentication flows: credential validation,
// login, registration, token refresh, and logout with revocation.
type Service struct {
	users    store.UserStore
	jwt      JWTService
	hasher   PasswordHasher
	verifier PasswordVerifier
	revoker  TokenRevoker
	logger   *slog.Logger
}

// NewService creates an auth Service.
func NewService(users store.UserStore, jwt JWTService, hasher PasswordHasher, verifier PasswordVerifier, revoker TokenRevoker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:    users,
		jwt:      jwt,
		hasher:   hasher,
		verifier: verifier,
		revoker:  revoker,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// ValidateUser looks up an ACTIVE user by email or username and checks
// the password against the stored hash. Returns nil without error when
// the credentials do not match; it has no observable side effects.
func (s *Service) ValidateUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Status != domain.UserStatusActive {
		return nil, nil
	}
	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, nil
	}
	return user.Sanitized(), nil
}

// Login validates credentials and issues a token pair. All failure
// modes surface as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, identifier, password string) (*domain.User, *TokenPair, error) {
	user, err := s.ValidateUser(ctx, identifier, password)
	if err != nil {
		s.logger.Error("login lookup failed", "error", err)
		return nil, nil, fmt.Errorf("login failed: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Register creates a new account and issues a token pair. Duplicate
// email or username surfaces as the store's conflict error from the
// database constraint; nothing is written in that case.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, *TokenPair, error) {
	user, err := domain.NewUser(input.Username, input.Email, input.Name, input.Password)
	if err != nil {
		return nil, nil, err
	}
	user.Phone = input.Phone

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("registration conflict", "username", input.Username)
		} else {
			s.logger.Error("failed to create user", "error", err)
		}
		return nil, nil, err
	}

	pair, err := s.generateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user.Sanitized(), pair, nil
}

// Refresh validates a refresh token, rejects revoked or stale subjects,
// and issues a fresh token pair. All failure modes other than expiry
// surface as ErrInvalidRefreshToken.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrExpiredRefreshToken) {
			return nil, ErrExpiredRefreshToken
		}
		return nil, ErrInvalidRefreshToken
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("revocation list lookup failed", "error", err)
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		s.logger.Warn("refresh attempted with revoked token", "token_id", claims.ID)
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, ErrInvalidRefreshToken
	}

	return s.generateTokens(ctx, user)
}

// Logout revokes the presented refresh token for its remaining
// lifetime. An already-invalid token is treated as a successful logout.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("failed to revoke refresh token", "error", err, "token_id", claims.ID)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// generateTokens signs the access and refresh tokens for a user.
func (s *Service) generateTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
