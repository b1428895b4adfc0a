package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soldesk/ticket-service/internal/auth"
	"github.com/soldesk/ticket-service/internal/config"
	"github.com/soldesk/ticket-service/internal/domain"
	"github.com/soldesk/ticket-service/internal/repository"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// AuthService issues tokens for users identified by their alf_num code.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:  users,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, alfNum, password string) (string, time.Time, *domain.User, error) {
	user, err := s.users.GetByAlfNum(ctx, alfNum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	if !user.Active {
		return "", time.Time{}, nil, apperrors.NewForbidden("user inactive")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.AlfNum, user.RoleID)
	if err != nil {
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	return token, expiresAt, user, nil
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
