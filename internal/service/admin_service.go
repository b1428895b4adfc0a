package service

import (
	"context"

	"github.com/soldesk/ticket-service/internal/auth"
	"github.com/soldesk/ticket-service/internal/config"
	"github.com/soldesk/ticket-service/internal/domain"
	"github.com/soldesk/ticket-service/internal/repository"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// AdminService covers administrative user management.
type AdminService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAdminService constructs the service.
func NewAdminService(cfg config.AuthConfig, users repository.UserRepository) *AdminService {
	return &AdminService{users: users, bcryptCost: cfg.BcryptCost}
}

// CreateUserInput is the already-validated user creation payload.
type CreateUserInput struct {
	AlfNum   string
	Names    string
	Surnames string
	Email    string
	DNI      *string
	Phone    *string
	RoleID   domain.Role
	Active   bool
	Password string
}

// CreateUser registers a user or technician account.
func (s *AdminService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		AlfNum:       input.AlfNum,
		Names:        input.Names,
		Surnames:     input.Surnames,
		Email:        input.Email,
		DNI:          input.DNI,
		Phone:        input.Phone,
		RoleID:       input.RoleID,
		Active:       input.Active,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
