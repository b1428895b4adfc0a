package dto

import (
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/soldesk/ticket-service/internal/domain"
	apperrors "github.com/soldesk/ticket-service/pkg/util/errorutil"
)

// CreateUserRequest is the administrative user-creation payload.
type CreateUserRequest struct {
	AlfNum    string  `json:"alf_num"`
	Nombres   string  `json:"nombres"`
	Apellidos string  `json:"apellidos"`
	Email     string  `json:"email"`
	DNI       *string `json:"dni"`
	Celular   *string `json:"celular"`
	IDRol     int     `json:"id_rol"`
	Activo    *bool   `json:"activo"`
	Password  string  `json:"password"`
}

// Validate checks the payload against the user schema.
func (r CreateUserRequest) Validate() error {
	details := map[string]any{}

	if utf8.RuneCountInString(r.AlfNum) != 6 {
		details["alf_num"] = "must be exactly 6 characters"
	}
	if n := utf8.RuneCountInString(r.Nombres); n < 2 || n > 45 {
		details["nombres"] = "must be between 2 and 45 characters"
	}
	if n := utf8.RuneCountInString(r.Apellidos); n < 2 || n > 45 {
		details["apellidos"] = "must be between 2 and 45 characters"
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		details["email"] = "must be a valid email address"
	}
	if r.DNI != nil && utf8.RuneCountInString(*r.DNI) != 9 {
		details["dni"] = "must be exactly 9 characters"
	}
	if r.Celular != nil && utf8.RuneCountInString(*r.Celular) != 9 {
		details["celular"] = "must be exactly 9 characters"
	}
	if r.IDRol <= 0 {
		details["id_rol"] = "must be a positive integer"
	}
	if r.Activo == nil {
		details["activo"] = "required"
	}
	if utf8.RuneCountInString(r.Password) < 8 {
		details["password"] = "must be at least 8 characters"
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid user payload", details)
	}
	return nil
}

// UserResponse is the user representation returned to admins.
type UserResponse struct {
	ID        int64       `json:"id"`
	AlfNum    string      `json:"alf_num"`
	Nombres   string      `json:"nombres"`
	Apellidos string      `json:"apellidos"`
	Email     string      `json:"email"`
	DNI       *string     `json:"dni"`
	Celular   *string     `json:"celular"`
	IDRol     domain.Role `json:"id_rol"`
	Activo    bool        `json:"activo"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserResponseFrom maps a domain user. The password hash never leaves the
// service.
func UserResponseFrom(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		AlfNum:    user.AlfNum,
		Nombres:   user.Names,
		Apellidos: user.Surnames,
		Email:     user.Email,
		DNI:       user.DNI,
		Celular:   user.Phone,
		IDRol:     user.RoleID,
		Activo:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// LoginRequest carries credentials.
type LoginRequest struct {
	AlfNum   string `json:"alf_num"`
	Password string `json:"password"`
}

// Validate checks the payload.
func (r LoginRequest) Validate() error {
	details := map[string]any{}
	if r.AlfNum == "" {
		details["alf_num"] = "required"
	}
	if r.Password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid login payload", details)
	}
	return nil
}

// LoginResponse returns the issued token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
