package domain

import "time"

// Role identifies what a user may do. Values mirror the roles table.
type Role int

const (
	RoleAdmin      Role = 1
	RoleTechnician Role = 2
	RoleEndUser    Role = 3
)

// User covers both end-users who submit tickets and technicians who handle
// them. AlfNum is the public alphanumeric identity code.
type User struct {
	ID           int64
	AlfNum       string
	Names        string
	Surnames     string
	Email        string
	DNI          *string
	Phone        *string
	RoleID       Role
	Active       bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins name parts the way listing views display them.
func (u User) FullName() string {
	return u.Names + " " + u.Surnames
}
