package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soldesk/ticket-service/internal/domain"
)

// UserRepository defines persistence access for users and technicians.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByAlfNum(ctx context.Context, alfNum string) (*domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (alf_num, names, surnames, email, dni, phone, role_id, active, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.AlfNum,
		user.Names,
		user.Surnames,
		user.Email,
		user.DNI,
		user.Phone,
		user.RoleID,
		user.Active,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET names=$1, surnames=$2, email=$3, dni=$4, phone=$5, role_id=$6,
            active=$7, password_hash=$8, updated_at=NOW()
        WHERE alf_num=$9`

	cmd, err := r.pool.Exec(ctx, query,
		user.Names,
		user.Surnames,
		user.Email,
		user.DNI,
		user.Phone,
		user.RoleID,
		user.Active,
		user.PasswordHash,
		user.AlfNum,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByAlfNum(ctx context.Context, alfNum string) (*domain.User, error) {
	const query = `
        SELECT id, alf_num, names, surnames, email, dni, phone, role_id, active, password_hash, created_at, updated_at
        FROM users WHERE alf_num=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, alfNum).Scan(
		&user.ID,
		&user.AlfNum,
		&user.Names,
		&user.Surnames,
		&user.Email,
		&user.DNI,
		&user.Phone,
		&user.RoleID,
		&user.Active,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE role_id=$1 AND active`, role).Scan(&count)
	return count, err
}
