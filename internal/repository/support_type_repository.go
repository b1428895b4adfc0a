package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soldesk/ticket-service/internal/domain"
)

// SupportTypeRepository lists the ticket categories.
type SupportTypeRepository interface {
	List(ctx context.Context) ([]domain.SupportType, error)
	GetByID(ctx context.Context, id int) (*domain.SupportType, error)
}

type supportTypeRepository struct {
	pool *pgxpool.Pool
}

// NewSupportTypeRepository returns a Postgres-backed implementation.
func NewSupportTypeRepository(pool *pgxpool.Pool) SupportTypeRepository {
	return &supportTypeRepository{pool: pool}
}

func (r *supportTypeRepository) List(ctx context.Context) ([]domain.SupportType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM support_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SupportType
	for rows.Next() {
		var st domain.SupportType
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

func (r *supportTypeRepository) GetByID(ctx context.Context, id int) (*domain.SupportType, error) {
	var st domain.SupportType
	if err := r.pool.QueryRow(ctx, `SELECT id, name FROM support_types WHERE id=$1`, id).Scan(&st.ID, &st.Name); err != nil {
		return nil, err
	}
	return &st, nil
}
