package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatbox-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, created_at FROM users WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// First returns the lowest-id user. The system is single-tenant, so this is
// the seeded account.
func (r *UserRepo) First(ctx context.Context) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, created_at FROM users ORDER BY id LIMIT 1`

	err := r.pool.QueryRow(ctx, query).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureSeedUser inserts the bootstrap user if the users table is empty and
// returns the seeded account. Safe to call on every startup.
func (r *UserRepo) EnsureSeedUser(ctx context.Context, name string) (*models.User, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (name) SELECT $1 WHERE NOT EXISTS (SELECT 1 FROM users)`,
		name,
	)
	if err != nil {
		return nil, err
	}
	return r.First(ctx)
}
