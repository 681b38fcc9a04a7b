package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"studybot-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT user_id, password_hash, created_at FROM users WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&user.UserID, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateIfAbsent inserts the account unless one already exists for userID.
// It reports whether this call created the row; false means an earlier or
// concurrent writer won and the stored hash should be verified instead.
func (r *UserRepo) CreateIfAbsent(ctx context.Context, userID, passwordHash string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO users (user_id, password_hash) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, passwordHash,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
