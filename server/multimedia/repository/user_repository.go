package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lodging_server/server/multimedia/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) ReadProfilePhoto(ctx context.Context, userID string) ([]byte, error) {
	var photo []byte
	err := r.pool.QueryRow(ctx, `
		SELECT profile_photo
		FROM users
		WHERE user_id=$1
	`, userID).Scan(&photo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntityNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(photo) == 0 {
		return nil, domain.ErrFieldEmpty
	}
	return photo, nil
}

func (r *UserRepository) WriteProfilePhoto(ctx context.Context, userID string, data []byte) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET profile_photo=$2
		WHERE user_id=$1
	`, userID, data)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}
