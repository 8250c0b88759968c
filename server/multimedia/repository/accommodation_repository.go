package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lodging_server/server/multimedia/domain"
)

// AccommodationRepository stores the multimedia gallery as densely
// numbered slots (0..n-1) in a child table. Writes past the end of the
// gallery are rejected, not zero-filled.
type AccommodationRepository struct {
	pool *pgxpool.Pool
}

func NewAccommodationRepository(pool *pgxpool.Pool) *AccommodationRepository {
	return &AccommodationRepository{pool: pool}
}

func (r *AccommodationRepository) AppendMultimedia(ctx context.Context, accommodationID string, data []byte) (int, error) {
	var slot int
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accommodation_multimedias(accommodation_id, slot_no, data)
		SELECT a.accommodation_id,
		       COALESCE((SELECT MAX(m.slot_no)+1 FROM accommodation_multimedias m WHERE m.accommodation_id=a.accommodation_id), 0),
		       $2
		FROM accommodations a
		WHERE a.accommodation_id=$1
		RETURNING slot_no
	`, accommodationID, data)
	if err := row.Scan(&slot); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrEntityNotFound
		}
		return 0, err
	}
	return slot, nil
}

func (r *AccommodationRepository) ReadMultimediaAt(ctx context.Context, accommodationID string, index int) ([]byte, error) {
	if index < 0 {
		return nil, domain.ErrIndexOutOfRange
	}
	var data []byte
	err := r.pool.QueryRow(ctx, `
		SELECT data
		FROM accommodation_multimedias
		WHERE accommodation_id=$1 AND slot_no=$2
	`, accommodationID, index).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.missReason(ctx, accommodationID)
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.ErrFieldEmpty
	}
	return data, nil
}

func (r *AccommodationRepository) WriteMultimediaAt(ctx context.Context, accommodationID string, index int, data []byte) error {
	if index < 0 {
		return domain.ErrIndexOutOfRange
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE accommodation_multimedias
		SET data=$3
		WHERE accommodation_id=$1 AND slot_no=$2
	`, accommodationID, index, data)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missReason(ctx, accommodationID)
	}
	return nil
}

// missReason decides between an absent accommodation and a slot past the
// end of an existing gallery, so the two are reported distinctly.
func (r *AccommodationRepository) missReason(ctx context.Context, accommodationID string) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accommodations WHERE accommodation_id=$1)
	`, accommodationID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrEntityNotFound
	}
	return domain.ErrIndexOutOfRange
}
