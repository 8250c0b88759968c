package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lodging_server/server/multimedia/domain"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) HasCurrentBooking(ctx context.Context, accommodationID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE accommodation_id=$1 AND booking_status=$2
		)
	`, accommodationID, string(domain.BookingStatusCurrent)).Scan(&exists)
	return exists, err
}

func (r *BookingRepository) TopBookedAccommodations(ctx context.Context) ([]domain.AccommodationBookings, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.title, COUNT(*) AS bookings_number
		FROM bookings b
		JOIN accommodations a ON a.accommodation_id = b.accommodation_id
		WHERE b.beginning_date >= date_trunc('year', now())
		  AND b.beginning_date <  date_trunc('year', now()) + interval '1 year'
		GROUP BY a.accommodation_id, a.title
		ORDER BY bookings_number DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccommodationBookings(rows)
}

func (r *BookingRepository) TopBookedAccommodationsOfHost(ctx context.Context, hostID string) ([]domain.AccommodationBookings, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.title, COUNT(*) AS bookings_number
		FROM bookings b
		JOIN accommodations a ON a.accommodation_id = b.accommodation_id
		WHERE b.host_id=$1
		GROUP BY a.accommodation_id, a.title
		ORDER BY bookings_number DESC
		LIMIT 10
	`, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccommodationBookings(rows)
}

func (r *BookingRepository) TopRatedAccommodations(ctx context.Context) ([]domain.AccommodationRating, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.title, AVG(v.rating)::float8 AS rate
		FROM reviews v
		JOIN accommodations a ON a.accommodation_id = v.accommodation_id
		GROUP BY a.accommodation_id, a.title
		ORDER BY rate DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.AccommodationRating, 0)
	for rows.Next() {
		var item domain.AccommodationRating
		if err := rows.Scan(&item.Title, &item.Rate); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// HostEarningsByMonth sums per-month earnings from settled (overdue)
// bookings: nights = whole days between the dates minus one, earnings =
// nights * night price.
func (r *BookingRepository) HostEarningsByMonth(ctx context.Context, hostID string) ([]domain.MonthlyEarnings, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(MONTH FROM b.beginning_date)::int AS month,
		       SUM((EXTRACT(EPOCH FROM (b.ending_date - b.beginning_date)) / 86400 - 1) * b.night_price)::float8 AS earning
		FROM bookings b
		WHERE b.host_id=$1 AND b.booking_status=$2
		GROUP BY month
		ORDER BY month ASC
	`, hostID, string(domain.BookingStatusOverdue))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.MonthlyEarnings, 0)
	for rows.Next() {
		var item domain.MonthlyEarnings
		if err := rows.Scan(&item.Month, &item.Earning); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanAccommodationBookings(rows pgx.Rows) ([]domain.AccommodationBookings, error) {
	items := make([]domain.AccommodationBookings, 0)
	for rows.Next() {
		var item domain.AccommodationBookings
		if err := rows.Scan(&item.Title, &item.BookingsNumber); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
