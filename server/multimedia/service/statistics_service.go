package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	commonlog "lodging_server/server/common/log"
	"lodging_server/server/multimedia/domain"
)

// StatisticsStore answers the read-only booking/rating aggregates.
type StatisticsStore interface {
	TopBookedAccommodations(ctx context.Context) ([]domain.AccommodationBookings, error)
	TopBookedAccommodationsOfHost(ctx context.Context, hostID string) ([]domain.AccommodationBookings, error)
	TopRatedAccommodations(ctx context.Context) ([]domain.AccommodationRating, error)
	HostEarningsByMonth(ctx context.Context, hostID string) ([]domain.MonthlyEarnings, error)
}

const (
	cacheKeyMostBooked = "statistics:most-booked"
	cacheKeyBestRated  = "statistics:best-rated"
	cacheTTL           = 5 * time.Minute
)

// StatisticsService fronts the aggregate queries. The two platform-wide
// top-10s are served through a short-lived redis cache; host-scoped
// queries go straight to the store. Without a redis client every read is
// a passthrough.
type StatisticsService struct {
	store StatisticsStore
	cache *redis.Client
}

func NewStatisticsService(store StatisticsStore) *StatisticsService {
	return &StatisticsService{store: store}
}

func (s *StatisticsService) UseCache(client *redis.Client) {
	s.cache = client
}

func (s *StatisticsService) MostBookedAccommodations(ctx context.Context) ([]domain.AccommodationBookings, error) {
	if cached, ok := cacheGet[[]domain.AccommodationBookings](ctx, s.cache, cacheKeyMostBooked); ok {
		return cached, nil
	}
	items, err := s.store.TopBookedAccommodations(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, cacheKeyMostBooked, items)
	return items, nil
}

func (s *StatisticsService) BestRatedAccommodations(ctx context.Context) ([]domain.AccommodationRating, error) {
	if cached, ok := cacheGet[[]domain.AccommodationRating](ctx, s.cache, cacheKeyBestRated); ok {
		return cached, nil
	}
	items, err := s.store.TopRatedAccommodations(ctx)
	if err != nil {
		return nil, err
	}
	cacheSet(ctx, s.cache, cacheKeyBestRated, items)
	return items, nil
}

func (s *StatisticsService) MostBookedAccommodationsOfHost(ctx context.Context, hostID string) ([]domain.AccommodationBookings, error) {
	return s.store.TopBookedAccommodationsOfHost(ctx, hostID)
}

func (s *StatisticsService) Earnings(ctx context.Context, hostID string) ([]domain.MonthlyEarnings, error) {
	return s.store.HostEarningsByMonth(ctx, hostID)
}

func cacheGet[T any](ctx context.Context, client *redis.Client, key string) (T, bool) {
	var zero T
	if client == nil {
		return zero, false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			commonlog.Warnf("statistics cache read %s: %v", key, err)
		}
		return zero, false
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		commonlog.Warnf("statistics cache decode %s: %v", key, err)
		return zero, false
	}
	return value, true
}

func cacheSet(ctx context.Context, client *redis.Client, key string, value any) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := client.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		commonlog.Warnf("statistics cache write %s: %v", key, err)
	}
}
