package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodging_server/server/multimedia/domain"
)

type fakeStatisticsStore struct {
	topBooked     []domain.AccommodationBookings
	topBookedHost map[string][]domain.AccommodationBookings
	topRated      []domain.AccommodationRating
	earnings      map[string][]domain.MonthlyEarnings
	queries       int
}

func (f *fakeStatisticsStore) TopBookedAccommodations(context.Context) ([]domain.AccommodationBookings, error) {
	f.queries++
	return f.topBooked, nil
}

func (f *fakeStatisticsStore) TopBookedAccommodationsOfHost(_ context.Context, hostID string) ([]domain.AccommodationBookings, error) {
	f.queries++
	return f.topBookedHost[hostID], nil
}

func (f *fakeStatisticsStore) TopRatedAccommodations(context.Context) ([]domain.AccommodationRating, error) {
	f.queries++
	return f.topRated, nil
}

func (f *fakeStatisticsStore) HostEarningsByMonth(_ context.Context, hostID string) ([]domain.MonthlyEarnings, error) {
	f.queries++
	return f.earnings[hostID], nil
}

func TestStatisticsPassthroughWithoutCache(t *testing.T) {
	store := &fakeStatisticsStore{
		topBooked: []domain.AccommodationBookings{
			{Title: "Sea View Loft", BookingsNumber: 12},
			{Title: "Mountain Cabin", BookingsNumber: 7},
		},
		topRated: []domain.AccommodationRating{
			{Title: "Mountain Cabin", Rate: 4.8},
		},
		topBookedHost: map[string][]domain.AccommodationBookings{
			"host-1": {{Title: "Sea View Loft", BookingsNumber: 12}},
		},
		earnings: map[string][]domain.MonthlyEarnings{
			"host-1": {{Month: 3, Earning: 840}, {Month: 4, Earning: 1260}},
		},
	}
	svc := NewStatisticsService(store)
	ctx := context.Background()

	booked, err := svc.MostBookedAccommodations(ctx)
	require.NoError(t, err)
	require.Len(t, booked, 2)
	assert.Equal(t, "Sea View Loft", booked[0].Title)
	assert.Equal(t, 12, booked[0].BookingsNumber)

	rated, err := svc.BestRatedAccommodations(ctx)
	require.NoError(t, err)
	require.Len(t, rated, 1)
	assert.InDelta(t, 4.8, rated[0].Rate, 0.001)

	hostBooked, err := svc.MostBookedAccommodationsOfHost(ctx, "host-1")
	require.NoError(t, err)
	require.Len(t, hostBooked, 1)

	earnings, err := svc.Earnings(ctx, "host-1")
	require.NoError(t, err)
	require.Len(t, earnings, 2)
	assert.Equal(t, 3, earnings[0].Month)
	assert.InDelta(t, 840, earnings[0].Earning, 0.001)

	// Every call hit the store directly, since no cache is attached.
	assert.Equal(t, 4, store.queries)
}

func TestStatisticsUnknownHostYieldsEmpty(t *testing.T) {
	store := &fakeStatisticsStore{
		topBookedHost: map[string][]domain.AccommodationBookings{},
		earnings:      map[string][]domain.MonthlyEarnings{},
	}
	svc := NewStatisticsService(store)
	ctx := context.Background()

	hostBooked, err := svc.MostBookedAccommodationsOfHost(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, hostBooked)

	earnings, err := svc.Earnings(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, earnings)
}
