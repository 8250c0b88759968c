package domain

import "time"

type BookingStatus string

const (
	BookingStatusCreated  BookingStatus = "Created"
	BookingStatusCurrent  BookingStatus = "Current"
	BookingStatusOverdue  BookingStatus = "Overdue"
	BookingStatusCanceled BookingStatus = "Canceled"
)

const (
	RoleGuest = "Guest"
	RoleHost  = "Host"
)

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfilePhoto []byte `json:"profile_photo,omitempty"`
}

type Accommodation struct {
	ID         string   `json:"id"`
	HostID     string   `json:"host_id"`
	Title      string   `json:"title"`
	NightPrice float64  `json:"night_price"`
	Multimedia [][]byte `json:"multimedia,omitempty"`
}

type Booking struct {
	ID              string        `json:"id"`
	AccommodationID string        `json:"accommodation_id"`
	HostID          string        `json:"host_id"`
	GuestID         string        `json:"guest_id"`
	BeginningDate   time.Time     `json:"beginning_date"`
	EndingDate      time.Time     `json:"ending_date"`
	NightPrice      float64       `json:"night_price"`
	Status          BookingStatus `json:"booking_status"`
}

type Review struct {
	ID              string `json:"id"`
	AccommodationID string `json:"accommodation_id"`
	GuestID         string `json:"guest_id"`
	Rating          int    `json:"rating"`
}

type AccommodationBookings struct {
	Title          string `json:"title"`
	BookingsNumber int    `json:"bookings_number"`
}

type AccommodationRating struct {
	Title string  `json:"title"`
	Rate  float64 `json:"rate"`
}

type MonthlyEarnings struct {
	Month   int     `json:"month"`
	Earning float64 `json:"earning"`
}
