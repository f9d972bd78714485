package domain

import "strings"

// Profile is the user identity returned by the backend on login and kept in
// the session for the lifetime of the login.
type Profile struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	FullName  string   `json:"fullName"`
	Roles     []string `json:"roles"`
}

const RoleAdmin = "ROLE_ADMIN"

func (p Profile) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

func (p Profile) IsAdmin() bool { return p.HasRole(RoleAdmin) }

// Bus mirrors the backend bus resource. Read-only on this side, fetched
// fresh per view.
type Bus struct {
	ID             int64   `json:"id"`
	BusNumber      string  `json:"busNumber"`
	Source         string  `json:"source"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	BusType        string  `json:"busType"`
	Operator       string  `json:"operator"`
	Price          float64 `json:"price"`
	TotalSeats     int     `json:"totalSeats"`
	AvailableSeats int     `json:"availableSeats"`
}

// Booking statuses as reported by the backend.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"

	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentFailed  = "FAILED"
)

type Booking struct {
	ID            int64        `json:"id"`
	BookingNumber string       `json:"bookingNumber"`
	BookingDate   string       `json:"bookingDate,omitempty"`
	SeatNumber    string       `json:"seatNumber,omitempty"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"paymentStatus"`
	TotalAmount   float64      `json:"totalAmount"`
	Bus           *Bus         `json:"bus,omitempty"`
	Seat          *BookingSeat `json:"seat,omitempty"`
	User          *Profile     `json:"user,omitempty"`
}

// BookingSeat is the nested seat record the backend attaches to list rows.
type BookingSeat struct {
	ID         int64  `json:"id"`
	SeatNumber string `json:"seatNumber"`
	Status     string `json:"status,omitempty"`
}

// SeatLabelOf resolves the seat label of a booking whether the backend sent
// it flat or nested.
func (b Booking) SeatLabelOf() string {
	if b.SeatNumber != "" {
		return b.SeatNumber
	}
	if b.Seat != nil {
		return b.Seat.SeatNumber
	}
	return ""
}

// Checkout is the aggregate handed from the booking step to the payment
// step: route, price and the bookings created by the seat fan-out.
type Checkout struct {
	BusID         int64     `json:"busId"`
	BusNumber     string    `json:"busNumber"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime string    `json:"departureTime"`
	TotalAmount   float64   `json:"totalAmount"`
	SelectedSeats []string  `json:"selectedSeats"`
	Bookings      []Booking `json:"bookings"`
}

func (c Checkout) BookingIDs() []int64 {
	ids := make([]int64, 0, len(c.Bookings))
	for _, b := range c.Bookings {
		ids = append(ids, b.ID)
	}
	return ids
}

// BookingStats is the precomputed overview served to the admin dashboard.
type BookingStats struct {
	TotalBookings     int64   `json:"totalBookings"`
	ConfirmedBookings int64   `json:"confirmedBookings"`
	PaidBookings      int64   `json:"paidBookings"`
	PendingPayments   int64   `json:"pendingPayments"`
	TotalRevenue      float64 `json:"totalRevenue"`
}
