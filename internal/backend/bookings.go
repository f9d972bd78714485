package backend

import (
	"context"
	"fmt"

	"busfront/internal/domain"
)

type CreateBookingRequest struct {
	BusID      int64  `json:"busId"`
	SeatNumber string `json:"seatNumber"`
}

// CreateBooking books exactly one seat. The seat fan-out issues one call per
// selected seat; the backend creates one booking row each time, no dedup.
func (c *Client) CreateBooking(ctx context.Context, token string, busID int64, seatNumber string) (domain.Booking, error) {
	var out domain.Booking
	err := c.post(ctx, "/api/bookings", token, CreateBookingRequest{BusID: busID, SeatNumber: seatNumber}, &out)
	if err != nil {
		return out, err
	}
	return out, nil
}

func (c *Client) UserBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.get(ctx, "/api/bookings/user", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AllBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.get(ctx, "/api/bookings/admin/all", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BookingStats(ctx context.Context, token string) (domain.BookingStats, error) {
	var out domain.BookingStats
	if err := c.get(ctx, "/api/bookings/admin/stats", token, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Per-booking commands. Each is a single POST against a booking-scoped
// endpoint; the caller re-queries the list afterwards, no optimistic update.

func (c *Client) CancelBooking(ctx context.Context, token, bookingNumber string) error {
	return c.post(ctx, fmt.Sprintf("/api/bookings/%s/cancel", bookingNumber), token, nil, nil)
}

func (c *Client) PayBooking(ctx context.Context, token, bookingNumber string) error {
	return c.post(ctx, fmt.Sprintf("/api/bookings/%s/payment", bookingNumber), token, nil, nil)
}

func (c *Client) ApproveBooking(ctx context.Context, token, bookingNumber string) error {
	return c.post(ctx, fmt.Sprintf("/api/bookings/admin/%s/approve", bookingNumber), token, nil, nil)
}

func (c *Client) RejectBooking(ctx context.Context, token, bookingNumber string) error {
	return c.post(ctx, fmt.Sprintf("/api/bookings/admin/%s/reject", bookingNumber), token, nil, nil)
}
