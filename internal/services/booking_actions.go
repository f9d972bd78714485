package services

import (
	"context"
	"strings"

	"busfront/internal/backend"
	"busfront/internal/domain"
	"busfront/internal/session"
	"busfront/internal/utils"
)

// Booking list actions. Each action is a plain command against one backend
// endpoint; the caller follows up with List for a fresh view. The two steps
// stay separable on purpose, there is no optimistic update.
type BookingActions struct {
	Backend   *backend.Client
	RequestID string
}

const (
	ActionCancel  = "cancel"
	ActionPay     = "pay"
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Do runs one per-booking command. Approve/reject are admin commands, the
// admin route group enforces the role before this is reached.
func (s BookingActions) Do(ctx context.Context, sess session.Session, action, bookingNumber string) error {
	bookingNumber = strings.TrimSpace(bookingNumber)
	if bookingNumber == "" {
		return domain.ValidationError{Field: "bookingNumber", Msg: "required"}
	}

	var err error
	switch action {
	case ActionCancel:
		err = s.Backend.CancelBooking(ctx, sess.Token, bookingNumber)
	case ActionPay:
		err = s.Backend.PayBooking(ctx, sess.Token, bookingNumber)
	case ActionApprove:
		err = s.Backend.ApproveBooking(ctx, sess.Token, bookingNumber)
	case ActionReject:
		err = s.Backend.RejectBooking(ctx, sess.Token, bookingNumber)
	default:
		return domain.ValidationError{Field: "action", Msg: "unknown booking action"}
	}
	if err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "booking", action, "booking_number="+bookingNumber)
	return nil
}

// List fetches the booking list for the session: the full list for admins,
// the user's own bookings otherwise.
func (s BookingActions) List(ctx context.Context, sess session.Session) ([]domain.Booking, error) {
	if sess.Profile.IsAdmin() {
		return s.Backend.AllBookings(ctx, sess.Token)
	}
	return s.Backend.UserBookings(ctx, sess.Token)
}

// Stats fetches the precomputed admin overview.
func (s BookingActions) Stats(ctx context.Context, sess session.Session) (domain.BookingStats, error) {
	return s.Backend.BookingStats(ctx, sess.Token)
}
