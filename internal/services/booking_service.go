package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"busfront/internal/backend"
	"busfront/internal/domain"
	"busfront/internal/session"
	"busfront/internal/utils"
)

// BookingService turns a seat selection into backend bookings and the
// checkout aggregate the payment step consumes.
type BookingService struct {
	Backend   *backend.Client
	Sessions  *session.Store
	RequestID string
}

// Checkout validates the selection against the freshly loaded bus, issues
// one create-booking call per seat concurrently and waits for the full set.
// The first failure aborts the join and cancels in-flight siblings; no
// aggregate is surfaced on any failure. Calling this twice with the same
// seats books them twice, the backend does not dedup.
func (s BookingService) Checkout(ctx context.Context, sess session.Session, busID int64, seats []string) (domain.Checkout, error) {
	var out domain.Checkout

	// Labels arrive straight from the page; trim and uppercase them so
	// " a1 " and "A1" name the same seat.
	seats = utils.SplitSeatList(strings.Join(seats, ","))
	if len(seats) == 0 {
		return out, domain.ValidationError{Field: "seats", Msg: "please select at least one seat"}
	}

	bus, err := s.Backend.GetBus(ctx, busID)
	if err != nil {
		return out, err
	}

	sel := domain.NewSeatSelection(bus)
	if err := sel.Select(seats); err != nil {
		return out, err
	}
	labels := sel.Seats()

	bookings := make([]domain.Booking, len(labels))
	g, gctx := errgroup.WithContext(ctx)
	for i, seat := range labels {
		g.Go(func() error {
			b, err := s.Backend.CreateBooking(gctx, sess.Token, bus.ID, seat)
			if err != nil {
				return err
			}
			bookings[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		utils.LogEvent(s.RequestID, "booking", "checkout", fmt.Sprintf("fan-out failed bus_id=%d seats=%d: %v", bus.ID, len(labels), err))
		return out, err
	}

	out = domain.Checkout{
		BusID:         bus.ID,
		BusNumber:     bus.BusNumber,
		Source:        bus.Source,
		Destination:   bus.Destination,
		DepartureTime: bus.DepartureTime,
		TotalAmount:   sel.TotalAmount(),
		SelectedSeats: labels,
		Bookings:      bookings,
	}

	if s.Sessions != nil {
		if err := s.Sessions.SaveCheckout(ctx, sess.ID, &out); err != nil {
			return domain.Checkout{}, err
		}
	}

	utils.LogEvent(s.RequestID, "booking", "checkout", fmt.Sprintf("bus_id=%d seats=%d total=%s", bus.ID, len(labels), utils.FormatMoney(out.TotalAmount)))
	return out, nil
}
