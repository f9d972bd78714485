package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busfront/internal/http/middleware"
	"busfront/internal/services"
)

type checkoutRequest struct {
	BusID int64    `json:"busId"`
	Seats []string `json:"seats"`
}

// POST /api/bookings/checkout
//
// The seat-selection submit: one create-booking call per selected seat,
// all concurrent, all-or-nothing. The aggregate is stored on the session as
// the pending checkout and returned for the payment page.
func (a *API) Checkout(c *gin.Context) {
	sess, ok := a.mustSession(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{
		Backend:   a.Backend,
		Sessions:  a.Sessions,
		RequestID: middleware.GetRequestID(c),
	}
	checkout, err := svc.Checkout(c.Request.Context(), sess, req.BusID, req.Seats)
	if err != nil {
		a.failRequest(c, sess, err)
		return
	}
	c.JSON(http.StatusCreated, checkout)
}

// GET /api/bookings
//
// Admin sessions get the full list, everyone else their own bookings.
func (a *API) ListBookings(c *gin.Context) {
	sess, ok := a.mustSession(c)
	if !ok {
		return
	}

	actions := services.BookingActions{Backend: a.Backend, RequestID: middleware.GetRequestID(c)}
	bookings, err := actions.List(c.Request.Context(), sess)
	if err != nil {
		a.failRequest(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// POST /api/bookings/:bookingNumber/cancel
func (a *API) CancelBooking(c *gin.Context) {
	a.bookingAction(c, services.ActionCancel, "Booking cancelled successfully")
}

// POST /api/bookings/:bookingNumber/payment
func (a *API) PayBooking(c *gin.Context) {
	a.bookingAction(c, services.ActionPay, "Payment processed successfully")
}

// bookingAction runs one command then re-queries the list, returning both so
// the page refreshes without a second round trip.
func (a *API) bookingAction(c *gin.Context, action, message string) {
	sess, ok := a.mustSession(c)
	if !ok {
		return
	}

	actions := services.BookingActions{Backend: a.Backend, RequestID: middleware.GetRequestID(c)}
	if err := actions.Do(c.Request.Context(), sess, action, c.Param("bookingNumber")); err != nil {
		a.failRequest(c, sess, err)
		return
	}

	bookings, err := actions.List(c.Request.Context(), sess)
	if err != nil {
		a.failRequest(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"bookings": bookings,
	})
}

// GET /api/bookings/checkout
//
// Lets the payment page re-read the pending checkout after a reload.
func (a *API) PendingCheckout(c *gin.Context) {
	sess, ok := a.mustSession(c)
	if !ok {
		return
	}
	if sess.Checkout == nil {
		RespondError(c, http.StatusNotFound, "no pending checkout", nil)
		return
	}
	c.JSON(http.StatusOK, sess.Checkout)
}
