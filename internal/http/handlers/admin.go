package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busfront/internal/http/middleware"
	"busfront/internal/services"
)

// GET /api/admin/stats
func (a *API) AdminStats(c *gin.Context) {
	sess, ok := a.mustSession(c)
	if !ok {
		return
	}

	actions := services.BookingActions{Backend: a.Backend, RequestID: middleware.GetRequestID(c)}
	stats, err := actions.Stats(c.Request.Context(), sess)
	if err != nil {
		a.failRequest(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// POST /api/admin/bookings/:bookingNumber/approve
func (a *API) ApproveBooking(c *gin.Context) {
	a.bookingAction(c, services.ActionApprove, "Booking approved")
}

// POST /api/admin/bookings/:bookingNumber/reject
func (a *API) RejectBooking(c *gin.Context) {
	a.bookingAction(c, services.ActionReject, "Booking rejected")
}
