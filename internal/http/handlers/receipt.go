package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busfront/internal/http/middleware"
	"busfront/internal/services"
)

// GET /api/bookings/:bookingNumber/receipt
func (a *API) BookingReceipt(c *gin.Context) {
	sess, ok := a.mustSession(c)
	if !ok {
		return
	}

	svc := services.ReceiptService{Backend: a.Backend, RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.Generate(c.Request.Context(), sess, c.Param("bookingNumber"))
	if err != nil {
		a.failRequest(c, sess, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
