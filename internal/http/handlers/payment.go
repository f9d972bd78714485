package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busfront/internal/http/middleware"
	"busfront/internal/services"
)

// POST /api/payment/process
//
// One payment for the whole pending checkout. The outcome carries the
// navigation target and display delay so the page just follows it.
func (a *API) ProcessPayment(c *gin.Context) {
	sess, ok := a.mustSession(c)
	if !ok {
		return
	}

	var in services.PaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}

	svc := services.PaymentService{
		Backend:   a.Backend,
		Sessions:  a.Sessions,
		RequestID: middleware.GetRequestID(c),
	}
	outcome, err := svc.Process(c.Request.Context(), sess, in)
	if err != nil {
		a.failRequest(c, sess, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
