package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"busfront/internal/backend"
	intconfig "busfront/internal/config"
	"busfront/internal/domain"
	h "busfront/internal/http/handlers"
	"busfront/internal/http/middleware"
	"busfront/internal/session"
)

func NewRouter(env intconfig.Env, client *backend.Client, store *session.Store) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	app := h.New(env, client, store)
	auth := middleware.SessionAuth(store, env.SessionSecret)

	api := r.Group("/api")
	{
		api.GET("/health", app.Health)
		api.GET("/db-check", app.DBCheck)

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", app.Login)
		authGroup.POST("/register", app.Register)
		authGroup.POST("/logout", app.Logout)
		authGroup.GET("/me", auth, app.Me)

		// Catalog (public)
		buses := api.Group("/buses")
		buses.GET("", app.ListBuses)
		buses.GET("/search", app.SearchBuses)
		buses.GET("/:id", app.GetBus)

		// Bookings
		bookings := api.Group("/bookings", auth)
		bookings.GET("", app.ListBookings)
		bookings.POST("/checkout", app.Checkout)
		bookings.GET("/checkout", app.PendingCheckout)
		bookings.POST("/:bookingNumber/cancel", app.CancelBooking)
		bookings.POST("/:bookingNumber/payment", app.PayBooking)
		bookings.GET("/:bookingNumber/receipt", app.BookingReceipt)

		// Payment
		payment := api.Group("/payment", auth)
		payment.POST("/process", app.ProcessPayment)

		// Admin dashboard
		admin := api.Group("/admin", auth, middleware.RequireRoles(domain.RoleAdmin))
		admin.GET("/stats", app.AdminStats)
		admin.POST("/bookings/:bookingNumber/approve", app.ApproveBooking)
		admin.POST("/bookings/:bookingNumber/reject", app.RejectBooking)
	}

	return r
}
