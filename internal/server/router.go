package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Anugrah-Ajith/service-connect/internal/auth"
	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/service"
)

// Handlers bundles the service layer behind the HTTP surface.
type Handlers struct {
	Identity  *service.IdentityService
	Providers *service.ProviderService
	Bookings  *service.BookingService
	Chat      *service.ChatService
	Payments  *service.PaymentService
	Reviews   *service.ReviewService
}

const defaultRPS = 100

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(h *Handlers, tokens *auth.Manager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), CORS(), RateLimit(defaultRPS))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", JWTAuth(tokens), h.Me)
		authGroup.PUT("/me", JWTAuth(tokens), h.UpdateMe)
	}

	providers := api.Group("/providers")
	{
		providers.GET("", h.ListProviders)
		providers.GET("/:id", h.GetProvider)
		providers.POST("", JWTAuth(tokens), RequireRole(string(model.RoleServiceProvider)), h.CreateProviderProfile)
		providers.PUT("/me", JWTAuth(tokens), RequireRole(string(model.RoleServiceProvider)), h.UpdateProviderProfile)
	}

	bookings := api.Group("/bookings", JWTAuth(tokens))
	{
		bookings.POST("", RequireRole(string(model.RoleCustomer)), h.CreateBooking)
		bookings.GET("/my-bookings", h.MyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", h.UpdateBookingStatus)
	}

	chat := api.Group("/chat", JWTAuth(tokens))
	{
		chat.GET("/:bookingId/messages", h.MessageHistory)
		chat.POST("/:bookingId/messages", h.SendMessage)
		chat.GET("/:bookingId/stream", h.StreamMessages)
	}

	payments := api.Group("/payments", JWTAuth(tokens))
	{
		payments.POST("/create-intent", h.CreatePaymentIntent)
		payments.POST("/confirm", h.ConfirmPayment)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", JWTAuth(tokens), RequireRole(string(model.RoleCustomer)), h.CreateReview)
		reviews.GET("/provider/:providerId", h.ProviderReviews)
	}

	return r
}
