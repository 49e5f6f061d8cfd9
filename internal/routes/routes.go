package routes

import (
	"time"

	"github.com/consultly/backend/internal/config"
	"github.com/consultly/backend/internal/handlers"
	"github.com/consultly/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
	webhookHandler *handlers.WebhookHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Bookings — JWT required; list-all additionally requires the admin role
	bookings := api.Group("/bookings", middleware.JWTProtected(cfg))
	bookings.Post("/", bookingHandler.Create)
	bookings.Put("/:uid", bookingHandler.Update)
	bookings.Delete("/:uid", bookingHandler.Delete)
	bookings.Get("/", middleware.AdminRequired(), bookingHandler.ListAll)
	bookings.Get("/user/:userId", bookingHandler.ListByUser)

	// Payments — JWT required
	api.Post("/payments/payment-create", middleware.JWTProtected(cfg), paymentHandler.Create)

	// Webhooks — gateway signature auth, no JWT
	api.Post("/webhooks/razorpay", webhookHandler.HandleRazorpay)
}
