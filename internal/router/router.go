package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/omarKhan56/MuseBot/internal/handler"
)

// Deps collects the handlers the route table needs.  None of the routes
// require authentication; the booking flow is open to visitors and the
// gate scanner runs inside the venue network.
type Deps struct {
	Bookings *handler.BookingHandler
	Payments *handler.PaymentHandler
	Tickets  *handler.TicketHandler
	Chat     *handler.ChatHandler
	Stats    *handler.StatsHandler
}

// Register maps every endpoint onto the provided Echo instance.  The
// analytics summary sits behind the response cache middleware so the
// dashboard's aggregate queries are served from Redis between refreshes.
func Register(e *echo.Echo, d Deps, cache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	// Booking intake and per-visitor lookup.
	v1.POST("/bookings", d.Bookings.Create)
	v1.GET("/bookings", d.Bookings.List)

	// Payment gateway orders and callback verification.
	v1.POST("/payments/orders", d.Payments.CreateOrder)
	v1.POST("/payments/verify", d.Payments.Verify)

	// Ticket lookup (gate scanner and visitor views) and redemption.
	v1.GET("/tickets", d.Tickets.Lookup)
	v1.POST("/tickets/redeem", d.Tickets.Redeem)

	// Conversational booking assistant.
	v1.POST("/chat", d.Chat.Converse)

	// Dashboard aggregates, cached.
	v1.GET("/analytics/summary", d.Stats.Summary, cache)
}
