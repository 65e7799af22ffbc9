package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/omarKhan56/MuseBot/internal/model"
	"github.com/omarKhan56/MuseBot/internal/repository"
	"github.com/omarKhan56/MuseBot/internal/service"
)

// TicketFinder is the read surface lookup needs.  Implemented by
// repository.TicketRepo.
type TicketFinder interface {
	GetByNumber(ctx context.Context, number string) (*model.Ticket, error)
	ListByBooking(ctx context.Context, bookingID string) ([]model.Ticket, error)
}

// BookingFinder resolves a ticket's parent booking.  Implemented by
// repository.BookingRepo.
type BookingFinder interface {
	GetByID(ctx context.Context, id string) (*model.Booking, error)
}

// TicketHandler exposes ticket lookup and gate-side redemption.  Lookup
// reads straight from the repositories; redemption goes through the
// service so the usage event is recorded.
type TicketHandler struct {
	Tickets  TicketFinder
	Bookings BookingFinder
	Service  *service.TicketService
}

// NewTicketHandler constructs a TicketHandler with the provided
// repositories and service.  All dependencies must be non-nil.
func NewTicketHandler(tickets TicketFinder, bookings BookingFinder, svc *service.TicketService) *TicketHandler {
	if tickets == nil || bookings == nil || svc == nil {
		panic("nil dependency passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Bookings: bookings, Service: svc}
}

// Lookup handles GET /v1/tickets.  With ?ticket_number= it returns that
// ticket and its parent booking (the gate scanner's view); with
// ?booking_id= it returns all tickets of the booking.  Exactly one of the
// two parameters must be given.
func (h *TicketHandler) Lookup(c echo.Context) error {
	number := strings.TrimSpace(c.QueryParam("ticket_number"))
	bookingID := strings.TrimSpace(c.QueryParam("booking_id"))

	switch {
	case number != "":
		ticket, err := h.Tickets.GetByNumber(c.Request().Context(), number)
		if err != nil {
			if errors.Is(err, repository.ErrTicketNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "ticket not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
		}
		booking, err := h.Bookings.GetByID(c.Request().Context(), ticket.BookingID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "ticket": ticket, "booking": booking})

	case bookingID != "":
		tickets, err := h.Tickets.ListByBooking(c.Request().Context(), bookingID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "tickets": tickets})

	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "ticket_number or booking_id query parameter is required"})
	}
}

// Redeem handles POST /v1/tickets/redeem.  The first redemption of a
// ticket wins; replaying it returns 409 so the gate can flag the pass.
func (h *TicketHandler) Redeem(c echo.Context) error {
	var body struct {
		TicketNumber string `json:"ticket_number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if strings.TrimSpace(body.TicketNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "ticket_number is required"})
	}

	ticket, err := h.Service.Redeem(c.Request().Context(), body.TicketNumber)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"success": true, "ticket": ticket})
	case errors.Is(err, repository.ErrTicketUsed):
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "ticket already used"})
	case errors.Is(err, repository.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "ticket not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to redeem ticket"})
	}
}
