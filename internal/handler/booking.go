package handler // declare the package name; contains HTTP handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/omarKhan56/MuseBot/internal/service"
)

// BookingHandler exposes booking intake and lookup.  All validation and
// side effects live in the service layer; the handler only translates
// between HTTP and the pipeline's error taxonomy.
type BookingHandler struct {
	Bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

// Create handles POST /v1/bookings.  It persists the booking, issues its
// tickets synchronously and returns both.  Validation failures come back
// as 400 with the offending field named; side-effect failures (email,
// analytics) never fail the request.
func (h *BookingHandler) Create(c echo.Context) error {
	var req service.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}

	res, err := h.Bookings.Create(c.Request().Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"error":   verr.Error(),
				"field":   verr.Field,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to create booking"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"booking": res.Booking,
		"tickets": res.Tickets,
	})
}

// List handles GET /v1/bookings?email=...  It returns the visitor's
// bookings newest-first, each with its tickets nested.
func (h *BookingHandler) List(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "email query parameter is required"})
	}

	bookings, err := h.Bookings.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to list bookings"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"bookings": bookings,
	})
}
