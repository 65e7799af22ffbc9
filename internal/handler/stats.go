package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/omarKhan56/MuseBot/internal/model"
	"github.com/omarKhan56/MuseBot/internal/repository"
)

// StatsHandler serves the analytics summary used by the admin dashboard.
// All figures count completed bookings only, so abandoned checkouts never
// inflate revenue.
type StatsHandler struct {
	Bookings *repository.BookingRepo
	Now      func() time.Time // injectable for tests
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(bookings *repository.BookingRepo) *StatsHandler {
	if bookings == nil {
		panic("nil repository passed to NewStatsHandler")
	}
	return &StatsHandler{Bookings: bookings, Now: time.Now}
}

// Summary handles GET /v1/analytics/summary.  The response sits behind
// the Redis cache middleware, so the four aggregate queries run at most
// once per cache TTL.
func (h *StatsHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.Bookings.CountCompleted(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
	}
	revenue, err := h.Bookings.RevenueCompleted(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
	}
	midnight := h.Now().UTC().Truncate(24 * time.Hour)
	today, err := h.Bookings.CountCompletedSince(ctx, midnight)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
	}
	popular, err := h.Bookings.PopularCategory(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
		}
		popular = "N/A" // no completed bookings yet
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"summary": model.AnalyticsSummary{
			TotalBookings:   total,
			TotalRevenue:    revenue,
			TodayBookings:   today,
			PopularCategory: popular,
		},
	})
}
