package model

// Event types recorded by the analytics sink.  Events are append-only and
// never read back by the booking pipeline itself.
const (
	EventBookingCreated   = "booking_created"
	EventPaymentCompleted = "payment_completed"
	EventTicketUsed       = "ticket_used"
)

// AnalyticsSummary aggregates completed bookings for the dashboard
// endpoint.  Revenue and counts only consider bookings whose payment has
// completed.
type AnalyticsSummary struct {
	TotalBookings   int64  `json:"total_bookings"`
	TotalRevenue    int64  `json:"total_revenue"`
	TodayBookings   int64  `json:"today_bookings"`
	PopularCategory string `json:"popular_category"`
}
