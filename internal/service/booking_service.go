package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omarKhan56/MuseBot/internal/model"
	"github.com/omarKhan56/MuseBot/internal/pricing"
)

// BookingStore is the persistence surface for bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]model.Booking, error)
	MarkCompleted(ctx context.Context, id, orderID, paymentID, signature string) error
}

// Notifier delivers the confirmation email.  Implemented by mail.Mailer.
type Notifier interface {
	SendBookingConfirmation(to string, b *model.Booking, qrDataURL string) error
}

// BookingRequest carries the intake fields.  TotalAmount is accepted for
// wire compatibility but always ignored: totals are computed server-side
// from the pricing table.
type BookingRequest struct {
	VisitorName    string `json:"visitor_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	VisitDate      string `json:"visit_date"`
	TicketCategory string `json:"ticket_category"`
	Quantity       int    `json:"quantity"`
	TotalAmount    int64  `json:"total_amount"`
	PaymentStatus  string `json:"payment_status"` // optional initial status
}

// ValidationError rejects a booking request before anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason) }

// BookingResult separates the primary outcome (the persisted booking and
// its tickets) from advisory side-effect outcomes, so callers and tests
// can assert primary success independent of side-effect failures.
type BookingResult struct {
	Booking  *model.Booking
	Tickets  []model.Ticket
	Notified bool // whether the confirmation email went out
}

// BookingWithTickets nests a booking's tickets for the lookup endpoint.
type BookingWithTickets struct {
	model.Booking
	Tickets []model.Ticket `json:"tickets"`
}

// BookingService validates and persists booking requests and owns the
// payment-status lifecycle of the rows it creates.
type BookingService struct {
	store     BookingStore
	tickets   *TicketService
	analytics *AnalyticsService
	notifier  Notifier
	prices    pricing.Table
}

// NewBookingService wires the intake.  notifier may be nil when SMTP is
// not configured.
func NewBookingService(store BookingStore, tickets *TicketService, analytics *AnalyticsService, notifier Notifier, prices pricing.Table) *BookingService {
	return &BookingService{
		store:     store,
		tickets:   tickets,
		analytics: analytics,
		notifier:  notifier,
		prices:    prices,
	}
}

// Create validates the request, persists the booking with a server-side
// total, synchronously issues its tickets, and fires the best-effort side
// effects (confirmation email, booking_created analytics event).  Only
// validation and the primary booking insert can fail the operation; a
// degraded ticket batch still returns success and callers must inspect
// the ticket count.
func (s *BookingService) Create(ctx context.Context, req *BookingRequest) (*BookingResult, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	total, _ := s.prices.Total(req.TicketCategory, req.Quantity)

	status := model.PaymentPending
	if req.PaymentStatus != "" {
		status = req.PaymentStatus
	}

	booking := &model.Booking{
		ID:             uuid.NewString(),
		VisitorName:    req.VisitorName,
		Email:          req.Email,
		Phone:          req.Phone,
		VisitDate:      req.VisitDate,
		TicketCategory: req.TicketCategory,
		Quantity:       req.Quantity,
		TotalAmount:    total,
		PaymentStatus:  status,
	}
	if err := s.store.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	tickets := s.tickets.Issue(ctx, booking)

	notified := false
	if len(tickets) > 0 && s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(booking.Email, booking, tickets[0].QRCode); err != nil {
			log.Printf("bookings: confirmation email to %s failed: %v", booking.Email, err)
		} else {
			notified = true
		}
	}

	s.analytics.Record(ctx, model.EventBookingCreated, map[string]any{
		"booking_id":      booking.ID,
		"ticket_category": booking.TicketCategory,
	})

	return &BookingResult{Booking: booking, Tickets: tickets, Notified: notified}, nil
}

// ListByEmail returns a visitor's bookings newest-first with their
// tickets nested.
func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]BookingWithTickets, error) {
	bookings, err := s.store.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	grouped, err := s.tickets.ListByBookings(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]BookingWithTickets, 0, len(bookings))
	for _, b := range bookings {
		tickets := grouped[b.ID]
		if tickets == nil {
			tickets = []model.Ticket{}
		}
		out = append(out, BookingWithTickets{Booking: b, Tickets: tickets})
	}
	return out, nil
}

var validStatuses = map[string]bool{
	model.PaymentPending:   true,
	model.PaymentCompleted: true,
	model.PaymentFailed:    true,
}

func (s *BookingService) validate(req *BookingRequest) error {
	if strings.TrimSpace(req.VisitorName) == "" {
		return &ValidationError{Field: "visitor_name", Reason: "required"}
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return &ValidationError{Field: "email", Reason: "a valid email is required"}
	}
	if strings.TrimSpace(req.Phone) == "" {
		return &ValidationError{Field: "phone", Reason: "required"}
	}
	if req.VisitDate == "" {
		return &ValidationError{Field: "visit_date", Reason: "required"}
	}
	if _, err := time.Parse("2006-01-02", req.VisitDate); err != nil {
		return &ValidationError{Field: "visit_date", Reason: "must be YYYY-MM-DD"}
	}
	if req.Quantity < 1 || req.Quantity > 10 {
		return &ValidationError{Field: "quantity", Reason: "must be between 1 and 10"}
	}
	if _, ok := s.prices.Rate(req.TicketCategory); !ok {
		return &ValidationError{Field: "ticket_category", Reason: "unknown category"}
	}
	if req.PaymentStatus != "" && !validStatuses[req.PaymentStatus] {
		return &ValidationError{Field: "payment_status", Reason: "unknown status"}
	}
	return nil
}
