package service

import (
	"context"
	"fmt"

	"github.com/omarKhan56/MuseBot/internal/model"
	"github.com/omarKhan56/MuseBot/internal/payment"
)

// Gateway is the payment-processor surface the orchestrator needs.
// Implemented by payment.Client.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, bookingID string) (*payment.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// PaymentService creates gateway orders for bookings and finalizes
// verified payment callbacks.
type PaymentService struct {
	store     BookingStore
	gateway   Gateway
	analytics *AnalyticsService
}

// NewPaymentService wires the orchestrator.
func NewPaymentService(store BookingStore, gateway Gateway, analytics *AnalyticsService) *PaymentService {
	return &PaymentService{store: store, gateway: gateway, analytics: analytics}
}

// CreateOrder creates a gateway-side order for the booking's amount.  No
// local state is mutated: the booking already exists in pending status,
// so a gateway failure is retried simply by calling this again.
func (s *PaymentService) CreateOrder(ctx context.Context, amount int64, bookingID string) (*payment.Order, error) {
	return s.gateway.CreateOrder(ctx, amount, bookingID)
}

// Verify recomputes the callback signature and, only on a byte-for-byte
// match, marks the booking completed with the three gateway identifiers
// and emits the payment_completed event.  A mismatch surfaces
// payment.ErrInvalidSignature and performs no booking mutation.
func (s *PaymentService) Verify(ctx context.Context, bookingID, orderID, paymentID, signature string) error {
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		return payment.ErrInvalidSignature
	}
	if err := s.store.MarkCompleted(ctx, bookingID, orderID, paymentID, signature); err != nil {
		return fmt.Errorf("finalize booking %s: %w", bookingID, err)
	}
	s.analytics.Record(ctx, model.EventPaymentCompleted, map[string]any{
		"booking_id": bookingID,
		"payment_id": paymentID,
	})
	return nil
}
