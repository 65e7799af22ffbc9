package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarKhan56/MuseBot/internal/model"
	"github.com/omarKhan56/MuseBot/internal/payment"
	"github.com/omarKhan56/MuseBot/internal/pricing"
	"github.com/omarKhan56/MuseBot/internal/service"
)

// In-memory stubs for the service-layer store interfaces.

type bookingStoreStub struct {
	bookings  map[string]*model.Booking
	completed []string
}

func newBookingStoreStub() *bookingStoreStub {
	return &bookingStoreStub{bookings: make(map[string]*model.Booking)}
}

func (s *bookingStoreStub) Create(_ context.Context, b *model.Booking) error {
	s.bookings[b.ID] = b
	return nil
}

func (s *bookingStoreStub) GetByID(_ context.Context, id string) (*model.Booking, error) {
	if b, ok := s.bookings[id]; ok {
		return b, nil
	}
	return nil, nil
}

func (s *bookingStoreStub) ListByEmail(_ context.Context, email string) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range s.bookings {
		if b.Email == email {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *bookingStoreStub) MarkCompleted(_ context.Context, id, orderID, paymentID, signature string) error {
	s.completed = append(s.completed, id)
	return nil
}

type ticketStoreStub struct {
	tickets []model.Ticket
}

func (s *ticketStoreStub) Create(_ context.Context, t *model.Ticket) error {
	s.tickets = append(s.tickets, *t)
	return nil
}

func (s *ticketStoreStub) Redeem(_ context.Context, number string, at time.Time) (*model.Ticket, error) {
	return &model.Ticket{TicketNumber: number, IsUsed: true, UsedAt: &at}, nil
}

func (s *ticketStoreStub) ListByBookings(_ context.Context, ids []string) (map[string][]model.Ticket, error) {
	out := make(map[string][]model.Ticket)
	for _, t := range s.tickets {
		out[t.BookingID] = append(out[t.BookingID], t)
	}
	return out, nil
}

func newBookingTestHandler() *BookingHandler {
	store := newBookingStoreStub()
	tickets := service.NewTicketService(&ticketStoreStub{}, nil)
	svc := service.NewBookingService(store, tickets, nil, nil, pricing.Default())
	return NewBookingHandler(svc)
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestCreateBookingEndpoint(t *testing.T) {
	h := newBookingTestHandler()

	rec := doJSON(t, h.Create, http.MethodPost, "/v1/bookings", `{
		"visitor_name": "Asha Rao",
		"email": "asha@example.com",
		"phone": "9876543210",
		"visit_date": "2026-04-01",
		"ticket_category": "`+pricing.CategoryVIP+`",
		"quantity": 2,
		"total_amount": 1
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Success bool           `json:"success"`
		Booking model.Booking  `json:"booking"`
		Tickets []model.Ticket `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, int64(1000), out.Booking.TotalAmount, "client-supplied total is ignored")
	assert.Equal(t, model.PaymentPending, out.Booking.PaymentStatus)
	assert.Len(t, out.Tickets, 2)
}

func TestCreateBookingEndpointValidation(t *testing.T) {
	h := newBookingTestHandler()

	rec := doJSON(t, h.Create, http.MethodPost, "/v1/bookings", `{
		"visitor_name": "Asha Rao",
		"email": "not-an-email",
		"phone": "9876543210",
		"visit_date": "2026-04-01",
		"ticket_category": "`+pricing.CategoryAdult+`",
		"quantity": 1
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var out struct {
		Success bool   `json:"success"`
		Field   string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Success)
	assert.Equal(t, "email", out.Field)
}

func TestListBookingsRequiresEmail(t *testing.T) {
	h := newBookingTestHandler()

	rec := doJSON(t, h.List, http.MethodGet, "/v1/bookings", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type gatewayStub struct{ valid bool }

func (g *gatewayStub) CreateOrder(_ context.Context, amount int64, bookingID string) (*payment.Order, error) {
	return &payment.Order{ID: "order_test", Amount: amount * 100, Currency: "INR"}, nil
}

func (g *gatewayStub) VerifySignature(orderID, paymentID, signature string) bool { return g.valid }

func TestVerifyEndpointRejectsBadSignature(t *testing.T) {
	store := newBookingStoreStub()
	svc := service.NewPaymentService(store, &gatewayStub{valid: false}, nil)
	h := NewPaymentHandler(svc)

	rec := doJSON(t, h.Verify, http.MethodPost, "/v1/payments/verify", `{
		"booking_id": "b-1",
		"razorpay_order_id": "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature": "deadbeef"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.completed)
}

func TestVerifyEndpointCompletesBooking(t *testing.T) {
	store := newBookingStoreStub()
	svc := service.NewPaymentService(store, &gatewayStub{valid: true}, nil)
	h := NewPaymentHandler(svc)

	rec := doJSON(t, h.Verify, http.MethodPost, "/v1/payments/verify", `{
		"booking_id": "b-1",
		"razorpay_order_id": "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature": "cafe"
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"b-1"}, store.completed)
}
