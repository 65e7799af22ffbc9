package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarKhan56/MuseBot/internal/model"
	"github.com/omarKhan56/MuseBot/internal/repository"
	"github.com/omarKhan56/MuseBot/internal/service"
)

// ticketGateStub backs both the handler's lookup interfaces and the
// service's store, simulating the one-way is_used transition the real
// repository enforces.
type ticketGateStub struct {
	tickets map[string]*model.Ticket
}

func newTicketGateStub(tickets ...*model.Ticket) *ticketGateStub {
	s := &ticketGateStub{tickets: make(map[string]*model.Ticket)}
	for _, t := range tickets {
		s.tickets[t.TicketNumber] = t
	}
	return s
}

func (s *ticketGateStub) Create(_ context.Context, t *model.Ticket) error {
	s.tickets[t.TicketNumber] = t
	return nil
}

func (s *ticketGateStub) GetByNumber(_ context.Context, number string) (*model.Ticket, error) {
	t, ok := s.tickets[number]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return t, nil
}

func (s *ticketGateStub) ListByBooking(_ context.Context, bookingID string) ([]model.Ticket, error) {
	out := []model.Ticket{}
	for _, t := range s.tickets {
		if t.BookingID == bookingID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *ticketGateStub) ListByBookings(_ context.Context, ids []string) (map[string][]model.Ticket, error) {
	out := make(map[string][]model.Ticket)
	for _, id := range ids {
		tickets, _ := s.ListByBooking(context.Background(), id)
		out[id] = tickets
	}
	return out, nil
}

func (s *ticketGateStub) Redeem(_ context.Context, number string, at time.Time) (*model.Ticket, error) {
	t, ok := s.tickets[number]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	if t.IsUsed {
		return nil, repository.ErrTicketUsed
	}
	t.IsUsed = true
	t.UsedAt = &at
	return t, nil
}

type bookingFinderStub struct{ booking *model.Booking }

func (s *bookingFinderStub) GetByID(_ context.Context, id string) (*model.Booking, error) {
	if s.booking != nil && s.booking.ID == id {
		return s.booking, nil
	}
	return nil, repository.ErrBookingNotFound
}

func newTicketTestHandler(store *ticketGateStub, booking *model.Booking) *TicketHandler {
	return NewTicketHandler(store, &bookingFinderStub{booking: booking}, service.NewTicketService(store, nil))
}

func TestRedeemEndpointLifecycle(t *testing.T) {
	store := newTicketGateStub(&model.Ticket{
		TicketNumber: "TICKET-b-1-1",
		BookingID:    "b-1",
	})
	h := newTicketTestHandler(store, nil)

	// First redemption succeeds and stamps usage.
	rec := doJSON(t, h.Redeem, http.MethodPost, "/v1/tickets/redeem", `{"ticket_number":"TICKET-b-1-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Success bool         `json:"success"`
		Ticket  model.Ticket `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.True(t, out.Ticket.IsUsed)
	require.NotNil(t, out.Ticket.UsedAt)

	// Replaying the same ticket is a conflict, not a second success.
	rec = doJSON(t, h.Redeem, http.MethodPost, "/v1/tickets/redeem", `{"ticket_number":"TICKET-b-1-1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRedeemEndpointUnknownTicket(t *testing.T) {
	h := newTicketTestHandler(newTicketGateStub(), nil)

	rec := doJSON(t, h.Redeem, http.MethodPost, "/v1/tickets/redeem", `{"ticket_number":"TICKET-nope-1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRedeemEndpointRequiresNumber(t *testing.T) {
	h := newTicketTestHandler(newTicketGateStub(), nil)

	rec := doJSON(t, h.Redeem, http.MethodPost, "/v1/tickets/redeem", `{"ticket_number":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookupByNumberReturnsBooking(t *testing.T) {
	booking := &model.Booking{ID: "b-1", VisitorName: "Asha Rao"}
	store := newTicketGateStub(&model.Ticket{TicketNumber: "TICKET-b-1-1", BookingID: "b-1"})
	h := newTicketTestHandler(store, booking)

	rec := doJSON(t, h.Lookup, http.MethodGet, "/v1/tickets?ticket_number=TICKET-b-1-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Ticket  model.Ticket  `json:"ticket"`
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "TICKET-b-1-1", out.Ticket.TicketNumber)
	assert.Equal(t, "Asha Rao", out.Booking.VisitorName)
}

func TestLookupUnknownNumber(t *testing.T) {
	h := newTicketTestHandler(newTicketGateStub(), nil)

	rec := doJSON(t, h.Lookup, http.MethodGet, "/v1/tickets?ticket_number=TICKET-nope-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLookupRequiresAParameter(t *testing.T) {
	h := newTicketTestHandler(newTicketGateStub(), nil)

	rec := doJSON(t, h.Lookup, http.MethodGet, "/v1/tickets", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
