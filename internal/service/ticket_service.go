package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/omarKhan56/MuseBot/internal/model"
)

// QRSentinel is stored in place of a scannable encoding when QR
// generation fails for a seat.  The ticket row is still written so the
// ticket count reaches the booking's quantity.
const QRSentinel = "QR_CODE_ERROR"

// TicketStore is the persistence surface the issuance engine needs.
type TicketStore interface {
	Create(ctx context.Context, t *model.Ticket) error
	Redeem(ctx context.Context, number string, at time.Time) (*model.Ticket, error)
	ListByBookings(ctx context.Context, bookingIDs []string) (map[string][]model.Ticket, error)
}

// QREncoder renders a payload string into a scannable PNG.
type QREncoder func(data string) ([]byte, error)

// TicketService mints and redeems tickets.
type TicketService struct {
	store     TicketStore
	encode    QREncoder
	analytics *AnalyticsService
	now       func() time.Time
}

// NewTicketService builds the issuance engine with the default QR encoder
// (medium recovery level, 256px).
func NewTicketService(store TicketStore, analytics *AnalyticsService) *TicketService {
	return &TicketService{
		store: store,
		encode: func(data string) ([]byte, error) {
			return qrcode.Encode(data, qrcode.Medium, 256)
		},
		analytics: analytics,
		now:       time.Now,
	}
}

// qrPayload is the identity claim embedded in each ticket's QR code.
type qrPayload struct {
	TicketNumber string `json:"ticketNumber"`
	BookingID    string `json:"bookingId"`
	VisitorName  string `json:"visitorName"`
	VisitDate    string `json:"visitDate"`
}

// Issue mints one ticket per purchased seat, sequentially for indices
// 1..quantity so numbering stays deterministic.  A QR failure for one
// seat substitutes the sentinel marker and never aborts the batch; a
// persistence failure for one seat is logged and that seat is skipped
// while the rest continue.  The returned slice holds the successfully
// persisted tickets and may be shorter than quantity.
func (s *TicketService) Issue(ctx context.Context, b *model.Booking) []model.Ticket {
	issued := make([]model.Ticket, 0, b.Quantity)
	for i := 1; i <= b.Quantity; i++ {
		number := fmt.Sprintf("TICKET-%s-%d", b.ID, i)
		payload, _ := json.Marshal(qrPayload{
			TicketNumber: number,
			BookingID:    b.ID,
			VisitorName:  b.VisitorName,
			VisitDate:    b.VisitDate,
		})
		ticket := model.Ticket{
			BookingID:    b.ID,
			TicketNumber: number,
			QRCode:       s.encodeDataURL(string(payload)),
		}
		if err := s.store.Create(ctx, &ticket); err != nil {
			log.Printf("tickets: persist %s failed: %v", number, err)
			continue
		}
		issued = append(issued, ticket)
	}
	return issued
}

// encodeDataURL renders the payload as a PNG data URL, or the sentinel
// marker when encoding fails.
func (s *TicketService) encodeDataURL(payload string) string {
	png, err := s.encode(payload)
	if err != nil {
		log.Printf("tickets: qr encode failed: %v", err)
		return QRSentinel
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// Redeem marks one ticket used by ticket number.  The first redemption
// wins; a second attempt surfaces repository.ErrTicketUsed to the caller.
func (s *TicketService) Redeem(ctx context.Context, number string) (*model.Ticket, error) {
	ticket, err := s.store.Redeem(ctx, number, s.now().UTC())
	if err != nil {
		return nil, err
	}
	s.analytics.Record(ctx, model.EventTicketUsed, map[string]any{"ticket_number": number})
	return ticket, nil
}

// ListByBookings exposes the store's grouped lookup for the booking list
// endpoint.
func (s *TicketService) ListByBookings(ctx context.Context, bookingIDs []string) (map[string][]model.Ticket, error) {
	return s.store.ListByBookings(ctx, bookingIDs)
}
