package model

import "time"

// Ticket is one redeemable admission credential tied to a booking.  A
// booking owns 1..quantity tickets, numbered deterministically as
// "TICKET-{bookingID}-{i}" with a 1-based sequence index.
//
// Fields:
//  ID           – primary key identifier.
//  BookingID    – owning booking.
//  TicketNumber – deterministic, human-auditable number, unique overall.
//  QRCode       – PNG data URL of the encoded identity claim, or the
//                 sentinel marker when encoding failed for this seat.
//  IsUsed       – redemption flag, transitions false → true exactly once.
//  UsedAt       – set on first redemption, never overwritten.
//  CreatedAt    – creation timestamp (UTC).
type Ticket struct {
	ID           uint64     `json:"id"`                // tickets.id
	BookingID    string     `json:"booking_id"`        // tickets.booking_id
	TicketNumber string     `json:"ticket_number"`     // tickets.ticket_number
	QRCode       string     `json:"qr_code"`           // tickets.qr_code
	IsUsed       bool       `json:"is_used"`           // tickets.is_used
	UsedAt       *time.Time `json:"used_at,omitempty"` // tickets.used_at (nullable)
	CreatedAt    time.Time  `json:"created_at"`        // tickets.created_at
}
