package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/omarKhan56/MuseBot/internal/model"
)

// TicketRepo provides CRUD operations for tickets.  Tickets are owned
// exclusively by one booking and are inserted one row at a time: the
// issuance engine deliberately treats per-seat failures as best-effort,
// so there is no transactional batch here.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = `id, booking_id, ticket_number, qr_code, is_used, used_at, created_at`

// Create inserts a single ticket row and populates the generated id and
// timestamps on the provided struct.  The UNIQUE key on ticket_number
// rejects duplicate issuance for the same (booking, sequence) pair.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	const q = `INSERT INTO tickets (booking_id, ticket_number, qr_code) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.BookingID, t.TicketNumber, t.QRCode)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	fresh, err := r.GetByNumber(ctx, t.TicketNumber)
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}

// GetByNumber returns a single ticket.  ErrTicketNotFound is returned
// when the ticket number does not exist.
func (r *TicketRepo) GetByNumber(ctx context.Context, number string) (*model.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE ticket_number = ?`, number)
	t, err := scanTicket(row)
	if err == sql.ErrNoRows {
		return nil, ErrTicketNotFound
	}
	return t, err
}

// ListByBooking returns all tickets belonging to a booking in sequence
// order (insertion order matches the 1..N seat index).
func (r *TicketRepo) ListByBooking(ctx context.Context, bookingID string) ([]model.Ticket, error) {
	const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE booking_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// ListByBookings loads the tickets of many bookings in a single query and
// groups them by booking id.  Passing an empty slice returns an empty map.
func (r *TicketRepo) ListByBookings(ctx context.Context, bookingIDs []string) (map[string][]model.Ticket, error) {
	grouped := make(map[string][]model.Ticket)
	if len(bookingIDs) == 0 {
		return grouped, nil
	}
	placeholders := make([]string, 0, len(bookingIDs))
	args := make([]any, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT ` + ticketColumns + ` FROM tickets
        WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
        ORDER BY booking_id, id ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		grouped[t.BookingID] = append(grouped[t.BookingID], *t)
	}
	return grouped, rows.Err()
}

// Redeem marks a ticket used.  The is_used guard makes the transition
// atomic and one-way: the first redemption wins and sets used_at, any
// later attempt returns ErrTicketUsed without touching the row.
func (r *TicketRepo) Redeem(ctx context.Context, number string, at time.Time) (*model.Ticket, error) {
	const q = `UPDATE tickets SET is_used = TRUE, used_at = ? WHERE ticket_number = ? AND is_used = FALSE`
	res, err := r.db.ExecContext(ctx, q, at, number)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Distinguish "never existed" from "already redeemed".
		t, err := r.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if t.IsUsed {
			return nil, ErrTicketUsed
		}
		return nil, ErrTicketNotFound
	}
	return r.GetByNumber(ctx, number)
}

func scanTicket(row rowScanner) (*model.Ticket, error) {
	var t model.Ticket
	var usedAt sql.NullTime
	if err := row.Scan(
		&t.ID, &t.BookingID, &t.TicketNumber, &t.QRCode, &t.IsUsed, &usedAt, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if usedAt.Valid {
		v := usedAt.Time
		t.UsedAt = &v
	}
	return &t, nil
}
