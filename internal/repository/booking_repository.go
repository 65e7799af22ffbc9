package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/omarKhan56/MuseBot/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  All timestamp
// fields are stored in UTC.  Bookings are independent rows keyed by a
// UUID, so concurrent bookings from different visitors never contend.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, visitor_name, email, phone, visit_date, ticket_category,
    quantity, total_amount, payment_status, razorpay_order_id, razorpay_payment_id,
    razorpay_signature, created_at, updated_at`

// Create inserts a new booking row.  The caller supplies the UUID id; the
// row is queried back afterwards to populate the database-generated
// timestamps on the provided struct.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings
        (id, visitor_name, email, phone, visit_date, ticket_category, quantity, total_amount, payment_status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		b.ID, b.VisitorName, b.Email, b.Phone, b.VisitDate,
		b.TicketCategory, b.Quantity, b.TotalAmount, b.PaymentStatus,
	); err != nil {
		return err
	}
	// Query back the full row to populate timestamps and defaults
	fresh, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *fresh
	return nil
}

// GetByID returns a single booking.  ErrBookingNotFound is returned when
// the id does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// ListByEmail returns all bookings for the given email address ordered
// newest first.  When no bookings exist an empty slice is returned.
func (r *BookingRepo) ListByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE email = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// MarkCompleted transitions a booking's payment status to completed and
// records the three gateway identifiers.  The status guard keeps a
// completed booking from ever moving backward; re-running the update for
// an already-completed booking is a no-op success.
func (r *BookingRepo) MarkCompleted(ctx context.Context, id, orderID, paymentID, signature string) error {
	const q = `UPDATE bookings
        SET payment_status = ?, razorpay_order_id = ?, razorpay_payment_id = ?, razorpay_signature = ?
        WHERE id = ? AND payment_status <> ?`
	res, err := r.db.ExecContext(ctx, q, model.PaymentCompleted, orderID, paymentID, signature, id, model.PaymentCompleted)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the booking does not exist or it is already completed.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// CountCompleted returns the number of bookings with completed payment.
func (r *BookingRepo) CountCompleted(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE payment_status = ?`, model.PaymentCompleted).Scan(&n)
	return n, err
}

// RevenueCompleted returns the summed total_amount over completed bookings.
func (r *BookingRepo) RevenueCompleted(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE payment_status = ?`,
		model.PaymentCompleted).Scan(&total)
	return total, err
}

// CountCompletedSince returns the number of completed bookings created at
// or after the given instant.
func (r *BookingRepo) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE payment_status = ? AND created_at >= ?`,
		model.PaymentCompleted, since).Scan(&n)
	return n, err
}

// PopularCategory returns the most frequently booked category among
// completed bookings.  sql.ErrNoRows is returned when there are none.
func (r *BookingRepo) PopularCategory(ctx context.Context) (string, error) {
	const q = `SELECT ticket_category FROM bookings
        WHERE payment_status = ?
        GROUP BY ticket_category
        ORDER BY COUNT(*) DESC, ticket_category ASC
        LIMIT 1`
	var category string
	err := r.db.QueryRowContext(ctx, q, model.PaymentCompleted).Scan(&category)
	return category, err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	var orderID, paymentID, signature sql.NullString
	if err := row.Scan(
		&b.ID, &b.VisitorName, &b.Email, &b.Phone, &b.VisitDate, &b.TicketCategory,
		&b.Quantity, &b.TotalAmount, &b.PaymentStatus, &orderID, &paymentID,
		&signature, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if orderID.Valid {
		v := orderID.String
		b.OrderID = &v
	}
	if paymentID.Valid {
		v := paymentID.String
		b.PaymentID = &v
	}
	if signature.Valid {
		v := signature.String
		b.Signature = &v
	}
	return &b, nil
}
