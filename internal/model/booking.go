package model

import "time"

// Payment status values for a booking.  A booking is created as pending
// and only ever moves forward: a verified gateway callback (or an explicit
// direct creation) marks it completed, and completed is never undone.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Booking records a visitor's request for N tickets of one category on
// one visit date, together with its payment lifecycle.
//
// Fields:
//  ID             – opaque UUID primary key.
//  VisitorName    – name the tickets are issued to.
//  Email          – contact address; also the lookup key for "my bookings".
//  Phone          – contact phone number.
//  VisitDate      – visit day as YYYY-MM-DD.
//  TicketCategory – pricing-table category name.
//  Quantity       – number of seats, 1..10.
//  TotalAmount    – rupees, always quantity × table rate, server-computed.
//  PaymentStatus  – pending | completed | failed.
//  OrderID        – gateway order id, set once payment is attempted.
//  PaymentID      – gateway payment id, set on verified callback.
//  Signature      – gateway callback signature, stored for audit.
//  CreatedAt      – creation timestamp (UTC).
//  UpdatedAt      – last update timestamp (UTC).
type Booking struct {
	ID             string    `json:"id"`                            // bookings.id
	VisitorName    string    `json:"visitor_name"`                  // bookings.visitor_name
	Email          string    `json:"email"`                         // bookings.email
	Phone          string    `json:"phone"`                         // bookings.phone
	VisitDate      string    `json:"visit_date"`                    // bookings.visit_date
	TicketCategory string    `json:"ticket_category"`               // bookings.ticket_category
	Quantity       int       `json:"quantity"`                      // bookings.quantity
	TotalAmount    int64     `json:"total_amount"`                  // bookings.total_amount
	PaymentStatus  string    `json:"payment_status"`                // bookings.payment_status
	OrderID        *string   `json:"razorpay_order_id,omitempty"`   // bookings.razorpay_order_id (nullable)
	PaymentID      *string   `json:"razorpay_payment_id,omitempty"` // bookings.razorpay_payment_id (nullable)
	Signature      *string   `json:"razorpay_signature,omitempty"`  // bookings.razorpay_signature (nullable)
	CreatedAt      time.Time `json:"created_at"`                    // bookings.created_at
	UpdatedAt      time.Time `json:"updated_at"`                    // bookings.updated_at
}
