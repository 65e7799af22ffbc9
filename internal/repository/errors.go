// Package repository implements raw-SQL persistence for bookings, tickets
// and analytics events.  Sentinel errors defined here let handlers map
// failure scenarios to HTTP statuses without inspecting SQL details.
package repository

import "errors"

// ErrBookingNotFound is returned when a booking id does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrTicketNotFound is returned when a ticket number does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrTicketUsed is returned when redeeming a ticket that has already been
// redeemed.  First redemption wins; used_at is never overwritten.  Handlers
// should translate this into an HTTP 409 response.
var ErrTicketUsed = errors.New("ticket already used")
