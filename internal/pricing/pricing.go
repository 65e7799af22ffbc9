// Package pricing defines the museum's static price list.  The table is
// built once at startup and handed explicitly to every component that
// needs to price tickets (booking intake and the chat assistant); nothing
// mutates it afterwards.
package pricing

// Ticket category names as shown to visitors.  These strings are also the
// values stored in bookings.ticket_category, so they must stay stable.
const (
	CategoryAdult   = "General Admission (Adult)"
	CategoryChild   = "General Admission (Child)"
	CategoryStudent = "Student (with ID)"
	CategorySenior  = "Senior Citizen"
	CategoryVIP     = "VIP Tour"
)

// Table maps a ticket category to its unit price in rupees.
type Table map[string]int64

// Default returns the current price list.
func Default() Table {
	return Table{
		CategoryAdult:   200,
		CategoryChild:   100,
		CategoryStudent: 150,
		CategorySenior:  100,
		CategoryVIP:     500,
	}
}

// Rate returns the unit price for a category and whether the category is
// a recognised key of the table.
func (t Table) Rate(category string) (int64, bool) {
	rate, ok := t[category]
	return rate, ok
}

// Total computes unit price times quantity.  Unknown categories return
// (0, false); totals are never trusted from the client, so this is the
// single place booking amounts come from.
func (t Table) Total(category string, quantity int) (int64, bool) {
	rate, ok := t[category]
	if !ok {
		return 0, false
	}
	return rate * int64(quantity), true
}
