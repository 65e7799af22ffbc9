// Package chat implements the conversational booking state machine: a
// per-session, turn-by-turn reducer that detects booking intent in free
// text, fills draft slots, asks for confirmation and finally hands the
// draft off to the structured booking form.  The LLM reply shown to the
// visitor is advisory only; nothing here trusts the dialog text for
// booking data.
package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/omarKhan56/MuseBot/internal/pricing"
)

// State is the dialog position of a chat session.
type State string

const (
	StateIdle                 State = "IDLE"
	StateCollecting           State = "COLLECTING"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateConfirmed            State = "CONFIRMED" // terminal: draft seeds the booking form
	StateCancelled            State = "CANCELLED" // terminal: draft discarded
)

// Draft is the in-progress, not-yet-confirmed booking data.  All slots
// stay optional until the visitor confirms.
type Draft struct {
	Category  string `json:"category,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	VisitDate string `json:"visit_date,omitempty"` // YYYY-MM-DD
}

// Result is the outcome of reducing one user utterance: the next state
// and draft, at most one synthesized assistant message, and whether
// control hands off to the structured form.
type Result struct {
	State   State
	Draft   Draft
	Reply   string
	Handoff bool
}

var (
	cancelTokens = []string{"cancel", "no", "edit"}
	affirmTokens = map[string]bool{"yes": true, "proceed": true, "continue": true, "ok": true}
	intentTokens = []string{"book", "reserve", "buy", "purchase"}

	intRe = regexp.MustCompile(`\d+`)
)

// Reduce applies one user utterance to the session.  It is a pure
// function: the clock is passed in so "tomorrow" is deterministic in
// tests.  Each call yields exactly one transition (or none) and at most
// one synthesized assistant message.
func Reduce(state State, draft Draft, utterance string, now time.Time, prices pricing.Table) Result {
	text := strings.ToLower(strings.TrimSpace(utterance))

	if state == StateAwaitingConfirmation {
		// Cancellation wins over everything else, and the utterance is
		// not re-scanned for intent in the same turn.
		for _, tok := range cancelTokens {
			if strings.Contains(text, tok) {
				return Result{
					State: StateCancelled,
					Reply: "No problem, I've discarded that booking. Let me know if you'd like to start over.",
				}
			}
		}
		// Affirmation must be the whole utterance, not a substring.
		if affirmTokens[text] {
			return Result{
				State:   StateConfirmed,
				Draft:   draft,
				Reply:   "Great! Please fill in your details in the booking form to finish.",
				Handoff: true,
			}
		}
		// Neither: keep waiting for a yes / edit / cancel.
		return Result{State: state, Draft: draft}
	}

	if hasIntent(text) {
		draft = extractSlots(text, draft, now)
		return Result{
			State: StateAwaitingConfirmation,
			Draft: draft,
			Reply: proposal(draft, prices),
		}
	}

	// No intent detected: no transition, no synthesized message.
	return Result{State: state, Draft: draft}
}

func hasIntent(text string) bool {
	for _, tok := range intentTokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// extractSlots fills the draft from one lower-cased utterance using the
// fixed rule list: first integer literal is the quantity (default 1),
// category keywords are checked in a fixed scan order with last match
// winning, and the literal token "tomorrow" sets the visit date to the
// next day.  A previously collected date is retained otherwise.
func extractSlots(text string, draft Draft, now time.Time) Draft {
	quantity := 1
	if m := intRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			quantity = n
		}
	}
	draft.Quantity = quantity

	category := pricing.CategoryAdult
	if strings.Contains(text, "child") {
		category = pricing.CategoryChild
	}
	if strings.Contains(text, "student") {
		category = pricing.CategoryStudent
	}
	if strings.Contains(text, "senior") {
		category = pricing.CategorySenior
	}
	if strings.Contains(text, "vip") {
		category = pricing.CategoryVIP
	}
	draft.Category = category

	if strings.Contains(text, "tomorrow") {
		draft.VisitDate = now.AddDate(0, 0, 1).Format("2006-01-02")
	}
	return draft
}

// proposal presents the draft back to the visitor with a live-computed
// total and an explicit yes / edit / cancel prompt.
func proposal(draft Draft, prices pricing.Table) string {
	day := draft.VisitDate
	if day == "" {
		day = "a date you can pick on the form"
	}
	total, _ := prices.Total(draft.Category, draft.Quantity)
	return fmt.Sprintf(
		"Here's what I have: %d x %s for %s, ₹%d total. Reply \"yes\" to continue, or \"edit\"/\"cancel\" to change it.",
		draft.Quantity, draft.Category, day, total,
	)
}
