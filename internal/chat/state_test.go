package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarKhan56/MuseBot/internal/model"
	"github.com/omarKhan56/MuseBot/internal/pricing"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func TestBookThenConfirm(t *testing.T) {
	prices := pricing.Default()

	res := Reduce(StateIdle, Draft{}, "I want to book 2 child tickets", testNow, prices)
	assert.Equal(t, StateAwaitingConfirmation, res.State)
	assert.Equal(t, 2, res.Draft.Quantity)
	assert.Equal(t, pricing.CategoryChild, res.Draft.Category)
	assert.Empty(t, res.Draft.VisitDate)
	assert.Contains(t, res.Reply, "₹200") // 2 × 100, recomputed live
	assert.False(t, res.Handoff)

	res = Reduce(res.State, res.Draft, "yes", testNow, prices)
	assert.Equal(t, StateConfirmed, res.State)
	assert.True(t, res.Handoff)
	assert.Equal(t, 2, res.Draft.Quantity)
}

func TestBookThenCancel(t *testing.T) {
	prices := pricing.Default()

	res := Reduce(StateIdle, Draft{}, "I want to book 2 child tickets", testNow, prices)
	require.Equal(t, StateAwaitingConfirmation, res.State)

	res = Reduce(res.State, res.Draft, "cancel", testNow, prices)
	assert.Equal(t, StateCancelled, res.State)
	assert.Equal(t, Draft{}, res.Draft) // draft cleared
	assert.False(t, res.Handoff)
	assert.NotEmpty(t, res.Reply)
}

func TestSlotExtraction(t *testing.T) {
	prices := pricing.Default()

	cases := []struct {
		name      string
		utterance string
		quantity  int
		category  string
		visitDate string
	}{
		{"default quantity and category", "please book tickets", 1, pricing.CategoryAdult, ""},
		{"first integer wins", "reserve 3 tickets for 4 people", 3, pricing.CategoryAdult, ""},
		{"student keyword", "buy 2 student passes", 2, pricing.CategoryStudent, ""},
		{"senior keyword", "book a senior ticket", 1, pricing.CategorySenior, ""},
		{"vip keyword", "purchase 1 vip tour", 1, pricing.CategoryVIP, ""},
		{"last match wins", "book a child ticket, actually make it vip", 1, pricing.CategoryVIP, ""},
		{"tomorrow sets the date", "book 2 tickets for tomorrow", 2, pricing.CategoryAdult, "2026-03-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Reduce(StateIdle, Draft{}, tc.utterance, testNow, prices)
			assert.Equal(t, StateAwaitingConfirmation, res.State)
			assert.Equal(t, tc.quantity, res.Draft.Quantity)
			assert.Equal(t, tc.category, res.Draft.Category)
			assert.Equal(t, tc.visitDate, res.Draft.VisitDate)
		})
	}
}

func TestPreviousDateRetained(t *testing.T) {
	prices := pricing.Default()

	res := Reduce(StateIdle, Draft{}, "book 2 tickets for tomorrow", testNow, prices)
	require.Equal(t, "2026-03-15", res.Draft.VisitDate)

	// Re-scan without a date token keeps the collected date.
	res = Reduce(StateIdle, res.Draft, "book 3 vip tickets", testNow, prices)
	assert.Equal(t, "2026-03-15", res.Draft.VisitDate)
	assert.Equal(t, 3, res.Draft.Quantity)
	assert.Equal(t, pricing.CategoryVIP, res.Draft.Category)
}

func TestAffirmationMustBeExact(t *testing.T) {
	prices := pricing.Default()
	draft := Draft{Category: pricing.CategoryAdult, Quantity: 2}

	// A sentence containing "yes" is not an affirmation.
	res := Reduce(StateAwaitingConfirmation, draft, "yes please do that", testNow, prices)
	assert.Equal(t, StateAwaitingConfirmation, res.State)
	assert.False(t, res.Handoff)
	assert.Empty(t, res.Reply)

	for _, word := range []string{"yes", "proceed", "continue", "ok", " Yes "} {
		res := Reduce(StateAwaitingConfirmation, draft, word, testNow, prices)
		assert.Equal(t, StateConfirmed, res.State, "token %q", word)
		assert.True(t, res.Handoff)
	}
}

func TestCancellationBeatsIntent(t *testing.T) {
	prices := pricing.Default()
	draft := Draft{Category: pricing.CategoryChild, Quantity: 2}

	// "no" wins even though the utterance also carries a booking-intent
	// token; the utterance is not re-scanned in the same turn.
	res := Reduce(StateAwaitingConfirmation, draft, "no, I want to book something else", testNow, prices)
	assert.Equal(t, StateCancelled, res.State)
	assert.Equal(t, Draft{}, res.Draft)
}

func TestNoIntentNoTransition(t *testing.T) {
	prices := pricing.Default()

	res := Reduce(StateIdle, Draft{}, "what time do you open?", testNow, prices)
	assert.Equal(t, StateIdle, res.State)
	assert.Empty(t, res.Reply)
	assert.Equal(t, Draft{}, res.Draft)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	missing, err := store.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	sess := NewSession("s1")
	sess.Append(model.RoleUser, "hello", testNow)
	sess.State = StateAwaitingConfirmation
	sess.Draft = Draft{Category: pricing.CategoryVIP, Quantity: 1}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, StateAwaitingConfirmation, got.State)
	assert.Len(t, got.Messages, 1)

	// Mutating the copy must not leak back into the store.
	got.Append(model.RoleAssistant, "hi", testNow)
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Messages, 1)

	require.NoError(t, store.Delete(ctx, "s1"))
	gone, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
