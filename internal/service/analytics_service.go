// Package service implements the booking pipeline: intake, ticket
// issuance, payment orchestration, notification and the analytics sink.
// Repositories are consumed through small interfaces declared here so the
// pipeline can be exercised against fakes.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/omarKhan56/MuseBot/internal/queue"
)

// AnalyticsStore appends events to the analytics table.
type AnalyticsStore interface {
	Insert(ctx context.Context, eventType string, eventData []byte) error
}

// Publisher pushes an event onto the message broker.  May be nil when no
// broker is configured.
type Publisher func(ctx context.Context, event queue.AnalyticsEventMessage) error

// AnalyticsService is the fire-and-forget event sink.  Every failure here
// is logged and swallowed: analytics must never fail the operation that
// emitted the event.
type AnalyticsService struct {
	store   AnalyticsStore
	publish Publisher
	now     func() time.Time
}

// NewAnalyticsService builds the sink.  publish may be nil.
func NewAnalyticsService(store AnalyticsStore, publish Publisher) *AnalyticsService {
	return &AnalyticsService{store: store, publish: publish, now: time.Now}
}

// Record appends one event to the analytics table and, when a broker is
// configured, publishes it on the analytics stream.  Best-effort on both
// legs; callers do not get an error to ignore.
func (s *AnalyticsService) Record(ctx context.Context, eventType string, data map[string]any) {
	if s == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("analytics: marshal %s event failed: %v", eventType, err)
		payload = nil
	}
	if s.store != nil {
		if err := s.store.Insert(ctx, eventType, payload); err != nil {
			log.Printf("analytics: insert %s event failed: %v", eventType, err)
		}
	}
	if s.publish != nil {
		msg := queue.AnalyticsEventMessage{
			Type:       eventType,
			Data:       data,
			OccurredAt: s.now().UTC().Format(time.RFC3339),
		}
		// The publisher logs its own failures; nothing more to do here.
		_ = s.publish(ctx, msg)
	}
}
