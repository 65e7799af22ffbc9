// Package queue defines message payloads exchanged over the message broker
// and the fire-and-forget analytics stream built on top of it.
package queue

// AnalyticsEventMessage is published for every discrete pipeline event
// (booking created, payment completed, ticket used).  It carries enough
// information for downstream consumers to log or aggregate without
// querying the primary database.
type AnalyticsEventMessage struct {
	Type       string         `json:"event_type"`
	Data       map[string]any `json:"event_data"`
	OccurredAt string         `json:"occurred_at"`
}
