package repository

import (
	"context"
	"database/sql"
)

// AnalyticsRepo appends events to the analytics_events table.  The table
// is write-once from the pipeline's point of view; nothing in the booking
// flow ever reads it back.
type AnalyticsRepo struct {
	db *sql.DB
}

// NewAnalyticsRepo returns a new AnalyticsRepo bound to the given database.
func NewAnalyticsRepo(db *sql.DB) *AnalyticsRepo { return &AnalyticsRepo{db: db} }

// Insert appends one event.  eventData must be valid JSON (the column is
// typed JSON) or nil.
func (r *AnalyticsRepo) Insert(ctx context.Context, eventType string, eventData []byte) error {
	const q = `INSERT INTO analytics_events (event_type, event_data) VALUES (?, ?)`
	var data any
	if eventData != nil {
		data = string(eventData)
	}
	_, err := r.db.ExecContext(ctx, q, eventType, data)
	return err
}
