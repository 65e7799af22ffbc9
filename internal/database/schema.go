package database

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates the three application tables when they do not exist
// yet.  The UNIQUE key on tickets.ticket_number makes re-issuing tickets
// for the same booking non-duplicating: a retried seat insert fails on the
// duplicate key and is skipped by the issuance engine.
func InitSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
			id CHAR(36) PRIMARY KEY,
			visitor_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(32) NOT NULL,
			visit_date CHAR(10) NOT NULL,
			ticket_category VARCHAR(64) NOT NULL,
			quantity INT NOT NULL,
			total_amount BIGINT NOT NULL,
			payment_status ENUM('pending','completed','failed') NOT NULL DEFAULT 'pending',
			razorpay_order_id VARCHAR(64) NULL,
			razorpay_payment_id VARCHAR(64) NULL,
			razorpay_signature VARCHAR(128) NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_bookings_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			booking_id CHAR(36) NOT NULL,
			ticket_number VARCHAR(64) NOT NULL,
			qr_code MEDIUMTEXT NOT NULL,
			is_used BOOLEAN NOT NULL DEFAULT FALSE,
			used_at DATETIME NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_tickets_number (ticket_number),
			KEY idx_tickets_booking (booking_id),
			CONSTRAINT fk_tickets_booking FOREIGN KEY (booking_id) REFERENCES bookings(id)
		)`,
		`CREATE TABLE IF NOT EXISTS analytics_events (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			event_type VARCHAR(64) NOT NULL,
			event_data JSON NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
