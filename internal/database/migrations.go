package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Schema is the run ledger schema. Statements are idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS verification_runs (
		id UUID PRIMARY KEY,
		target_url TEXT NOT NULL,
		engine VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL,
		failed_step INTEGER NOT NULL DEFAULT 0,
		failed_action VARCHAR(16),
		failure_message TEXT,
		screenshots TEXT[] NOT NULL DEFAULT '{}',
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS idx_verification_runs_started_at ON verification_runs(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_verification_runs_status ON verification_runs(status);
	`

// RunMigrations creates the run ledger tables on the global connection
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Migrate applies Schema to db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create verification_runs table: %w", err)
	}
	return nil
}
