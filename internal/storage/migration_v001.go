package storage

import "database/sql"

// migrateV001 creates the record tables and their time indexes. Every
// statement uses IF NOT EXISTS for idempotency and sticks to types both
// SQLite and PostgreSQL accept.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS events (
			position    INTEGER PRIMARY KEY,
			time        DOUBLE PRECISION,
			lat         DOUBLE PRECISION,
			lon         DOUBLE PRECISION,
			title       TEXT NOT NULL DEFAULT '',
			category    TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			images      TEXT NOT NULL DEFAULT '[]',
			refs        TEXT NOT NULL DEFAULT '[]'
		)`,

		`CREATE TABLE IF NOT EXISTS routes (
			position    INTEGER PRIMARY KEY,
			time        DOUBLE PRECISION,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			path        TEXT NOT NULL DEFAULT '[]',
			refs        TEXT NOT NULL DEFAULT '[]'
		)`,

		// ── Indexes ─────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_events_time ON events(time)`,
		`CREATE INDEX IF NOT EXISTS idx_routes_time ON routes(time)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
