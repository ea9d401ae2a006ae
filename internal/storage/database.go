package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS history (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"session_id" TEXT NOT NULL,
		"question" TEXT NOT NULL,
		"response" TEXT NOT NULL,
		"report" TEXT NOT NULL,
		"created_at" INTEGER NOT NULL
);`

const createHistoryIndex = `CREATE INDEX IF NOT EXISTS history_session ON history(session_id, id);`

// OpenMemory opens a private in-memory SQLite database. Every pooled
// connection would get its own empty database, so the pool is pinned to one
// connection that lives as long as the process.
func OpenMemory(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("OpenMemory(): failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenMemory(): failed to connect to database: %w", err)
	}

	for _, stmt := range []string{createHistoryTable, createHistoryIndex} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("OpenMemory(): failed to create schema: %w", err)
		}
	}
	return db, nil
}
