// Package postgres holds the optional upload journal: an operational audit
// trail of accepted uploads. Only metadata is recorded (filename, size,
// shape, timestamps); neither the dataset contents nor any analysis results
// are persisted.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"datalens/domain/core"
)

// UploadRecord is one journal row.
type UploadRecord struct {
	ID          core.UploadID `db:"id"`
	SessionID   core.SessionID `db:"session_id"`
	Filename    string        `db:"filename"`
	FileSize    int64         `db:"file_size"`
	RowCount    int           `db:"row_count"`
	ColumnCount int           `db:"column_count"`
	UploadedAt  time.Time     `db:"uploaded_at"`
}

// Journal records accepted uploads in Postgres.
type Journal struct {
	db *sqlx.DB
}

// OpenJournal connects to Postgres and ensures the journal table exists.
func OpenJournal(databaseURL string) (*Journal, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS upload_journal (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		file_size BIGINT NOT NULL,
		row_count INTEGER NOT NULL,
		column_count INTEGER NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure journal table: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record inserts one journal row.
func (j *Journal) Record(ctx context.Context, rec UploadRecord) error {
	query := `INSERT INTO upload_journal (
		id, session_id, filename, file_size, row_count, column_count, uploaded_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := j.db.ExecContext(ctx, query,
		rec.ID, rec.SessionID, rec.Filename, rec.FileSize, rec.RowCount, rec.ColumnCount, rec.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}
	return nil
}

// Recent returns the most recent journal rows, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]UploadRecord, error) {
	if limit < 1 {
		limit = 10
	}
	var records []UploadRecord
	query := `SELECT id, session_id, filename, file_size, row_count, column_count, uploaded_at
		FROM upload_journal ORDER BY uploaded_at DESC LIMIT $1`
	if err := j.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return records, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}
