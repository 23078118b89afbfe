package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed deliveries.sql
var deliveriesSchema string

// SQLiteDeliveryLog records relay outcomes in a local SQLite database
type SQLiteDeliveryLog struct {
	db *sql.DB
}

// OpenDeliveryLog creates or opens the delivery database at path.
// ":memory:" gives a throwaway log.
func OpenDeliveryLog(path string) (*SQLiteDeliveryLog, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One writer; also keeps a :memory: database alive across calls
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(deliveriesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteDeliveryLog{db: db}, nil
}

// Ensure it implements the interface
var _ ports.DeliveryLog = (*SQLiteDeliveryLog)(nil)

// Close closes the database connection
func (l *SQLiteDeliveryLog) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record inserts a delivery. Re-recording an id is ignored.
func (l *SQLiteDeliveryLog) Record(ctx context.Context, d domain.Delivery) error {
	recipients, err := json.Marshal(d.Recipients)
	if err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}

	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO deliveries
		(id, recipients, subject, filename, message_id, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		d.ID,
		string(recipients),
		d.Subject,
		d.Filename,
		d.MessageID,
		string(d.Status),
		d.Error,
		createdAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}
	return nil
}

// Recent returns up to limit deliveries, newest first
func (l *SQLiteDeliveryLog) Recent(ctx context.Context, limit int) ([]domain.Delivery, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, recipients, subject, filename, message_id, status, error, created_at
		FROM deliveries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var out []domain.Delivery
	for rows.Next() {
		var (
			d          domain.Delivery
			recipients string
			status     string
			createdAt  int64
		)
		if err := rows.Scan(&d.ID, &recipients, &d.Subject, &d.Filename, &d.MessageID, &status, &d.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		if err := json.Unmarshal([]byte(recipients), &d.Recipients); err != nil {
			return nil, fmt.Errorf("decode recipients for %s: %w", d.ID, err)
		}
		d.Status = domain.DeliveryStatus(status)
		d.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}

	return out, nil
}
