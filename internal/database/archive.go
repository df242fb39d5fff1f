package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/dexview/internal/model"
)

// FileName is the archive file created inside the archive directory.
const FileName = "dexview.db"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("database: not found")

// Archive is an SQLite export archive.
type Archive struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default archive options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the archive in dir.
func Open(dir string, opts Options) (*Archive, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("archive not found at %s: %w", dbPath, ErrNotFound)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check archive path: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return a, nil
}

// Path returns the archive file path.
func (a *Archive) Path() string {
	return a.dbPath
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (a *Archive) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		name TEXT PRIMARY KEY,
		detail_url TEXT NOT NULL,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		json TEXT NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_records_name ON records(name);

	CREATE TABLE IF NOT EXISTS details (
		id INTEGER PRIMARY KEY,
		json TEXT NOT NULL
	);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// SaveEntries stores catalog entries in one transaction, keeping their
// order. Existing entries with the same name are replaced.
func (a *Archive) SaveEntries(ctx context.Context, entries []model.CatalogEntry) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after commit

	var base int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM entries`).Scan(&base); err != nil {
		return fmt.Errorf("failed to read entry position: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO entries (name, detail_url, position) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET detail_url = excluded.detail_url
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Name, e.DetailURL, base+i); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.Name, err)
		}
	}

	return tx.Commit()
}

// ListEntries returns the stored entries in insertion order.
func (a *Archive) ListEntries(ctx context.Context) ([]model.CatalogEntry, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT name, detail_url FROM entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []model.CatalogEntry
	for rows.Next() {
		var e model.CatalogEntry
		if err := rows.Scan(&e.Name, &e.DetailURL); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveRecord inserts or replaces a record.
func (a *Archive) SaveRecord(ctx context.Context, record *model.CreatureRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	query := `
	INSERT INTO records (id, name, json) VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		json = excluded.json,
		fetched_at = CURRENT_TIMESTAMP
	`
	if _, err := a.db.ExecContext(ctx, query, record.ID, record.Name, string(data)); err != nil {
		return fmt.Errorf("failed to save record %d: %w", record.ID, err)
	}
	return nil
}

// StoredRecord is a record with its archive metadata.
type StoredRecord struct {
	Record    *model.CreatureRecord
	FetchedAt time.Time
}

// GetRecord returns the record with id, or ErrNotFound.
func (a *Archive) GetRecord(ctx context.Context, id int) (*StoredRecord, error) {
	var data, fetchedAt string
	err := a.db.QueryRowContext(ctx, `SELECT json, fetched_at FROM records WHERE id = ?`, id).Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %d: %w", id, err)
	}

	var r model.CreatureRecord
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("failed to parse record %d: %w", id, err)
	}
	return &StoredRecord{Record: &r, FetchedAt: parseTimestamp(fetchedAt)}, nil
}

// ListRecords returns all records ordered by id.
func (a *Archive) ListRecords(ctx context.Context) ([]*model.CreatureRecord, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT json FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*model.CreatureRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var r model.CreatureRecord
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

// CountRecords returns the number of stored records.
func (a *Archive) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// SaveDetail inserts or replaces an assembled detail view.
func (a *Archive) SaveDetail(ctx context.Context, view *model.DetailView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to serialize detail: %w", err)
	}

	query := `
	INSERT INTO details (id, json) VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET json = excluded.json
	`
	if _, err := a.db.ExecContext(ctx, query, view.ID, string(data)); err != nil {
		return fmt.Errorf("failed to save detail %d: %w", view.ID, err)
	}
	return nil
}

// GetDetail returns the stored detail view with id, or ErrNotFound.
// Only the serialized display fields are restored.
func (a *Archive) GetDetail(ctx context.Context, id int) (*model.DetailView, error) {
	var data string
	err := a.db.QueryRowContext(ctx, `SELECT json FROM details WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("detail %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get detail %d: %w", id, err)
	}

	var v model.DetailView
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("failed to parse detail %d: %w", id, err)
	}
	return &v, nil
}

// timestampFormats lists formats SQLite may return for DATETIME columns.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses s with the first matching format, or returns the
// zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
