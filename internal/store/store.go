// Package store persists parsed TXF documents in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/beetlebugorg/txf/pkg/txf"
)

// ErrNotFound is returned when a document id is unknown.
var ErrNotFound = errors.New("document not found")

// DocumentRecord is one imported document.
type DocumentRecord struct {
	ID          string
	Source      string
	Magic       string
	Version     string
	ObjectCount int
	ImportedAt  time.Time
}

// ObjectRecord is one stored object without its coordinates.
type ObjectRecord struct {
	Seq              int
	ClassCode        string
	LocalizationCode string
	Key              int
	Kind             string
	Title            string
	Line             int
}

// Statistics counts the rows of the main tables.
type Statistics struct {
	Documents   int
	Objects     int
	Coordinates int
	Semantics   int
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/txf.db",
	}
}

// SQLiteStore stores documents in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the database at cfg.Path and ensures the schema.
func Open(cfg Config) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		magic TEXT NOT NULL,
		version TEXT NOT NULL,
		object_count INTEGER NOT NULL,
		imported_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS passport (
		document_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (document_id, tag),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS objects (
		document_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		class_code TEXT NOT NULL,
		localization_code TEXT NOT NULL DEFAULT '',
		obj_key INTEGER NOT NULL,
		kind TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		line INTEGER NOT NULL,
		PRIMARY KEY (document_id, seq),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS object_fields (
		document_id TEXT NOT NULL,
		object_seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (document_id, object_seq, name),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS coordinates (
		document_id TEXT NOT NULL,
		object_seq INTEGER NOT NULL,
		idx INTEGER NOT NULL,
		x TEXT NOT NULL,
		y TEXT NOT NULL,
		PRIMARY KEY (document_id, object_seq, idx),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS semantics (
		document_id TEXT NOT NULL,
		object_seq INTEGER NOT NULL,
		code TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (document_id, object_seq, code),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_objects_class ON objects(class_code);
	CREATE INDEX IF NOT EXISTS idx_objects_key ON objects(document_id, obj_key);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveDocument stores doc in one transaction and returns its new id.
func (s *SQLiteStore) SaveDocument(ctx context.Context, source string, doc *txf.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (id, source, magic, version, object_count, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, source, doc.Magic(), doc.Version(), doc.ObjectCount(), time.Now().UTC()); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	for tag, value := range doc.Passport() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO passport (document_id, tag, value) VALUES (?, ?, ?)`,
			id, tag, value); err != nil {
			return "", fmt.Errorf("failed to insert passport %s: %w", tag, err)
		}
	}

	for seq, obj := range doc.Objects() {
		if err := insertObject(ctx, tx, id, seq, obj); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return id, nil
}

func insertObject(ctx context.Context, tx *sql.Tx, docID string, seq int, obj *txf.Object) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO objects (document_id, seq, class_code, localization_code, obj_key, kind, title, line)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, docID, seq, obj.ClassCode(), obj.LocalizationCode(), obj.Key(), obj.Kind().String(),
		obj.Title(), obj.Line()); err != nil {
		return fmt.Errorf("failed to insert object %d: %w", obj.Key(), err)
	}

	for name, value := range obj.Fields() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO object_fields (document_id, object_seq, name, value) VALUES (?, ?, ?, ?)`,
			docID, seq, name, value); err != nil {
			return fmt.Errorf("failed to insert field %s of object %d: %w", name, obj.Key(), err)
		}
	}

	for i, c := range obj.Coordinates() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO coordinates (document_id, object_seq, idx, x, y) VALUES (?, ?, ?, ?, ?)`,
			docID, seq, i, c.X, c.Y); err != nil {
			return fmt.Errorf("failed to insert coordinate of object %d: %w", obj.Key(), err)
		}
	}

	for code, value := range obj.Semantics() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO semantics (document_id, object_seq, code, value) VALUES (?, ?, ?, ?)`,
			docID, seq, code, value); err != nil {
			return fmt.Errorf("failed to insert semantic %s of object %d: %w", code, obj.Key(), err)
		}
	}
	return nil
}

// GetDocument returns one document record.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec DocumentRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, magic, version, object_count, imported_at
		FROM documents WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Source, &rec.Magic, &rec.Version, &rec.ObjectCount, &rec.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &rec, nil
}

// ListDocuments returns all documents, most recent import first.
func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]*DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, magic, version, object_count, imported_at
		FROM documents ORDER BY imported_at DESC, source
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []*DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Magic, &rec.Version, &rec.ObjectCount, &rec.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// Passport returns the stored passport of a document.
func (s *SQLiteStore) Passport(ctx context.Context, id string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT tag, value FROM passport WHERE document_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query passport: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var tag, value string
		if err := rows.Scan(&tag, &value); err != nil {
			return nil, fmt.Errorf("failed to scan passport: %w", err)
		}
		out[tag] = value
	}
	return out, rows.Err()
}

// ObjectsByClass returns the objects of a document with the given class
// code, in file order. An empty class returns every object.
func (s *SQLiteStore) ObjectsByClass(ctx context.Context, id, class string) ([]*ObjectRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, class_code, localization_code, obj_key, kind, title, line
		FROM objects
		WHERE document_id = ? AND (? = '' OR class_code = ?)
		ORDER BY seq
	`, id, class, class)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer rows.Close()

	var out []*ObjectRecord
	for rows.Next() {
		var rec ObjectRecord
		if err := rows.Scan(&rec.Seq, &rec.ClassCode, &rec.LocalizationCode, &rec.Key,
			&rec.Kind, &rec.Title, &rec.Line); err != nil {
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// DeleteDocument removes a document and all its rows.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Statistics returns row counts.
func (s *SQLiteStore) Statistics(ctx context.Context) (Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Statistics
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM documents),
			(SELECT COUNT(*) FROM objects),
			(SELECT COUNT(*) FROM coordinates),
			(SELECT COUNT(*) FROM semantics)
	`).Scan(&st.Documents, &st.Objects, &st.Coordinates, &st.Semantics)
	if err != nil {
		return st, fmt.Errorf("failed to query statistics: %w", err)
	}
	return st, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
