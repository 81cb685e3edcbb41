package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"funkit/internal/domain"
	"funkit/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const textContentType = "text/plain"

// Store implements ports.DocumentStore over a SQLite database. Bodies are
// stored as BLOBs; content_type decides whether a row is read back as text
// or binary.
type Store struct {
	db     *sql.DB
	dbPath string
}

var _ ports.DocumentStore = (*Store)(nil)
var _ ports.ParentResolver = (*Store)(nil)

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Store, error) {
	// Expand ~ in path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			body BLOB,
			content_type TEXT NOT NULL DEFAULT 'text/plain',
			parent_id INTEGER REFERENCES documents(id) ON DELETE SET NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_documents_parent ON documents(parent_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &Store{db: db, dbPath: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the document, or (nil, nil) when the id does not exist.
func (s *Store) Get(id int64) (*domain.Document, error) {
	var (
		title       string
		body        []byte
		contentType string
	)
	err := s.db.QueryRow(`
		SELECT title, body, content_type
		FROM documents WHERE id = ?
	`, id).Scan(&title, &body, &contentType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %d: %w", id, err)
	}
	return rowToDocument(id, title, body, contentType), nil
}

// ListAllIDs returns every document id in insertion order.
func (s *Store) ListAllIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT id FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Index returns an id/title/preview listing of all documents.
func (s *Store) Index() ([]domain.IndexEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, title, body, content_type
		FROM documents ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var entries []domain.IndexEntry
	for rows.Next() {
		var (
			id          int64
			title       string
			body        []byte
			contentType string
		)
		if err := rows.Scan(&id, &title, &body, &contentType); err != nil {
			return nil, err
		}
		doc := rowToDocument(id, title, body, contentType)
		entries = append(entries, domain.IndexEntry{
			ID:          id,
			Title:       doc.DisplayTitle(),
			Description: doc.Preview(),
		})
	}
	return entries, rows.Err()
}

// Add stores a new text document and returns its id.
func (s *Store) Add(title, body string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO documents (title, body, content_type) VALUES (?, ?, ?)
	`, title, []byte(body), textContentType)
	if err != nil {
		return 0, fmt.Errorf("failed to add document: %w", err)
	}
	return res.LastInsertId()
}

// AddBinary stores a new binary document and returns its id.
func (s *Store) AddBinary(title string, blob []byte) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO documents (title, body, content_type) VALUES (?, ?, ?)
	`, title, blob, "application/octet-stream")
	if err != nil {
		return 0, fmt.Errorf("failed to add document: %w", err)
	}
	return res.LastInsertId()
}

// Update replaces the body of an existing text document.
func (s *Store) Update(id int64, body string) error {
	res, err := s.db.Exec(`
		UPDATE documents SET body = ?, content_type = ? WHERE id = ?
	`, []byte(body), textContentType, id)
	if err != nil {
		return fmt.Errorf("failed to update document %d: %w", id, err)
	}
	return requireRow(res, id)
}

// Append adds text to the end of an existing text document body, inserting
// a newline separator when the body does not already end with one.
func (s *Store) Append(id int64, extra string) error {
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("no document with id %d", id)
	}
	if doc.IsBinary() {
		return fmt.Errorf("cannot append text to binary document %d", id)
	}
	body := doc.Body
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return s.Update(id, body+extra)
}

// Delete permanently removes a document.
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %d: %w", id, err)
	}
	return requireRow(res, id)
}

// Parent returns the explicit parent of a document. ok is false when the
// document has no parent set or does not exist.
func (s *Store) Parent(id int64) (int64, bool, error) {
	var parent sql.NullInt64
	err := s.db.QueryRow(`
		SELECT parent_id FROM documents WHERE id = ?
	`, id).Scan(&parent)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read parent of %d: %w", id, err)
	}
	if !parent.Valid {
		return 0, false, nil
	}
	return parent.Int64, true, nil
}

// SetParent records an explicit parent relation, or clears it when parent
// is zero.
func (s *Store) SetParent(id, parent int64) error {
	val := sql.NullInt64{Int64: parent, Valid: parent != 0}
	res, err := s.db.Exec(`UPDATE documents SET parent_id = ? WHERE id = ?`, val, id)
	if err != nil {
		return fmt.Errorf("failed to set parent of %d: %w", id, err)
	}
	return requireRow(res, id)
}

// rowToDocument normalizes a raw row into a domain.Document: text rows get
// a string body, everything else is carried as a blob.
func rowToDocument(id int64, title string, body []byte, contentType string) *domain.Document {
	doc := &domain.Document{ID: id, Title: title}
	if strings.HasPrefix(contentType, "text/") {
		doc.Body = string(body)
	} else {
		doc.Blob = body
		if doc.Blob == nil {
			doc.Blob = []byte{}
		}
	}
	return doc
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no document with id %d", id)
	}
	return nil
}
