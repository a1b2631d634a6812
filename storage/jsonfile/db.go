package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

/* DB is a single JSON document holding every collection of the service:
 *
 *   {"books": [...], "users": [...], "sequences": {"books": 3, "users": 1}}
 *
 * Every mutation rewrites the whole file, so access is serialized per file:
 * View holds the read lock, Update holds the write lock for the complete
 * read-modify-write cycle.
 */
type DB struct {
	path string
	mu   sync.RWMutex
}

const sequencesKey = "sequences"

var defaultCollections = []string{"books", "users"}

// Open returns a DB on path, creating the file with empty collections if it does not exist
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("database file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}
	db := &DB{path: path}
	_, err := os.Stat(path)
	if err == nil {
		return db, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking database file: %w", err)
	}
	tx := newTx(nil)
	for _, c := range defaultCollections {
		tx.doc[c] = json.RawMessage("[]")
	}
	if err := db.write(tx); err != nil {
		return nil, fmt.Errorf("initializing database file: %w", err)
	}
	return db, nil
}

// Path returns the file backing the database
func (db *DB) Path() string {
	return db.path
}

// View runs fn against a snapshot of the file
func (db *DB) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	tx, err := db.read()
	if err != nil {
		return err
	}
	return fn(tx)
}

// Update runs fn and writes the file back if fn stored anything and returned nil
func (db *DB) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	tx, err := db.read()
	if err != nil {
		return err
	}
	tx.writable = true
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty {
		return nil
	}
	return db.write(tx)
}

func (db *DB) read() (*Tx, error) {
	data, err := os.ReadFile(db.path)
	if err != nil {
		return nil, fmt.Errorf("reading database file: %w", err)
	}
	doc := make(map[string]json.RawMessage)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing database file: %w", err)
		}
	}
	tx := newTx(doc)
	if raw, ok := doc[sequencesKey]; ok {
		if err := json.Unmarshal(raw, &tx.seqs); err != nil {
			return nil, fmt.Errorf("parsing sequences: %w", err)
		}
		if tx.seqs == nil {
			tx.seqs = make(map[string]int64)
		}
	}
	return tx, nil
}

// write replaces the file through a temp file + rename so readers never see a partial document
func (db *DB) write(tx *Tx) error {
	if len(tx.seqs) > 0 {
		raw, err := json.Marshal(tx.seqs)
		if err != nil {
			return fmt.Errorf("encoding sequences: %w", err)
		}
		tx.doc[sequencesKey] = raw
	}
	data, err := json.MarshalIndent(tx.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding database file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(db.path), ".db-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), db.path); err != nil {
		return fmt.Errorf("replacing database file: %w", err)
	}
	return nil
}

// Tx is the decoded file during one View or Update call
type Tx struct {
	doc      map[string]json.RawMessage
	seqs     map[string]int64
	writable bool
	dirty    bool
}

func newTx(doc map[string]json.RawMessage) *Tx {
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}
	return &Tx{doc: doc, seqs: make(map[string]int64)}
}

var ErrReadOnly = errors.New("transaction is read-only")

// Load decodes a collection into dst; a missing collection leaves dst untouched
func (tx *Tx) Load(collection string, dst any) error {
	raw, ok := tx.doc[collection]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", collection, err)
	}
	return nil
}

// Store replaces a collection with src
func (tx *Tx) Store(collection string, src any) error {
	if !tx.writable {
		return ErrReadOnly
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}
	tx.doc[collection] = raw
	tx.dirty = true
	return nil
}

/* NextID returns the next sequential identifier for a collection.
 * It is one past the larger of currentMax and the collection's high-water mark,
 * and the mark moves forward, so an id freed by a delete is never handed out again.
 */
func (tx *Tx) NextID(collection string, currentMax int64) (int64, error) {
	if !tx.writable {
		return 0, ErrReadOnly
	}
	next := currentMax
	if seq := tx.seqs[collection]; seq > next {
		next = seq
	}
	next++
	tx.seqs[collection] = next
	tx.dirty = true
	return next, nil
}
