// Package sqlite persists snapshots in a SQLite database, one table per
// entity collection with the entity stored as a JSON body.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DefaultFile is the database file name inside the data directory
const DefaultFile = "coffer.db"

const versionKey = "version"

// Store persists snapshots in SQLite
type Store struct {
	path string
}

// New creates a SQLite snapshot store for the database at path
func New(path string) *Store {
	return &Store{path: path}
}

var _ usecase.SnapshotStore = (*Store)(nil)

// Location returns the database path
func (s *Store) Location() string {
	return s.path
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", s.path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// Exists reports whether a snapshot was saved to the database
func (s *Store) Exists(ctx context.Context) (bool, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = db.Close() }()

	_, err = readVersion(ctx, db)
	if errors.Is(err, domain.ErrNotInitialized) {
		return false, nil
	}
	return err == nil, err
}

// Load reads every collection in saved order
func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotInitialized
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	version, err := readVersion(ctx, db)
	if err != nil {
		return nil, err
	}

	snapshot := &models.Snapshot{Version: version}
	if snapshot.Treasuries, err = loadRows[models.Treasury](ctx, db, "treasuries"); err != nil {
		return nil, err
	}
	if snapshot.Proposals, err = loadRows[models.Proposal](ctx, db, "proposals"); err != nil {
		return nil, err
	}
	if snapshot.Policies, err = loadRows[models.Policy](ctx, db, "policies"); err != nil {
		return nil, err
	}
	if snapshot.Transactions, err = loadRows[models.Transaction](ctx, db, "transactions"); err != nil {
		return nil, err
	}
	if snapshot.Users, err = loadRows[models.User](ctx, db, "users"); err != nil {
		return nil, err
	}
	if snapshot.Expenses, err = loadRows[models.Expense](ctx, db, "expenses"); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Save replaces the stored snapshot in a single SQL transaction
func (s *Store) Save(ctx context.Context, snapshot *models.Snapshot) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range collections {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := saveRows(ctx, tx, "treasuries", snapshot.Treasuries, func(t *models.Treasury) string { return t.ID }); err != nil {
		return err
	}
	if err := saveRows(ctx, tx, "proposals", snapshot.Proposals, func(p *models.Proposal) string { return p.ID }); err != nil {
		return err
	}
	if err := saveRows(ctx, tx, "policies", snapshot.Policies, func(p *models.Policy) string { return p.ID }); err != nil {
		return err
	}
	if err := saveRows(ctx, tx, "transactions", snapshot.Transactions, func(t *models.Transaction) string { return t.ID }); err != nil {
		return err
	}
	if err := saveRows(ctx, tx, "users", snapshot.Users, func(u *models.User) string { return u.ID }); err != nil {
		return err
	}
	if err := saveRows(ctx, tx, "expenses", snapshot.Expenses, func(e *models.Expense) string { return e.ID }); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?), (?, ?)`,
		versionKey, strconv.Itoa(snapshot.Version),
		"saved_at", time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}

	return tx.Commit()
}

func readVersion(ctx context.Context, db *sql.DB) (int, error) {
	var raw string
	err := db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", versionKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotInitialized
	}
	if err != nil {
		return 0, fmt.Errorf("reading meta: %w", err)
	}
	version, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid snapshot version %q: %w", raw, err)
	}
	return version, nil
}

func saveRows[T any](ctx context.Context, tx *sql.Tx, table string, items []T, id func(*T) string) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+table+" (id, position, body) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range items {
		body, err := json.Marshal(&items[i])
		if err != nil {
			return fmt.Errorf("encoding %s row: %w", table, err)
		}
		if _, err := stmt.ExecContext(ctx, id(&items[i]), i, string(body)); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

func loadRows[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx, "SELECT body FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var item T
		if err := json.Unmarshal([]byte(body), &item); err != nil {
			return nil, fmt.Errorf("decoding %s row: %w", table, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
