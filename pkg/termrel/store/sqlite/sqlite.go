package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lexkit/termrel/pkg/termrel/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and
// initializes the schema.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	occurrences INTEGER NOT NULL DEFAULT 0,
	categories INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS category_word_freq (
	run_id TEXT NOT NULL,
	category TEXT NOT NULL,
	word TEXT NOT NULL,
	n INTEGER NOT NULL,
	total INTEGER NOT NULL,
	tf REAL NOT NULL,
	idf REAL NOT NULL,
	tf_idf REAL NOT NULL,
	PRIMARY KEY(run_id, category, word),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS category_correlation (
	run_id TEXT NOT NULL,
	a TEXT NOT NULL,
	b TEXT NOT NULL,
	r REAL,
	PRIMARY KEY(run_id, a, b),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or updates a run record
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, created_at, occurrences, categories)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	occurrences=excluded.occurrences,
	categories=excluded.categories;
`, r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Occurrences, r.Categories)
	return err
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	var (
		r       store.Run
		created string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, created_at, occurrences, categories FROM runs WHERE id = ?;
`, id).Scan(&r.ID, &created, &r.Occurrences, &r.Categories)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}

	if parsed, perr := time.Parse(time.RFC3339, created); perr == nil {
		r.CreatedAt = parsed
	}
	return r, true, nil
}

// ListRuns returns the most recent runs
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, occurrences, categories
FROM runs
ORDER BY created_at DESC, id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var (
			r       store.Run
			created string
		)
		if err := rows.Scan(&r.ID, &created, &r.Occurrences, &r.Categories); err != nil {
			return nil, err
		}
		if parsed, perr := time.Parse(time.RFC3339, created); perr == nil {
			r.CreatedAt = parsed
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SaveFrequencies replaces the frequency rows for a run in one transaction.
func (s *sqliteStore) SaveFrequencies(ctx context.Context, runID string, rows []store.Frequency) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_word_freq WHERE run_id=?`, runID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO category_word_freq (run_id, category, word, n, total, tf, idf, tf_idf)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range rows {
		if _, err := stmt.ExecContext(ctx, runID, f.Category, f.Word, f.N, f.Total, f.TF, f.IDF, f.TFIDF); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetFrequencies returns frequency rows for a run, optionally filtered by
// category, ordered by descending tf-idf.
func (s *sqliteStore) GetFrequencies(ctx context.Context, runID, category string, limit int) ([]store.Frequency, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
SELECT category, word, n, total, tf, idf, tf_idf
FROM category_word_freq
WHERE run_id = ?
`
	args := []interface{}{runID}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += `
ORDER BY tf_idf DESC, word ASC
LIMIT ?;
`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []store.Frequency
	for rows.Next() {
		var f store.Frequency
		if err := rows.Scan(&f.Category, &f.Word, &f.N, &f.Total, &f.TF, &f.IDF, &f.TFIDF); err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// SaveCorrelations replaces the correlation rows for a run in one
// transaction. Undefined correlations are stored as NULL.
func (s *sqliteStore) SaveCorrelations(ctx context.Context, runID string, rows []store.Correlation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_correlation WHERE run_id=?`, runID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO category_correlation (run_id, a, b, r) VALUES (?, ?, ?, ?);
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range rows {
		var r interface{}
		if c.Defined {
			r = c.R
		}
		if _, err := stmt.ExecContext(ctx, runID, c.A, c.B, r); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetCorrelations returns the defined correlations for a run with
// r >= min, ordered by (a, b).
func (s *sqliteStore) GetCorrelations(ctx context.Context, runID string, min float64) ([]store.Correlation, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT a, b, r
FROM category_correlation
WHERE run_id = ? AND r IS NOT NULL AND r >= ?
ORDER BY a, b;
`, runID, min)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []store.Correlation
	for rows.Next() {
		var (
			c store.Correlation
			r sql.NullFloat64
		)
		if err := rows.Scan(&c.A, &c.B, &r); err != nil {
			return nil, err
		}
		c.R = r.Float64
		c.Defined = r.Valid
		result = append(result, c)
	}
	return result, rows.Err()
}
