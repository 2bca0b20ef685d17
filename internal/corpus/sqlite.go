package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id              INTEGER PRIMARY KEY,
	title           TEXT NOT NULL DEFAULT '',
	company_name    TEXT NOT NULL DEFAULT '',
	location        TEXT NOT NULL DEFAULT '',
	job_posting_url TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS similarity (
	row_id INTEGER NOT NULL,
	col_id INTEGER NOT NULL,
	score  REAL NOT NULL,
	PRIMARY KEY (row_id, col_id)
);`

// openDB opens the database at path. Read-only opens require an existing
// file and never create one.
func openDB(ctx context.Context, path string, readOnly bool) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	if readOnly {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// LoadSQLite reads the artifacts from the jobs and similarity tables of a
// SQLite database. Job ids must be dense from 0 and every matrix cell present.
// NULL text columns load as empty strings.
func LoadSQLite(ctx context.Context, path string) (*Artifacts, error) {
	db, err := openDB(ctx, path, true)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	records, err := loadJobs(ctx, db)
	if err != nil {
		return nil, err
	}

	rows, err := loadSimilarity(ctx, db, len(records))
	if err != nil {
		return nil, err
	}

	m, err := NewMatrix(rows)
	if err != nil {
		return nil, err
	}

	return NewArtifacts(New(records), m)
}

func loadJobs(ctx context.Context, db *sql.DB) ([]JobRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id,
			COALESCE(title, ''),
			COALESCE(company_name, ''),
			COALESCE(location, ''),
			COALESCE(job_posting_url, '')
		FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	var records []JobRecord
	for rows.Next() {
		var r JobRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Company, &r.Location, &r.URL); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		if r.ID != len(records) {
			return nil, fmt.Errorf("job ids are not dense: got %d at position %d", r.ID, len(records))
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func loadSimilarity(ctx context.Context, db *sql.DB, n int) ([][]float64, error) {
	rows, err := db.QueryContext(ctx, `SELECT row_id, col_id, score FROM similarity`)
	if err != nil {
		return nil, fmt.Errorf("querying similarity: %w", err)
	}
	defer rows.Close()

	matrix := make([][]float64, n)
	filled := make([][]bool, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		filled[i] = make([]bool, n)
	}

	count := 0
	for rows.Next() {
		var (
			i, j  int
			score float64
		)
		if err := rows.Scan(&i, &j, &score); err != nil {
			return nil, fmt.Errorf("scanning similarity: %w", err)
		}
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, &ConfigError{CorpusLen: n, MatrixDim: max(i, j) + 1, Err: ErrDimensionMismatch}
		}
		if !filled[i][j] {
			filled[i][j] = true
			count++
		}
		matrix[i][j] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if count != n*n {
		return nil, fmt.Errorf("%w: %d of %d cells present", ErrNotSquare, count, n*n)
	}

	return matrix, nil
}

// SaveSQLite writes a into the database at path, replacing existing rows.
func SaveSQLite(ctx context.Context, path string, a *Artifacts) error {
	db, err := openDB(ctx, path, false)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM jobs`, `DELETE FROM similarity`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing tables: %w", err)
		}
	}

	insertJob, err := tx.PrepareContext(ctx,
		`INSERT INTO jobs (id, title, company_name, location, job_posting_url) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertJob.Close()

	var insertErr error
	a.Corpus.Each(func(r JobRecord) {
		if insertErr != nil {
			return
		}
		if _, err := insertJob.ExecContext(ctx, r.ID, r.Title, r.Company, r.Location, r.URL); err != nil {
			insertErr = fmt.Errorf("inserting job %d: %w", r.ID, err)
		}
	})
	if insertErr != nil {
		return insertErr
	}

	insertScore, err := tx.PrepareContext(ctx,
		`INSERT INTO similarity (row_id, col_id, score) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertScore.Close()

	for i := 0; i < a.Matrix.Dim(); i++ {
		for j := 0; j < a.Matrix.Dim(); j++ {
			if _, err := insertScore.ExecContext(ctx, i, j, a.Matrix.At(i, j)); err != nil {
				return fmt.Errorf("inserting similarity (%d, %d): %w", i, j, err)
			}
		}
	}

	return tx.Commit()
}
