package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"specgen/internal"
)

const (
	MetaLastUpdated = "db_last_updated"
	MetaName        = "db_name"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS spec_entries (
  position INTEGER PRIMARY KEY,
  code TEXT NOT NULL,
  bank TEXT NOT NULL,
  description TEXT NOT NULL,
  specText TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_spec_entries_code ON spec_entries(code);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS budget_jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  name TEXT NOT NULL,
  modifiedAt TEXT,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'fetched',
  rawRef TEXT NOT NULL,
  outputPath TEXT NOT NULL DEFAULT '',
  items INTEGER NOT NULL DEFAULT 0,
  error TEXT NOT NULL DEFAULT '',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(source, hash)
);
CREATE INDEX IF NOT EXISTS idx_budget_jobs_status ON budget_jobs(status);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceSpecEntries swaps the stored collection in one transaction so a
// failed write leaves the previous collection in place.
func (d *DB) ReplaceSpecEntries(entries []internal.SpecEntry, meta map[string]string) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM spec_entries`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO spec_entries (position, code, bank, description, specText) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(i, e.Code, e.Bank, e.Description, e.SpecText); err != nil {
			return err
		}
	}

	for k, v := range meta {
		if _, err := tx.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, k, v); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListSpecEntries() ([]internal.SpecEntry, error) {
	rows, err := d.conn.Query(`SELECT code, bank, description, specText FROM spec_entries ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SpecEntry
	for rows.Next() {
		var e internal.SpecEntry
		if err := rows.Scan(&e.Code, &e.Bank, &e.Description, &e.SpecText); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

const budgetJobColumns = `id, source, name, modifiedAt, hash, status, rawRef, outputPath, items, error`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBudgetJob(r rowScanner) (internal.BudgetJob, error) {
	var (
		job        internal.BudgetJob
		modifiedAt sql.NullString
	)
	err := r.Scan(&job.ID, &job.Source, &job.Name, &modifiedAt, &job.Hash, &job.Status, &job.RawRef, &job.OutputPath, &job.Items, &job.Error)
	job.ModifiedAt = modifiedAt.String
	return job, err
}

// UpsertBudgetJob records an archived file. The same content from the same
// source maps to one job; a known job keeps its status.
func (d *DB) UpsertBudgetJob(source, name, modifiedAt, hash, rawRef, status string) (internal.BudgetJob, error) {
	_, err := d.conn.Exec(`
INSERT INTO budget_jobs (source, name, modifiedAt, hash, status, rawRef)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(source, hash) DO UPDATE SET
  name=excluded.name,
  modifiedAt=excluded.modifiedAt,
  rawRef=excluded.rawRef,
  updatedAt=CURRENT_TIMESTAMP
`, source, name, modifiedAt, hash, status, rawRef)
	if err != nil {
		return internal.BudgetJob{}, err
	}

	job, err := d.GetBudgetJobByHash(source, hash)
	if err != nil {
		return internal.BudgetJob{}, err
	}
	if job == nil {
		return internal.BudgetJob{}, errors.New("failed to upsert budget job")
	}
	return *job, nil
}

func (d *DB) GetBudgetJobByHash(source, hash string) (*internal.BudgetJob, error) {
	job, err := scanBudgetJob(d.conn.QueryRow(`SELECT `+budgetJobColumns+` FROM budget_jobs WHERE source = ? AND hash = ?`, source, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (d *DB) GetBudgetJobByID(id int) (*internal.BudgetJob, error) {
	job, err := scanBudgetJob(d.conn.QueryRow(`SELECT `+budgetJobColumns+` FROM budget_jobs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListBudgetJobs returns jobs oldest first. An empty status lists all.
func (d *DB) ListBudgetJobs(status string, limit int) ([]internal.BudgetJob, error) {
	rows, err := d.conn.Query(`
SELECT `+budgetJobColumns+`
FROM budget_jobs WHERE (? = '' OR status = ?) ORDER BY id ASC LIMIT ?
`, status, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.BudgetJob
	for rows.Next() {
		job, err := scanBudgetJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func (d *DB) UpdateBudgetJobResult(id int, status, outputPath string, items int, errMsg string) error {
	_, err := d.conn.Exec(`
UPDATE budget_jobs SET status = ?, outputPath = ?, items = ?, error = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?
`, status, outputPath, items, errMsg, id)
	return err
}
