package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers (dashboards, ad-hoc queries) don't block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS run_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT,
			market_state   TEXT,
			bar_count      INTEGER,
			emitted_count  INTEGER,
			fallback_used  INTEGER,
			previous_close REAL,
			latest_price   REAL,
			diagnostics    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_ts ON run_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS emitted_points (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        INTEGER NOT NULL,
			entry_id      TEXT,
			timestamp     INTEGER NOT NULL,
			price         REAL,
			change_close  REAL,
			pct_close     REAL,
			change_1h     REAL,
			pct_1h        REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_emitted_run ON emitted_points(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_emitted_ts ON emitted_points(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run snapshot and its emitted points in one transaction.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO run_snapshots
		(timestamp, symbol, market_state, bar_count, emitted_count, fallback_used,
		 previous_close, latest_price, diagnostics)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		snap.RunAt.Unix(), snap.Symbol, string(snap.MarketState),
		snap.BarCount, snap.EmittedCount, boolToInt(snap.FallbackUsed),
		nullable(snap.PreviousClose), nullable(snap.LatestPrice),
		strings.Join(snap.Diagnostics, "; "),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, rec := range snap.Records {
		if _, err := tx.Exec(`INSERT INTO emitted_points
			(run_id, entry_id, timestamp, price, change_close, pct_close, change_1h, pct_1h)
			VALUES (?,?,?,?,?,?,?,?)`,
			runID, rec.ID, rec.Time.Unix(), rec.Price,
			nullable(rec.ChangeVsPrevClose), nullable(rec.PctVsPrevClose),
			nullable(rec.ChangeVs1h), nullable(rec.PctVs1h),
		); err != nil {
			return fmt.Errorf("insert point: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}


