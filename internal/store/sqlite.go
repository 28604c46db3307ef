package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists crash-test metadata and pulse metrics to a SQLite
// database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while a sweep writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS crash_tests (
			test_no           INTEGER PRIMARY KEY,
			make              TEXT,
			model             TEXT,
			year              INTEGER,
			crash_type        TEXT,
			closing_speed_kph REAL,
			weight_kg         REAL,
			waveform_path     TEXT,
			status            TEXT DEFAULT 'READY',
			updated_at        INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tests_status ON crash_tests(status)`,
		`CREATE INDEX IF NOT EXISTS idx_tests_make_year ON crash_tests(make, year)`,

		`CREATE TABLE IF NOT EXISTS pulse_metrics (
			test_no              INTEGER PRIMARY KEY,
			peak_g               REAL,
			time_at_peak_ms      REAL,
			delta_v_kph          REAL,
			max_crush_mm         REAL,
			time_at_max_crush_ms REAL,
			olc_approx_g         REAL,
			specific_energy_j_kg REAL,
			total_energy_kj      REAL,
			updated_at           INTEGER NOT NULL,
			FOREIGN KEY(test_no) REFERENCES crash_tests(test_no)
		)`,

		`CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id          TEXT PRIMARY KEY,
			started_at      INTEGER NOT NULL,
			finished_at     INTEGER,
			tests_processed INTEGER,
			tests_skipped   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON analysis_runs(started_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// UpsertTest inserts or replaces one crash-test row.
func (s *SQLiteStore) UpsertTest(tc *TestCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT OR REPLACE INTO crash_tests
		(test_no, make, model, year, crash_type, weight_kg, waveform_path, status, updated_at)
		VALUES (?,?,?,?,?,?,?,'READY',?)`,
		tc.TestNo, tc.Make, tc.Model, tc.Year, tc.CrashType,
		tc.WeightKG, tc.WaveformPath, time.Now().Unix(),
	)
	return err
}

// PendingTests returns READY tests that have a waveform on disk and no
// metrics yet, newest first.
func (s *SQLiteStore) PendingTests() ([]TestCase, error) {
	rows, err := s.db.Query(`SELECT t.test_no, t.make, t.model, t.year,
			COALESCE(t.crash_type, ''), COALESCE(t.weight_kg, 0), t.waveform_path
		FROM crash_tests t
		LEFT JOIN pulse_metrics m ON t.test_no = m.test_no
		WHERE t.status = 'READY'
		  AND t.waveform_path IS NOT NULL
		  AND m.test_no IS NULL
		ORDER BY t.test_no DESC`)
	if err != nil {
		return nil, fmt.Errorf("query pending tests: %w", err)
	}
	defer rows.Close()

	var out []TestCase
	for rows.Next() {
		var tc TestCase
		if err := rows.Scan(&tc.TestNo, &tc.Make, &tc.Model, &tc.Year,
			&tc.CrashType, &tc.WeightKG, &tc.WaveformPath); err != nil {
			return nil, fmt.Errorf("scan test row: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// SaveMetrics upserts a batch of pulse-metric rows in one transaction.
// Invalid fields are written as NULL.
func (s *SQLiteStore) SaveMetrics(records []MetricRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO pulse_metrics
		(test_no, peak_g, time_at_peak_ms, delta_v_kph, max_crush_mm,
		 time_at_max_crush_ms, olc_approx_g, specific_energy_j_kg, total_energy_kj, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare metrics insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range records {
		if _, err := stmt.Exec(r.TestNo, r.PeakG, r.TimeAtPeakMS, r.DeltaVKPH,
			r.MaxCrushMM, r.TimeAtMaxCrushMS, r.OLCApproxG,
			r.SpecificEnergy, r.TotalEnergyKJ, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert metrics for test %d: %w", r.TestNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit metrics: %w", err)
	}
	log.Printf("[INFO] saved %d pulse metric rows", len(records))
	return nil
}

// RecordRun writes one batch-sweep summary row.
func (s *SQLiteStore) RecordRun(run *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT OR REPLACE INTO analysis_runs
		(run_id, started_at, finished_at, tests_processed, tests_skipped)
		VALUES (?,?,?,?,?)`,
		run.RunID, run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.Processed, run.Skipped,
	)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
