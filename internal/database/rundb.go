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

	"github.com/nao1215/distdist/internal/model"
)

// FileName is the name of the database file inside the data directory.
const FileName = "distdist.db"

// timestampLayout is how run timestamps are written to SQLite.
const timestampLayout = "2006-01-02 15:04:05"

// RunDB provides SQLite-based storage for analysis runs.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB in the given directory.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc creates it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// Path returns the database file path.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		threshold REAL NOT NULL,
		near_count INTEGER NOT NULL,
		far_count INTEGER NOT NULL,
		excluded_count INTEGER NOT NULL,
		near_mean_period REAL,
		figure_path TEXT,
		analysis_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	-- Bucket assignment of every star considered in a run
	CREATE TABLE IF NOT EXISTS run_members (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		bucket TEXT NOT NULL,
		distance REAL NOT NULL,
		period REAL,
		PRIMARY KEY (run_id, name)
	);

	CREATE INDEX IF NOT EXISTS idx_members_name ON run_members(name);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata contains summary information about a stored run.
// This is used for listing history without loading the full analysis.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Timestamp is when the analysis was performed.
	Timestamp time.Time

	// Threshold is the near/far distance split in parsecs.
	Threshold float64

	// NearCount and FarCount are the bucket sizes.
	NearCount int
	FarCount  int

	// ExcludedCount is the number of stars dropped for lacking a period.
	ExcludedCount int

	// NearMeanPeriod is the mean rotation period of the near bucket.
	// Invalid when the run failed before the mean was computed.
	NearMeanPeriod sql.NullFloat64

	// FigurePath is where the figure was written, empty if skipped.
	FigurePath string
}

// Member is one star's bucket assignment in a stored run.
type Member struct {
	Name     string
	Bucket   string
	Distance float64
	Period   sql.NullFloat64
}

// SaveRun stores an analysis and its bucket assignments, returning the new run ID.
func (rdb *RunDB) SaveRun(ctx context.Context, a *model.Analysis) (int64, error) {
	analysisJSON, err := json.Marshal(a)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize analysis: %w", err)
	}

	var mean sql.NullFloat64
	if a.HasMeanPeriod() {
		mean = sql.NullFloat64{Float64: a.NearMeanPeriod, Valid: true}
	}

	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (timestamp, threshold, near_count, far_count, excluded_count, near_mean_period, figure_path, analysis_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.DateAnalyzed.UTC().Format(timestampLayout),
		a.Threshold,
		len(a.Near),
		len(a.Far),
		len(a.Excluded),
		mean,
		a.FigurePath,
		string(analysisJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for _, s := range a.Records {
		var period sql.NullFloat64
		if p, ok := s.PeriodDays(); ok {
			period = sql.NullFloat64{Float64: p, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
		INSERT INTO run_members (run_id, name, bucket, distance, period)
		VALUES (?, ?, ?, ?, ?)
		`, id, s.Name, model.BucketFor(s.Distance, a.Threshold).String(), s.Distance, period)
		if err != nil {
			return 0, fmt.Errorf("failed to save member %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

// ListRuns returns metadata for all stored runs, newest first.
func (rdb *RunDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	query := `
	SELECT id, timestamp, threshold, near_count, far_count, excluded_count, near_mean_period, figure_path
	FROM runs
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		var figurePath sql.NullString

		if err := rows.Scan(
			&meta.ID, &timestamp, &meta.Threshold,
			&meta.NearCount, &meta.FarCount, &meta.ExcludedCount,
			&meta.NearMeanPeriod, &figurePath,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		meta.FigurePath = figurePath.String
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetRunByID retrieves a stored analysis by its database ID.
// Returns nil without error when no such run exists.
func (rdb *RunDB) GetRunByID(ctx context.Context, id int64) (*model.Analysis, error) {
	query := `
	SELECT analysis_json FROM runs
	WHERE id = ?
	`

	var analysisJSON string
	err := rdb.db.QueryRowContext(ctx, query, id).Scan(&analysisJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var a model.Analysis
	if err := json.Unmarshal([]byte(analysisJSON), &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}

	return &a, nil
}

// GetRunMembers returns the bucket assignments of a run in catalog order.
func (rdb *RunDB) GetRunMembers(ctx context.Context, runID int64) ([]Member, error) {
	query := `
	SELECT name, bucket, distance, period
	FROM run_members
	WHERE run_id = ?
	ORDER BY rowid
	`

	rows, err := rdb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.Name, &m.Bucket, &m.Distance, &m.Period); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// DeleteRun removes a run and its members.
// Returns false when no such run exists.
func (rdb *RunDB) DeleteRun(ctx context.Context, id int64) (bool, error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM run_members WHERE run_id = ?", id); err != nil {
		return false, fmt.Errorf("failed to delete run members: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count deleted runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit delete: %w", err)
	}
	return n > 0, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
