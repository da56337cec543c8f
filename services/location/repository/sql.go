package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/piresc/gpstracker/services/location"
	"github.com/piresc/gpstracker/services/location/retention"
)

// Dialect identifies the SQL flavour spoken by the backing database
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// trimLockKey is the pg_advisory_xact_lock key serializing trims across processes
const trimLockKey int64 = 0x6770735f7472696d

// sqliteTimeLayout is fixed width so that lexical order equals chronological order
const sqliteTimeLayout = "2006-01-02T15:04:05.000000Z"

var schemas = map[Dialect][]string{
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS locations (
			id          BIGSERIAL PRIMARY KEY,
			latitude    DOUBLE PRECISION NOT NULL,
			longitude   DOUBLE PRECISION NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_locations_recorded_at ON locations (recorded_at DESC, id DESC)`,
	},
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS locations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			latitude    REAL NOT NULL,
			longitude   REAL NOT NULL,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_locations_recorded_at ON locations (recorded_at DESC, id DESC)`,
	},
}

// SQLLocationRepo stores locations in a relational database through sqlx
type SQLLocationRepo struct {
	db      *sqlx.DB
	dialect Dialect
	timeout time.Duration
	trimMu  sync.Mutex
}

// NewSQLLocationRepository creates a location store on top of an open database.
// The store takes ownership of db and closes it on Close.
func NewSQLLocationRepository(db *sqlx.DB, dialect Dialect, timeout time.Duration) *SQLLocationRepo {
	return &SQLLocationRepo{
		db:      db,
		dialect: dialect,
		timeout: timeout,
	}
}

// Migrate creates the locations table and its ordering index
func (r *SQLLocationRepo) Migrate(ctx context.Context) error {
	statements, ok := schemas[r.dialect]
	if !ok {
		return fmt.Errorf("unsupported sql dialect %q", r.dialect)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return location.NewStorageError("migrate", err)
		}
	}
	return nil
}

// Append stores a new location and returns it with its assigned ID
func (r *SQLLocationRepo) Append(ctx context.Context, latitude, longitude float64, recordedAt time.Time) (*models.Location, error) {
	if recordedAt.IsZero() {
		recordedAt = models.Now()
	}
	recordedAt = models.NormalizeTime(recordedAt)
	if err := checkStorable(recordedAt); err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.Rebind(`INSERT INTO locations (latitude, longitude, recorded_at) VALUES (?, ?, ?) RETURNING id`)

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, latitude, longitude, r.timeArg(recordedAt)).Scan(&id); err != nil {
		return nil, location.NewStorageError("append", err)
	}

	return &models.Location{
		ID:        id,
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: recordedAt,
	}, nil
}

// Latest returns the most recent location, or location.ErrNoData if none exist
func (r *SQLLocationRepo) Latest(ctx context.Context) (*models.Location, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var row locationRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, latitude, longitude, recorded_at FROM locations ORDER BY recorded_at DESC, id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, location.ErrNoData
	}
	if err != nil {
		return nil, location.NewStorageError("latest", err)
	}
	return row.toModel(), nil
}

// All returns every retained location, newest first
func (r *SQLLocationRepo) All(ctx context.Context) ([]*models.Location, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []locationRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, latitude, longitude, recorded_at FROM locations ORDER BY recorded_at DESC, id DESC`)
	if err != nil {
		return nil, location.NewStorageError("all", err)
	}

	locations := make([]*models.Location, 0, len(rows))
	for i := range rows {
		locations = append(locations, rows[i].toModel())
	}
	return locations, nil
}

// Count returns the number of retained locations
func (r *SQLLocationRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM locations`); err != nil {
		return 0, location.NewStorageError("count", err)
	}
	return total, nil
}

// Trim deletes the oldest locations so that at most cap remain.
// Counting and deleting happen in one transaction that excludes other trims;
// appends committed while a trim runs may survive it.
func (r *SQLLocationRepo) Trim(ctx context.Context, cap int) (int64, error) {
	r.trimMu.Lock()
	defer r.trimMu.Unlock()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, location.NewStorageError("trim", err)
	}
	defer tx.Rollback()

	if r.dialect == DialectPostgres {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, trimLockKey); err != nil {
			return 0, location.NewStorageError("trim", fmt.Errorf("acquire trim lock: %w", err))
		}
	}

	var total int64
	if err := tx.GetContext(ctx, &total, `SELECT COUNT(*) FROM locations`); err != nil {
		return 0, location.NewStorageError("trim", err)
	}

	excess := retention.ExcessCount(total, int64(cap))
	if excess == 0 {
		return 0, location.NewStorageError("trim", tx.Commit())
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(
		`DELETE FROM locations WHERE id IN (SELECT id FROM locations ORDER BY recorded_at ASC, id ASC LIMIT ?)`), excess)
	if err != nil {
		return 0, location.NewStorageError("trim", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, location.NewStorageError("trim", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, location.NewStorageError("trim", err)
	}
	return deleted, nil
}

// Close closes the underlying database
func (r *SQLLocationRepo) Close() error {
	return r.db.Close()
}

func (r *SQLLocationRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLLocationRepo) timeArg(t time.Time) interface{} {
	if r.dialect == DialectSQLite {
		return t.Format(sqliteTimeLayout)
	}
	return t
}

type locationRow struct {
	ID         int64   `db:"id"`
	Latitude   float64 `db:"latitude"`
	Longitude  float64 `db:"longitude"`
	RecordedAt dbTime  `db:"recorded_at"`
}

func (row *locationRow) toModel() *models.Location {
	return &models.Location{
		ID:        row.ID,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		Timestamp: models.NormalizeTime(time.Time(row.RecordedAt)),
	}
}

// dbTime scans timestamps stored natively (postgres) or as text (sqlite)
type dbTime time.Time

var dbTimeLayouts = []string{
	sqliteTimeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func (t *dbTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = dbTime(v)
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		return fmt.Errorf("%w: recorded_at is null", location.ErrCorruptRecord)
	default:
		return fmt.Errorf("%w: cannot scan %T into recorded_at", location.ErrCorruptRecord, src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range dbTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = dbTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("%w: cannot parse recorded_at %q", location.ErrCorruptRecord, s)
}
