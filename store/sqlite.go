package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "pins.db"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS categories (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);

CREATE TABLE IF NOT EXISTS pins (
	id                   TEXT PRIMARY KEY,
	name                 TEXT NOT NULL,
	lat                  REAL NOT NULL,
	lng                  REAL NOT NULL,
	description          TEXT NOT NULL DEFAULT '',
	extended_description TEXT NOT NULL DEFAULT '',
	category_id          TEXT NOT NULL REFERENCES categories(id),
	link                 TEXT NOT NULL DEFAULT '',
	maps_link            TEXT NOT NULL DEFAULT '',
	distance             REAL,
	elevation_gain       INTEGER,
	region               TEXT NOT NULL DEFAULT '',
	created_at           DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_pins_category_id ON pins(category_id);
`

// Migrate creates the tables and seeds DefaultCategories into an empty category table.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return eris.Wrap(err, "sqlite: count categories")
	}
	if n > 0 {
		return nil
	}
	for _, name := range DefaultCategories {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO categories (id, name) VALUES (?, ?)`,
			uuid.New().String(), name,
		); err != nil {
			return eris.Wrapf(err, "sqlite: seed category %s", name)
		}
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Categories returns the categories in insertion order.
func (s *SQLiteStore) Categories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list categories")
	}
	defer rows.Close() //nolint:errcheck

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan category")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate categories")
}

// InsertPlace stores place under a new id and returns it.
func (s *SQLiteStore) InsertPlace(ctx context.Context, place *core.Place) (string, error) {
	var categoryID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = ? COLLATE NOCASE`, place.Category,
	).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", eris.Wrapf(ErrUnknownCategory, "sqlite: category %q", place.Category)
	}
	if err != nil {
		return "", eris.Wrap(err, "sqlite: resolve category")
	}

	id := uuid.New().String()
	var distance sql.NullFloat64
	if place.Distance != nil {
		distance = sql.NullFloat64{Float64: *place.Distance, Valid: true}
	}
	var elevation sql.NullInt64
	if place.ElevationGain != nil {
		elevation = sql.NullInt64{Int64: int64(*place.ElevationGain), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pins (id, name, lat, lng, description, extended_description, category_id,
			link, maps_link, distance, elevation_gain, region, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, place.Name, place.Coordinates.Lat, place.Coordinates.Lng, place.Description,
		place.ExtendedDescription, categoryID, place.Link, place.MapsLink, distance, elevation,
		place.Region, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert pin")
	}
	return id, nil
}

// Places returns every stored place.
func (s *SQLiteStore) Places(ctx context.Context) ([]core.Place, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.lat, p.lng, p.description, p.extended_description, c.name,
			p.link, p.maps_link, p.distance, p.elevation_gain, p.region
		FROM pins p JOIN categories c ON c.id = p.category_id
		ORDER BY p.rowid`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list pins")
	}
	defer rows.Close() //nolint:errcheck

	var out []core.Place
	for rows.Next() {
		var (
			p         core.Place
			distance  sql.NullFloat64
			elevation sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Coordinates.Lat, &p.Coordinates.Lng, &p.Description,
			&p.ExtendedDescription, &p.Category, &p.Link, &p.MapsLink, &distance, &elevation, &p.Region,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan pin")
		}
		if distance.Valid {
			d := distance.Float64
			p.Distance = &d
		}
		if elevation.Valid {
			e := int(elevation.Int64)
			p.ElevationGain = &e
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate pins")
}

// SetRegion updates the region of the place with id.
func (s *SQLiteStore) SetRegion(ctx context.Context, id, region string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE pins SET region = ? WHERE id = ?`, region, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set region %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrPlaceNotFound, "sqlite: place %s", id)
	}
	return nil
}
