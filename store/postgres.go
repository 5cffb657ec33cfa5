package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock pools satisfy it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool against the hosted
// categories/pins schema. Pins carry a PostGIS location next to lat/lng.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 4
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Categories returns the categories ordered by name.
func (s *PostgresStore) Categories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.pool.Query(ctx, `SELECT id::text, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list categories")
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan category")
		}
		out = append(out, c)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate categories")
}

// InsertPlace writes a pin row, location included, and returns its id.
func (s *PostgresStore) InsertPlace(ctx context.Context, place *core.Place) (string, error) {
	var categoryID string
	err := s.pool.QueryRow(ctx,
		`SELECT id::text FROM categories WHERE lower(name) = lower($1)`, place.Category,
	).Scan(&categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", eris.Wrapf(ErrUnknownCategory, "postgres: category %q", place.Category)
		}
		return "", eris.Wrap(err, "postgres: resolve category")
	}

	location, err := EncodeLocation(place.Coordinates)
	if err != nil {
		return "", err
	}

	var id string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO pins (name, lat, lng, location, description, extended_description, category_id,
			link, maps_link, distance, elevation_gain, region)
		VALUES ($1, $2, $3, ST_GeomFromEWKB($4), $5, NULLIF($6, ''), $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, NULLIF($12, ''))
		RETURNING id::text`,
		place.Name, place.Coordinates.Lat, place.Coordinates.Lng, location, place.Description,
		place.ExtendedDescription, categoryID, place.Link, place.MapsLink,
		place.Distance, place.ElevationGain, place.Region,
	).Scan(&id)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert pin")
	}
	return id, nil
}

// Places returns every stored place.
func (s *PostgresStore) Places(ctx context.Context) ([]core.Place, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id::text, p.name, p.lat, p.lng, p.description, coalesce(p.extended_description, ''),
			c.name, coalesce(p.link, ''), coalesce(p.maps_link, ''), p.distance, p.elevation_gain,
			coalesce(p.region, '')
		FROM pins p JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list pins")
	}
	defer rows.Close()

	var out []core.Place
	for rows.Next() {
		var p core.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Coordinates.Lat, &p.Coordinates.Lng, &p.Description,
			&p.ExtendedDescription, &p.Category, &p.Link, &p.MapsLink, &p.Distance, &p.ElevationGain, &p.Region,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan pin")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate pins")
}

// SetRegion updates the region of the place with id.
func (s *PostgresStore) SetRegion(ctx context.Context, id, region string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE pins SET region = $1 WHERE id::text = $2`, region, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: set region %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrPlaceNotFound, "postgres: place %s", id)
	}
	return nil
}

// EncodeLocation converts coordinates to an EWKB point with SRID 4326.
// The point is X=lng, Y=lat.
func EncodeLocation(c core.Coordinates) ([]byte, error) {
	p := geom.NewPointFlat(geom.XY, []float64{c.Lng, c.Lat}).SetSRID(4326)
	data, err := ewkb.Marshal(p, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: encode location")
	}
	return data, nil
}
