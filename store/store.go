// Package store persists composed places and owns the category table.
package store

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gaurav-prasanna/pinpipe/core"
)

var (
	// ErrUnknownCategory is returned when a place names a category the store does not have.
	ErrUnknownCategory = eris.New("store: unknown category")
	// ErrPlaceNotFound is returned when an update targets a missing place.
	ErrPlaceNotFound = eris.New("store: place not found")
)

// DefaultCategories seeds a new store.
var DefaultCategories = []string{"Eat/Drink", "Hike", "City", "Landmark", "Point of Interest"}

// Store is the persistence collaborator of the pipeline.
type Store interface {
	// Categories lists the category table in display order.
	Categories(ctx context.Context) ([]core.Category, error)
	// InsertPlace resolves the place's category by name and persists it, returning the new id.
	InsertPlace(ctx context.Context, place *core.Place) (string, error)
	// Places returns every stored place with its category name.
	Places(ctx context.Context) ([]core.Place, error)
	// SetRegion updates the region of one place.
	SetRegion(ctx context.Context, id, region string) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver      string `mapstructure:"driver"`
	Path        string `mapstructure:"path"`
	DatabaseURL string `mapstructure:"database_url"`
}

// Open returns the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "yaml":
		return NewYAML(cfg.Path)
	case "sqlite":
		s, err := NewSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close() //nolint:errcheck
			return nil, err
		}
		return s, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, eris.New("store: postgres driver requires store.database_url")
		}
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// findCategory resolves a category name case-insensitively.
func findCategory(categories []core.Category, name string) (core.Category, error) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return core.Category{}, eris.Wrapf(ErrUnknownCategory, "category %q", name)
}
