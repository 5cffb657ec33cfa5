package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// DefaultYAMLPath is used when no path is configured.
const DefaultYAMLPath = "pins.yaml"

type yamlDocument struct {
	Categories []core.Category `yaml:"categories"`
	Places     []core.Place    `yaml:"places"`
}

// YAMLStore keeps the category table and places in one YAML document.
// Every write rewrites the whole file through a temp file and rename.
type YAMLStore struct {
	mu   sync.Mutex
	path string
	doc  yamlDocument
}

// NewYAML loads the document at path. A missing file, or a document with
// no categories, starts from DefaultCategories; the file is written on the
// first insert.
func NewYAML(path string) (*YAMLStore, error) {
	if path == "" {
		path = DefaultYAMLPath
	}
	s := &YAMLStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, eris.Wrapf(err, "yaml: read %s", path)
	default:
		if err := yaml.Unmarshal(data, &s.doc); err != nil {
			return nil, eris.Wrapf(err, "yaml: parse %s", path)
		}
	}

	if len(s.doc.Categories) == 0 {
		for _, name := range DefaultCategories {
			s.doc.Categories = append(s.doc.Categories, core.Category{ID: uuid.New().String(), Name: name})
		}
	}
	return s, nil
}

// Categories returns the category table in document order.
func (s *YAMLStore) Categories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, len(s.doc.Categories))
	copy(out, s.doc.Categories)
	return out, nil
}

// InsertPlace resolves the category case-insensitively, stores a copy of
// place under a new id and rewrites the file.
func (s *YAMLStore) InsertPlace(_ context.Context, place *core.Place) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, err := findCategory(s.doc.Categories, place.Category)
	if err != nil {
		return "", err
	}

	stored := *place
	stored.ID = uuid.New().String()
	stored.Category = cat.Name
	s.doc.Places = append(s.doc.Places, stored)
	if err := s.save(); err != nil {
		s.doc.Places = s.doc.Places[:len(s.doc.Places)-1]
		return "", err
	}
	return stored.ID, nil
}

// Places returns every stored place.
func (s *YAMLStore) Places(_ context.Context) ([]core.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Place, len(s.doc.Places))
	copy(out, s.doc.Places)
	return out, nil
}

// SetRegion updates one place's region, or returns ErrPlaceNotFound.
func (s *YAMLStore) SetRegion(_ context.Context, id, region string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.doc.Places {
		if s.doc.Places[i].ID == id {
			prev := s.doc.Places[i].Region
			s.doc.Places[i].Region = region
			if err := s.save(); err != nil {
				s.doc.Places[i].Region = prev
				return err
			}
			return nil
		}
	}
	return eris.Wrapf(ErrPlaceNotFound, "yaml: place %s", id)
}

// Close is a no-op; every write is already on disk.
func (s *YAMLStore) Close() error { return nil }

// save must be called with mu held.
func (s *YAMLStore) save() error {
	data, err := yaml.Marshal(&s.doc)
	if err != nil {
		return eris.Wrap(err, "yaml: marshal")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".pins-*.yaml")
	if err != nil {
		return eris.Wrap(err, "yaml: create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrap(err, "yaml: write temp file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "yaml: close temp file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return eris.Wrapf(err, "yaml: replace %s", s.path)
	}
	return nil
}
