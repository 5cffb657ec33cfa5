// Package output writes rendered place cards to an export directory.
// Filenames are derived from the place name (e.g. Flattop_Mountain.md).
package output

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, eris.Wrap(err, "output: getting working directory")
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "output: creating output directory")
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as <name><ext>. When that file already exists the
// place id is appended, so two places with one name do not collide.
func (w *Writer) Write(place *core.Place, data []byte, ext string) (string, error) {
	base := Filename(place.Name)
	path := filepath.Join(w.OutputDir, base+ext)
	if _, err := os.Stat(path); err == nil && place.ID != "" {
		path = filepath.Join(w.OutputDir, base+"_"+sanitize(shortID(place.ID))+ext)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", eris.Wrapf(err, "output: stat %s", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrapf(err, "output: writing file %s", path)
	}
	return path, nil
}

// Filename converts a place name into a flat filename.
// Example: "Snow City Cafe" -> Snow_City_Cafe
func Filename(name string) string {
	s := strings.Trim(sanitize(strings.TrimSpace(name)), "_")
	if s == "" {
		return "place"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sanitize replaces non-alphanumeric characters with underscores and
// collapses runs of them.
func sanitize(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return b.String()
}
