package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLStore_Contract(t *testing.T) {
	s, err := NewYAML(filepath.Join(t.TempDir(), "pins.yaml"))
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestYAMLStore_Persists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pins.yaml")
	ctx := context.Background()

	s, err := NewYAML(path)
	require.NoError(t, err)
	id, err := s.InsertPlace(ctx, cafePlace())
	require.NoError(t, err)

	reopened, err := NewYAML(path)
	require.NoError(t, err)
	places, err := reopened.Places(ctx)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, id, places[0].ID)
	assert.Equal(t, "Snow City Cafe", places[0].Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestYAMLStore_MissingFileNotCreatedUntilWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pins.yaml")
	_, err := NewYAML(path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestYAMLStore_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pins.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [unterminated"), 0o644))
	_, err := NewYAML(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml: parse")
}

func TestYAMLStore_EmptyDocumentSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	for name, content := range map[string]string{
		"empty file":       "",
		"no categories":    "places: []\n",
		"empty categories": "categories: []\nplaces: []\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pins.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			s, err := NewYAML(path)
			require.NoError(t, err)

			cats, err := s.Categories(ctx)
			require.NoError(t, err)
			names := make([]string, len(cats))
			for i, c := range cats {
				names[i] = c.Name
			}
			assert.Equal(t, DefaultCategories, names)

			_, err = s.InsertPlace(ctx, cafePlace())
			require.NoError(t, err)
		})
	}
}
