// Package render: JSON renderer.
// Writes the composed place as indented JSON.
package render

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// JSONRenderer produces an indented JSON document for a place.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals place with two-space indentation and a trailing newline.
func (r *JSONRenderer) Render(place *core.Place) ([]byte, error) {
	data, err := json.MarshalIndent(place, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "render: marshal json")
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
