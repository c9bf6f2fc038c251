package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCatalog = `windows:
  - id: about
    title: About Me
    geometry:
      x: 10
      y: 20
      width: 300
      height: 200
  - id: terminal
    terminal: true
    geometry:
      x: 50
      y: 60
      width: 500
      height: 300
`

const tomlCatalog = `[[windows]]
id = "about"
title = "About Me"

[windows.geometry]
x = 10
y = 20
width = 300
height = 200

[[windows]]
id = "terminal"
terminal = true

[windows.geometry]
x = 50
y = 60
width = 500
height = 300
`

const jsonCatalog = `{"windows": [
  {"id": "about", "title": "About Me", "geometry": {"x": 10, "y": 20, "width": 300, "height": 200}},
  {"id": "terminal", "terminal": true, "geometry": {"x": 50, "y": 60, "width": 500, "height": 300}}
]}`

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"catalog.yaml", yamlCatalog},
		{"catalog.yml", yamlCatalog},
		{"catalog.toml", tomlCatalog},
		{"catalog.json", jsonCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			c, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, 2, c.Len())

			about, err := c.Lookup("about")
			require.NoError(t, err)
			assert.Equal(t, "About Me", about.Title)
			assert.Equal(t, desktop.Geometry{X: 10, Y: 20, Width: 300, Height: 200}, about.DesktopGeometry())

			term, err := c.Lookup("terminal")
			require.NoError(t, err)
			assert.Equal(t, "terminal", term.Title, "title defaults to id")

			id, ok := c.TerminalID()
			assert.True(t, ok)
			assert.Equal(t, "terminal", id)
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("windows.ini")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseRejectsOversizedFile(t *testing.T) {
	data := make([]byte, MaxFileSize+1)
	_, err := Parse(data, FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows.json")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxFileSize+1), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		windows []Window
	}{
		{"empty", nil},
		{"bad id", []Window{{ID: "../x"}}},
		{"duplicate", []Window{{ID: "a"}, {ID: "a"}}},
		{"negative size", []Window{{ID: "a", Geometry: Rect{Width: -1}}}},
		{"two terminals", []Window{{ID: "a", Terminal: true}, {ID: "b", Terminal: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.windows)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
		})
	}
}

func TestBuiltin(t *testing.T) {
	c := Builtin()

	for _, id := range []string{"about", "terminal", "projects", "settings"} {
		assert.True(t, c.Has(id), id)
	}
	assert.False(t, c.Has("missing"))

	_, err := c.Lookup("missing")
	assert.True(t, errors.Is(err, ErrUnknownWindow))

	geoms := c.Geometries()
	assert.Len(t, geoms, 4)
	assert.Equal(t, 420.0, geoms["about"].Width)
}

func TestEncodeYAML(t *testing.T) {
	data, err := Builtin().Encode(FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id: terminal")

	_, err = Builtin().Encode("xml")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestWindowsReturnsCopy(t *testing.T) {
	c := Builtin()
	ws := c.Windows()
	ws[0].ID = "changed"

	assert.True(t, c.Has("about"))
	w, _ := c.Lookup("about")
	assert.Equal(t, "about", w.ID)
}
