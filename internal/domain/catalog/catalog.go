package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/PelkOS/backend/internal/utils"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Errors returned by the catalog
var (
	ErrUnknownWindow     = errors.New("unknown window")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrInvalidCatalog    = errors.New("invalid catalog")
)

// Supported file formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// MaxFileSize caps catalog files
const MaxFileSize = 1 << 20

// Rect is the default position and size of a window
type Rect struct {
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Window declares one window that exists on every desktop
type Window struct {
	ID       string `json:"id" yaml:"id" toml:"id"`
	Title    string `json:"title" yaml:"title" toml:"title"`
	Geometry Rect   `json:"geometry" yaml:"geometry" toml:"geometry"`
	Terminal bool   `json:"terminal,omitempty" yaml:"terminal" toml:"terminal"`
}

// DesktopGeometry converts the window's default rect to desktop geometry
func (w Window) DesktopGeometry() desktop.Geometry {
	return desktop.Geometry{
		X:      w.Geometry.X,
		Y:      w.Geometry.Y,
		Width:  w.Geometry.Width,
		Height: w.Geometry.Height,
	}
}

// file is the on-disk layout shared by every format
type file struct {
	Windows []Window `json:"windows" yaml:"windows" toml:"windows"`
}

// Catalog is an immutable, ordered set of windows
type Catalog struct {
	windows []Window
	index   map[string]int
}

// New builds a catalog, rejecting invalid or duplicate ids
func New(windows []Window) (*Catalog, error) {
	c := &Catalog{
		windows: make([]Window, 0, len(windows)),
		index:   make(map[string]int, len(windows)),
	}

	terminals := 0
	for _, w := range windows {
		if err := utils.ValidateWindowID(w.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if _, dup := c.index[w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate window %q", ErrInvalidCatalog, w.ID)
		}
		if w.Geometry.Width < 0 || w.Geometry.Height < 0 {
			return nil, fmt.Errorf("%w: window %q has negative size", ErrInvalidCatalog, w.ID)
		}
		if w.Terminal {
			terminals++
		}
		if w.Title == "" {
			w.Title = w.ID
		}
		c.index[w.ID] = len(c.windows)
		c.windows = append(c.windows, w)
	}

	if len(c.windows) == 0 {
		return nil, fmt.Errorf("%w: no windows declared", ErrInvalidCatalog)
	}
	if terminals > 1 {
		return nil, fmt.Errorf("%w: more than one terminal window", ErrInvalidCatalog)
	}

	return c, nil
}

// Builtin returns the catalog used when no file is configured
func Builtin() *Catalog {
	c, err := New([]Window{
		{ID: "about", Title: "About Me", Geometry: Rect{X: 120, Y: 80, Width: 420, Height: 300}},
		{ID: "terminal", Title: "Terminal", Geometry: Rect{X: 200, Y: 140, Width: 560, Height: 340}, Terminal: true},
		{ID: "projects", Title: "Projects", Geometry: Rect{X: 160, Y: 110, Width: 480, Height: 360}},
		{ID: "settings", Title: "Settings", Geometry: Rect{X: 240, Y: 170, Width: 380, Height: 280}},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog file, choosing the decoder by extension
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: file is %d bytes, limit is %d", ErrInvalidCatalog, info.Size(), MaxFileSize)
	}

	// One byte past the cap lets Parse reject files that grew after Stat
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Parse(data, format)
}

// LoadOrBuiltin loads path, or returns the builtin catalog when path is empty
func LoadOrBuiltin(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	return Load(path)
}

// FormatFromPath maps a file extension to a format name
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes catalog data in the given format
func Parse(data []byte, format string) (*Catalog, error) {
	if err := utils.ValidateSize(data, MaxFileSize); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var f file

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse TOML catalog: %w", err)
		}
	case FormatJSON:
		if err := sonic.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return New(f.Windows)
}

// Encode writes the catalog in the given format
func (c *Catalog) Encode(format string) ([]byte, error) {
	f := file{Windows: c.Windows()}

	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatTOML:
		return toml.Marshal(f)
	case FormatJSON:
		return sonic.MarshalIndent(f, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Lookup returns the window declared with id
func (c *Catalog) Lookup(id string) (Window, error) {
	i, ok := c.index[id]
	if !ok {
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownWindow, id)
	}
	return c.windows[i], nil
}

// Has reports whether id is declared
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Windows returns the declared windows in order
func (c *Catalog) Windows() []Window {
	out := make([]Window, len(c.windows))
	copy(out, c.windows)
	return out
}

// Len returns the number of declared windows
func (c *Catalog) Len() int {
	return len(c.windows)
}

// Geometries returns the default geometry of every window, keyed by id
func (c *Catalog) Geometries() map[string]desktop.Geometry {
	out := make(map[string]desktop.Geometry, len(c.windows))
	for _, w := range c.windows {
		out[w.ID] = w.DesktopGeometry()
	}
	return out
}

// TerminalID returns the id of the terminal window, if one is declared
func (c *Catalog) TerminalID() (string, bool) {
	for _, w := range c.windows {
		if w.Terminal {
			return w.ID, true
		}
	}
	return "", false
}
