// Package catalog declares the windows that exist on a desktop.
//
// A catalog lists each window's id, title and default geometry, and marks at
// most one window as the terminal. Every new desktop seeds its registry from
// the catalog, and the API rejects window ids the catalog does not declare.
//
// Formats:
//   - YAML (.yaml, .yml) via goccy/go-yaml
//   - TOML (.toml) via pelletier/go-toml
//   - JSON (.json) via bytedance/sonic
//
// All formats share one layout:
//
//	windows:
//	  - id: about
//	    title: About Me
//	    geometry: {x: 120, y: 80, width: 420, height: 300}
//	  - id: terminal
//	    title: Terminal
//	    terminal: true
//	    geometry: {x: 200, y: 140, width: 560, height: 340}
//
// When no path is configured the builtin catalog (about, terminal, projects,
// settings) is used.
package catalog
