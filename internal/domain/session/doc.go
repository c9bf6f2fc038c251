// Package session manages independent desktop sessions.
//
// Each browser tab gets its own Session: a desktop.Desktop, a boot gate, a
// terminal interpreter with scrollback, a ticking clock, and a Hub that
// streams every change to WebSocket subscribers. Sessions live in memory
// only and are closed after SESSION_TTL without activity.
//
// Example Usage:
//
//	mgr := session.NewManager(session.Options{
//	    Catalog:  catalog.Builtin(),
//	    Viewport: desktop.Viewport{Width: 1024, Height: 768, TaskbarHeight: 36},
//	    AutoOpen: "about",
//	    TTL:      30 * time.Minute,
//	}).WithMetrics(metrics)
//	go mgr.Run(ctx, time.Minute)
//
//	s, _ := mgr.Create()
//	s.Press("Enter")
//	r, err := s.Execute("neofetch") // ErrTerminalHidden unless the terminal is open
package session
