// Package desktop implements window management for a PelkOS desktop.
//
// The browser renders windows; this package owns their authoritative state.
// Every window is identified by a string id declared in the window catalog.
//
// Key Components:
//   - Viewport: legal position range for a window, clamped on every drag move
//   - Registry: per-window visibility, geometry, maximize memory and z-order
//   - FocusManager: monotonic z-order counter and the single active window
//   - DragController: one press-move-release gesture at a time (idle/dragging)
//   - Lifecycle: open, close, minimize, maximize/restore and toggle
//   - Taskbar: one entry per open window, highlighted when active
//
// Desktop ties the components together behind one mutex and publishes an
// Event after every change.
//
// Example Usage:
//
//	d := desktop.New(desktop.Options{
//	    Viewport:        desktop.Viewport{Width: 1024, Height: 768, TaskbarHeight: 36},
//	    DefaultGeometry: desktop.Geometry{X: 120, Y: 80, Width: 480, Height: 320},
//	})
//	d.Open("about")
//	d.DragStart("about", desktop.Point{X: 130, Y: 90})
//	d.DragMove(desktop.Point{X: 400, Y: 300})
//	d.DragEnd()
package desktop
