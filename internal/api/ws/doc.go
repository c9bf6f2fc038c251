// Package ws streams desktop sessions over WebSocket.
//
// A connection to /desktops/:id/stream subscribes to the session's hub and
// receives every desktop, boot, clock and terminal event as JSON. The client
// sends pointer and lifecycle messages on the same socket so drag_move does
// not pay for an HTTP round trip.
//
// Client messages:
//
//	{"type": "open", "window": "about"}
//	{"type": "drag_start", "window": "about", "x": 130, "y": 90}
//	{"type": "drag_move", "x": 400, "y": 300}
//	{"type": "drag_end"}
//	{"type": "boot", "key": "Enter"}
//	{"type": "terminal", "line": "neofetch"}
//	{"type": "viewport", "width": 1280, "height": 720}
//
// Lifecycle messages are acknowledged with {"type": "ack", "op", "success"};
// drag_move and terminal results arrive only as stream events.
package ws
