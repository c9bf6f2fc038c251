// Package clock drives the taskbar clock.
//
// The clock is read-only and shares no state with window management.
// Run pushes "HH:MM" to a sink once per interval until its context ends.
package clock
