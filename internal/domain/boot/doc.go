// Package boot implements the boot screen that gates a desktop.
//
// A desktop starts on the boot screen. The first Enter key press hides it,
// plays the boot sound and, after a short delay, opens the configured window
// ("about" by default). Later presses do nothing. Stopping the gate cancels
// an auto-open that has not fired yet.
package boot
