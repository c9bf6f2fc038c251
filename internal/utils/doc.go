// Package utils provides input validation shared by the HTTP and WebSocket APIs.
//
// Validation:
//   - Window ids: 1-64 characters of [a-zA-Z0-9_-]
//   - Terminal lines: at most 512 runes, no newlines, no NUL bytes
//   - Viewport sizes: finite, between 1 and 16384 pixels
//   - Payload sizes for WebSocket frames
//
// Every failure wraps ErrInvalid so handlers can map it to 400.
//
// Example Usage:
//
//	if err := utils.ValidateWindowID(c.Param("win")); err != nil {
//	    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
//	    return
//	}
package utils
