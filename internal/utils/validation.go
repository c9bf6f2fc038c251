package utils

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Size limits (in bytes or runes)
const (
	MaxMessageSize    = 16 * 1024 // 16KB - single WebSocket frame
	MaxIDLength       = 64
	MaxTerminalLine   = 512
	MaxViewportPixels = 16384
	MinViewportPixels = 1
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid input")

var (
	// SafeIDPattern allows only safe characters in window ids
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalid, fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalid, fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%w: %s must be at least %d characters", ErrInvalid, fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalid, fieldName, maxLen)
	}

	// Check for null bytes
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%w: %s contains invalid characters", ErrInvalid, fieldName)
	}

	return nil
}

// ValidateWindowID validates a window id from a URL or message
func ValidateWindowID(id string) error {
	if err := ValidateString(id, "window id", 1, MaxIDLength, true); err != nil {
		return err
	}

	if !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%w: window id contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", ErrInvalid)
	}

	return nil
}

// ValidateTerminalLine validates one line typed into the terminal.
// Empty lines are allowed.
func ValidateTerminalLine(line string) error {
	if err := ValidateString(line, "line", 0, MaxTerminalLine, false); err != nil {
		return err
	}
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("%w: line must not contain newlines", ErrInvalid)
	}
	return nil
}

// ValidateViewport validates a browser viewport size
func ValidateViewport(width, height float64) error {
	for name, v := range map[string]float64{"width": width, "height": height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalid, name)
		}
		if v < MinViewportPixels || v > MaxViewportPixels {
			return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalid, name, MinViewportPixels, MaxViewportPixels)
		}
	}
	return nil
}

// ValidateSize checks that a payload is within maxSize bytes
func ValidateSize(data []byte, maxSize int) error {
	if len(data) > maxSize {
		return fmt.Errorf("%w: payload size %d bytes exceeds maximum %d bytes", ErrInvalid, len(data), maxSize)
	}
	return nil
}
