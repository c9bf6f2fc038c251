package utils

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateWindowID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "about", false},
		{"with dash and underscore", "my-window_2", false},
		{"empty", "", true},
		{"space", "about me", true},
		{"path traversal", "../etc", true},
		{"html", "<script>", true},
		{"too long", strings.Repeat("a", MaxIDLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindowID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTerminalLine(t *testing.T) {
	assert.NoError(t, ValidateTerminalLine(""))
	assert.NoError(t, ValidateTerminalLine("about --secret"))
	assert.Error(t, ValidateTerminalLine("help\nexit"))
	assert.Error(t, ValidateTerminalLine("nul\x00byte"))
	assert.Error(t, ValidateTerminalLine(strings.Repeat("x", MaxTerminalLine+1)))
}

func TestValidateViewport(t *testing.T) {
	assert.NoError(t, ValidateViewport(1024, 768))
	assert.Error(t, ValidateViewport(0, 768))
	assert.Error(t, ValidateViewport(1024, math.NaN()))
	assert.Error(t, ValidateViewport(math.Inf(1), 768))
	assert.Error(t, ValidateViewport(1024, MaxViewportPixels+1))
}

func TestValidateSize(t *testing.T) {
	assert.NoError(t, ValidateSize(make([]byte, 10), 10))
	assert.Error(t, ValidateSize(make([]byte, 11), 10))
}
