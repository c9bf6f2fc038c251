package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{"stdout"}})
	assert.Error(t, err)
}

func TestNewWithRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desktop.log")

	logger, err := New(Config{
		Level:       "debug",
		OutputPaths: []string{"stdout"},
		File:        path,
	})
	require.NoError(t, err)

	logger.Named("desktop").Info("window opened", zap.String("window_id", "about"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"window_id":"about"`)
	assert.Contains(t, string(data), `"logger":"desktop"`)
}

func TestServerConfig(t *testing.T) {
	prod := ServerConfig("", false, "")
	assert.Equal(t, DefaultConfig(), prod)

	dev := ServerConfig("", true, "")
	assert.True(t, dev.Development)
	assert.Equal(t, "debug", dev.Level)

	custom := ServerConfig("warn", true, "/var/log/pelkos.log")
	assert.Equal(t, "warn", custom.Level)
	assert.Equal(t, "/var/log/pelkos.log", custom.File)
}
