package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false
	for _, fn := range mutate {
		fn(cfg)
	}

	srv, err := New(cfg, &logging.Logger{Logger: zap.NewNop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func serve(srv *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestRoutesWired(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, "POST", "/desktops")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	for _, action := range []string{"open", "maximize", "focus", "minimize", "toggle", "close"} {
		w = serve(srv, "POST", "/desktops/"+created.ID+"/windows/about/"+action)
		assert.Equal(t, http.StatusOK, w.Code, action)
	}

	assert.Equal(t, http.StatusOK, serve(srv, "GET", "/health").Code)
	assert.Equal(t, http.StatusOK, serve(srv, "GET", "/catalog").Code)
	assert.Equal(t, http.StatusOK, serve(srv, "DELETE", "/desktops/"+created.ID).Code)
}

func TestPrometheusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := serve(srv, "POST", "/desktops")
	require.Equal(t, http.StatusCreated, w.Code)

	w = serve(srv, "GET", "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "desktop_sessions_created_total 1")
	assert.Contains(t, w.Body.String(), `desktop_http_requests_total{method="POST",path="/desktops",status="201"} 1`)
}

func TestDebugTraces(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusCreated, serve(srv, "POST", "/desktops").Code)

	var body struct {
		Spans []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"spans"`
	}
	require.Eventually(t, func() bool {
		w := serve(srv, "GET", "/debug/traces?limit=5")
		if w.Code != http.StatusOK || json.Unmarshal(w.Body.Bytes(), &body) != nil {
			return false
		}
		for _, span := range body.Spans {
			if span.Name == "POST /desktops" && span.Kind == "http" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, http.StatusBadRequest, serve(srv, "GET", "/debug/traces?limit=abc").Code)
}

func TestDesktopCreationIsCapped(t *testing.T) {
	srv := newTestServer(t, func(c *config.Config) {
		c.RateLimit.Enabled = true
		c.RateLimit.RequestsPerSecond = 1000
		c.RateLimit.Burst = 1000
		c.RateLimit.CreatePerSecond = 1
		c.RateLimit.CreateBurst = 1
	})

	assert.Equal(t, http.StatusCreated, serve(srv, "POST", "/desktops").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(srv, "POST", "/desktops").Code)
	assert.Equal(t, http.StatusOK, serve(srv, "GET", "/desktops").Code)
}

func TestMetricsDisabled(t *testing.T) {
	srv := newTestServer(t, func(c *config.Config) { c.Metrics.Enabled = false })
	assert.Equal(t, http.StatusNotFound, serve(srv, "GET", "/metrics").Code)
}

func TestCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows.yaml")
	require.NoError(t, os.WriteFile(path, []byte("windows:\n  - id: notes\n    title: Notes\n"), 0o644))

	srv := newTestServer(t, func(c *config.Config) {
		c.Desktop.CatalogPath = path
		c.Desktop.AutoOpen = "notes"
	})

	assert.True(t, srv.Sessions().Catalog().Has("notes"))
	assert.False(t, srv.Sessions().Catalog().Has("about"))
}

func TestBadCatalogFails(t *testing.T) {
	cfg := config.Default()
	cfg.Desktop.CatalogPath = filepath.Join(t.TempDir(), "windows.ini")

	_, err := New(cfg, &logging.Logger{Logger: zap.NewNop()})
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv := newTestServer(t, func(c *config.Config) {
		c.Server.Host = "127.0.0.1"
		c.Server.Port = strconv.Itoa(port)
		c.Server.ShutdownTimeout = time.Second
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
