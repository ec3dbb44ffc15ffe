package application

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/blackbox-sd/internal/config"
)

func TestNewInitializesDependencies(t *testing.T) {
	settings := baseTestSettings(":8085")
	logger := zaptest.NewLogger(t)

	app, err := New(settings, config.Config{}, logger)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if app.server == nil || app.router == nil || app.handler == nil {
		t.Fatalf("expected server, router, and handler to be initialized")
	}
	if app.Server() != app.server {
		t.Fatalf("Server accessor did not return underlying instance")
	}
	if app.Handler() != app.router {
		t.Fatalf("Handler accessor did not return router")
	}
	if app.server.Handler != app.router {
		t.Fatalf("expected server to serve the router")
	}
}

func TestNewRequiresLogger(t *testing.T) {
	if _, err := New(baseTestSettings(":0"), config.Config{}, nil); err == nil {
		t.Fatalf("expected error without logger")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	settings := baseTestSettings("9090")
	handler := http.NewServeMux()

	server := NewServer(settings, handler)
	if server.Addr != ":9090" {
		t.Fatalf("expected address :9090, got %s", server.Addr)
	}
	if server.Handler != handler {
		t.Fatalf("expected handler to be applied")
	}
	if server.ReadHeaderTimeout != settings.ReadHeaderTimeout ||
		server.WriteTimeout != settings.WriteTimeout ||
		server.IdleTimeout != settings.IdleTimeout {
		t.Fatalf("server timeouts do not match configuration")
	}
}

func TestNewServerKeepsHostPort(t *testing.T) {
	server := NewServer(baseTestSettings("127.0.0.1:9000"), http.NewServeMux())
	if server.Addr != "127.0.0.1:9000" {
		t.Fatalf("expected address to be kept, got %s", server.Addr)
	}
}

func TestLoadedDocumentServedOverHTTP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sd.yaml")
	doc := `
target:
  - module: http_2xx
    url: https://a
    tags: [web]
  - module: http_2xx
    url: https://b
    tags: [web, api]
endpoint:
  - address: 1.2.3.4:1
    geohash: g1
    name: E1
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	app, err := New(baseTestSettings(":0"), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var groups []struct {
		Targets []string          `json:"targets"`
		Labels  map[string]string `json:"labels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Labels["__target__tag"] != "web" || !slices.Equal(groups[0].Targets, []string{"https://a", "https://b"}) {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Labels["__target__tag"] != "api" || !slices.Equal(groups[1].Targets, []string{"https://b"}) {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
	for _, g := range groups {
		if g.Labels["__endpoint__name"] != "E1" || g.Labels["__endpoint__url"] != "1.2.3.4:1" || g.Labels["__endpoint__geohash"] != "g1" {
			t.Fatalf("unexpected endpoint labels: %v", g.Labels)
		}
	}

	health, err := http.Get(srv.URL + "/healthcheck")
	if err != nil {
		t.Fatalf("GET /healthcheck: %v", err)
	}
	defer health.Body.Close()
	body, _ := io.ReadAll(health.Body)
	if health.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Fatalf("unexpected healthcheck response: %d %q", health.StatusCode, body)
	}
}

func baseTestSettings(port string) config.ServerConfig {
	return config.ServerConfig{
		Port:                 port,
		LogLevel:             "info",
		ShutdownGracePeriod:  50 * time.Millisecond,
		ReadHeaderTimeout:    20 * time.Millisecond,
		WriteTimeout:         30 * time.Millisecond,
		IdleTimeout:          40 * time.Millisecond,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}
