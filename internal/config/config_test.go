package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"WEALTH_STORE", "WEALTH_STORE_PATH", "WEALTH_RECORD_KEY", "WEALTH_SYNC_INTERVAL",
		"MONGO_URI", "MONGO_DATABASE", "NEO4J_URI", "NEO4J_DATABASE", "NEO4J_USERNAME", "NEO4J_PASSWORD",
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_COLOR",
	} {
		t.Setenv(key, "")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Store:   StoreConfig{Backend: "file", Path: ".wealth", Key: "financialData"},
		Mongo:   MongoConfig{URI: "mongodb://localhost:27017", Database: "wealth"},
		HTTP:    HTTPConfig{Host: "0.0.0.0", Port: 8080, ReadTimeout: 10 * time.Second, WriteTimeout: 15 * time.Second, ShutdownTimeout: 10 * time.Second},
		Logging: LoggingConfig{Level: "info", Format: "text", Colored: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if addr := got.HTTP.Addr(); addr != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", addr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WEALTH_STORE", "sqlite")
	t.Setenv("WEALTH_STORE_PATH", "/tmp/w.db")
	t.Setenv("WEALTH_SYNC_INTERVAL", "30s")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "1m")
	t.Setenv("LOG_COLOR", "false")
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Store.Backend != "sqlite" || got.Store.Path != "/tmp/w.db" || got.Store.SyncInterval != 30*time.Second {
		t.Errorf("Store = %+v", got.Store)
	}
	if got.HTTP.Port != 9090 || got.HTTP.ShutdownTimeout != time.Minute {
		t.Errorf("HTTP = %+v", got.HTTP)
	}
	if got.Logging.Colored {
		t.Errorf("Logging.Colored = true, want false")
	}
	if got.Graph.URI != "bolt://localhost:7687" {
		t.Errorf("Graph.URI = %q", got.Graph.URI)
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		key, value string
	}{
		{"WEALTH_STORE", "postgres"},
		{"SERVER_PORT", "http"},
		{"SERVER_PORT", "70000"},
		{"SERVER_READ_TIMEOUT", "soon"},
		{"WEALTH_SYNC_INTERVAL", "-1s"},
	}
	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() error = nil, want an error")
			}
		})
	}
}
