package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpers_NoopBeforeInit(t *testing.T) {
	Set(nil)
	// Must not panic.
	Debug("x", "k", 1)
	Info("x")
	Warn("x")
	Error("x")
}

func TestSet_RoutesSugaredHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Debug("drag start", "key", "a")
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	e := logs.All()[0]
	if e.Message != "drag start" {
		t.Fatalf("message = %q", e.Message)
	}
	if got := e.ContextMap()["key"]; got != "a" {
		t.Fatalf("key field = %v, want a", got)
	}
}

func TestInit_WritesToEnvPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "setgrid.log")
	t.Setenv("SETGRID_LOG_FILE", path)

	if err := Init("", true); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Debug("hello", "n", 2)
	Close()
	Set(nil)

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Fatalf("expected log to contain message, got %q", string(b))
	}
}
