package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestSensitiveValuesAreRedacted(t *testing.T) {
	log, logs := observed()
	log.Info("calling provider", "api_key", "sk-123", "Authorization", "Bearer x", "model", "m1")
	log.With("jwt_secret", "s3cr3t").Warn("with fields")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["api_key"] != "[REDACTED]" || ctx["Authorization"] != "[REDACTED]" {
		t.Errorf("secrets leaked: %v", ctx)
	}
	if ctx["model"] != "m1" {
		t.Errorf("model = %v", ctx["model"])
	}
	if got := entries[1].ContextMap()["jwt_secret"]; got != "[REDACTED]" {
		t.Errorf("jwt_secret = %v", got)
	}
}

func TestOddKeyValues(t *testing.T) {
	got := sanitizeKVs([]interface{}{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Errorf("sanitizeKVs = %v", got)
	}
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.Debug("hello")
	}
	Nop().Error("discarded")
}
