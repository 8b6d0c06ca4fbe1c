package logbook

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestWriteAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "journey.log")
	lb, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	lb.Info("logged in", zap.Int64("user_id", 7))
	lb.Warn("request failed")
	lb.Info("application submitted")
	lb.Sync()

	lines := lb.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("expected 2 tail lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "request failed") {
		t.Fatalf("wrong tail window: %v", lines)
	}
	if !strings.Contains(lines[1], "application submitted") {
		t.Fatalf("wrong tail window: %v", lines)
	}
}

func TestTailWithoutEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey.log")
	lb, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	if lines := lb.Tail(4); lines != nil {
		t.Fatalf("expected no tail lines, got %v", lines)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var lb *Logbook
	lb.Info("ignored")
	lb.Warn("ignored")
	lb.Error("ignored")
	lb.Sync()
	if got := lb.Path(); got != "" {
		t.Fatalf("nil path must be empty, got %q", got)
	}
	if lines := lb.Tail(4); lines != nil {
		t.Fatalf("nil tail must be empty, got %v", lines)
	}
}
