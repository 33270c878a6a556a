package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestHandlerWritesJSONAndHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "warn", FileOptions{}))

	logger.Info("draft_saved", "document_id", 1)
	logger.Warn("retry_attempt", "operation", "documents.list")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the warn record, got %d lines: %s", len(lines), buf.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("expected json record: %v", err)
	}
	if record["msg"] != "retry_attempt" || record["operation"] != "documents.list" {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestHandlerAlsoWritesRotatedFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "arquivia.log")
	logger := slog.New(newHandler(&buf, "info", FileOptions{Path: path}))

	logger.Info("draft_saved", "document_id", 42)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), `"document_id":42`) {
		t.Fatalf("expected record in file, got %s", raw)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected record on console writer too")
	}
}
