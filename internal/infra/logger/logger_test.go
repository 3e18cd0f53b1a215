package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSONLines(t *testing.T) {
	tmp := t.TempDir()

	cleanup, err := Setup(Config{Root: tmp, Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	if err := IsReady(); err != nil {
		t.Fatalf("expected ready logger: %v", err)
	}

	want := filepath.Join(tmp, ".roman", "logs", "roman.log")
	if Path() != want {
		t.Fatalf("expected path %s, got %s", want, Path())
	}
	if InitTime().IsZero() {
		t.Fatalf("expected init time set")
	}

	L().Debug("convert.item", "input", "XIV")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d:\n%s", len(lines), b)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "convert.item" || rec["input"] != "XIV" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if _, ok := rec["source"]; !ok {
		t.Fatalf("expected source attr in debug mode")
	}
}

func TestCleanup_ResetsToDiscard(t *testing.T) {
	cleanup, err := Setup(Config{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	_ = cleanup()

	if IsReady() == nil {
		t.Fatalf("expected logger not ready after cleanup")
	}
	if Path() != "" {
		t.Fatalf("expected empty path after cleanup")
	}
}

func TestSetup_UnwritableRoot(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Setup(Config{Root: blocker}); err == nil {
		t.Fatalf("expected error when root is a file")
	}
	if IsReady() == nil {
		t.Fatalf("expected discard logger after failed setup")
	}
}
