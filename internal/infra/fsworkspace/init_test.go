package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/infra/workspacefinder"
	"github.com/aalvaropc/roman/internal/infra/yamlbatch"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertExists(t, filepath.Join(tmp, "roman.yaml"))
	assertExists(t, filepath.Join(tmp, "batches", "sample.yaml"))
	assertExists(t, filepath.Join(tmp, "reports"))
	assertExists(t, filepath.Join(tmp, ".roman", "logs"))
	assertExists(t, filepath.Join(tmp, ".gitignore"))
}

func TestInitializer_Init_TemplatesAreLoadable(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg != domain.DefaultConfig() {
		t.Fatalf("expected template config to match defaults, got %+v", cfg)
	}

	b, err := yamlbatch.NewLoader().LoadBatch(filepath.Join(tmp, "batches", "sample.yaml"))
	if err != nil {
		t.Fatalf("LoadBatch error: %v", err)
	}
	if b.Name != "sample" || len(b.Items) == 0 {
		t.Fatalf("unexpected sample batch: %+v", b)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "roman.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing roman.yaml: %v", err)
	}

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read roman.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected roman.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read roman.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "roman:") {
		t.Fatalf("expected roman.yaml overwritten with template, got %q", string(b))
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s, stat err=%v", path, err)
	}
}
