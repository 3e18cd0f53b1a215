package yamlbatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/roman/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadBatch_Valid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "years.yaml")
	writeFile(t, p, `
name: Years
direction: auto
items:
  - 14
  - XIV
  - input: 1984
    expect: MCMLXXXIV
  - input: IIII
    expect_error: non_canonical
  - input: "7"
    direction: decode
`)

	b, err := NewLoader().LoadBatch(p)
	if err != nil {
		t.Fatalf("LoadBatch error: %v", err)
	}

	if b.Name != "Years" {
		t.Fatalf("expected name=Years, got=%s", b.Name)
	}
	if b.Direction != domain.DirectionAuto {
		t.Fatalf("expected auto, got=%s", b.Direction)
	}
	if len(b.Items) != 5 {
		t.Fatalf("expected 5 items, got=%d", len(b.Items))
	}
	if b.Items[0].Input != "14" || b.Items[1].Input != "XIV" {
		t.Fatalf("unexpected scalar items: %+v", b.Items[:2])
	}
	if b.Items[2].Input != "1984" || b.Items[2].Expect == nil || *b.Items[2].Expect != "MCMLXXXIV" {
		t.Fatalf("unexpected mapping item: %+v", b.Items[2])
	}
	if b.Items[3].ExpectError != domain.KindNonCanonical {
		t.Fatalf("expected expect_error=non_canonical, got=%q", b.Items[3].ExpectError)
	}
	if b.Items[4].Direction != domain.DirectionDecode {
		t.Fatalf("expected item direction decode, got=%q", b.Items[4].Direction)
	}
}

func TestLoadBatch_NameDefaultsToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "quick.yml")
	writeFile(t, p, "items:\n  - 1\n")

	b, err := NewLoader().LoadBatch(p)
	if err != nil {
		t.Fatalf("LoadBatch error: %v", err)
	}
	if b.Name != "quick" {
		t.Fatalf("expected name=quick, got=%s", b.Name)
	}
}

func TestLoadBatch_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		field   string
	}{
		{"no items", "name: x\n", "items"},
		{"bad direction", "direction: up\nitems: [1]\n", "direction"},
		{"bad item direction", "items:\n  - input: 1\n    direction: up\n", "items[0].direction"},
		{"missing input", "items:\n  - 1\n  - expect: XIV\n", "items[1].input"},
		{"bad expect_error", "items:\n  - input: 1\n    expect_error: boom\n", "items[0].expect_error"},
		{"unknown key", "items:\n  - 1\n  - input: 2\n    expected: II\n", "items[1]"},
	}
	for _, c := range cases {
		p := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, p, c.content)

		_, err := NewLoader().LoadBatch(p)
		if !domain.IsKind(err, domain.KindInvalidConfig) {
			t.Fatalf("%s: expected invalid config, got %v", c.name, err)
		}
		if !strings.Contains(err.Error(), c.field) {
			t.Fatalf("%s: expected field %q in error, got %v", c.name, c.field, err)
		}
		if !strings.Contains(err.Error(), p) {
			t.Fatalf("%s: expected path in error, got %v", c.name, err)
		}
	}
}

func TestLoadBatch_NestedItemRejected(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, p, "items:\n  - [1, 2]\n")

	_, err := NewLoader().LoadBatch(p)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestLoadBatch_Missing(t *testing.T) {
	_, err := NewLoader().LoadBatch(filepath.Join(t.TempDir(), "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListBatches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "in", "b.yaml"), "name: Beta\nitems: [1]\n")
	writeFile(t, filepath.Join(root, "in", "a.yml"), "items: [1]\n")
	writeFile(t, filepath.Join(root, "in", "notes.txt"), "ignore me")

	refs, err := NewLoader(WithBatchesDir("in")).ListBatches(root)
	if err != nil {
		t.Fatalf("ListBatches error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d: %+v", len(refs), refs)
	}
	if refs[0].Name != "Beta" || refs[1].Name != "a" {
		t.Fatalf("unexpected order/names: %+v", refs)
	}
}

func TestListBatches_MissingDir(t *testing.T) {
	_, err := NewLoader().ListBatches(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
