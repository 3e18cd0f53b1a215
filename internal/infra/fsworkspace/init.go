package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/ports"
)

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init lays out a workspace under spec.Root. Existing files are kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	for _, d := range []string{"batches", "reports", filepath.Join(".roman", "logs")} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return wrapInit(filepath.Join(root, d), err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return wrapInit(filepath.Join(root, ".gitignore"), err)
	}

	return copyTemplates(root, force)
}

// copyTemplates mirrors the embedded templates/ tree into root.
func copyTemplates(root string, force bool) error {
	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		dst := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(p, "templates/")))
		return writeTemplate(p, dst, force)
	})
}

func writeTemplate(src, dst string, force bool) error {
	if _, err := os.Stat(dst); err == nil && !force {
		return nil
	}

	b, err := templatesFS.ReadFile(src)
	if err != nil {
		return wrapInit(src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return wrapInit(dst, err)
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return wrapInit(dst, err)
	}
	return nil
}

func wrapInit(path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

const gitignoreHeader = "# roman"

var gitignoreEntries = []string{
	"reports/",
	".roman/",
}

func ensureGitignore(root string) error {
	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{gitignoreHeader}, gitignoreEntries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range gitignoreEntries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[gitignoreHeader] {
		out.WriteString(gitignoreHeader)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
