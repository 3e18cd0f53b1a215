package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/infra/envconfig"
	"github.com/aalvaropc/roman/internal/infra/reportstore"
	"github.com/aalvaropc/roman/internal/infra/workspacefinder"
	"github.com/aalvaropc/roman/internal/infra/yamlbatch"
	"github.com/aalvaropc/roman/internal/ports"
	"github.com/aalvaropc/roman/internal/usecase"
)

// settings is the effective configuration for a command. root is empty when
// the command runs outside a workspace.
type settings struct {
	root string
	cfg  domain.Config
	conv *usecase.Converter
}

type workspaceCtx struct {
	settings

	batches ports.BatchLoader
	store   ports.ReportStore
}

// loadSettings reads roman.yaml when a workspace is found (or given) and
// falls back to defaults otherwise. ROMAN_* variables apply in both cases.
func loadSettings(workspaceFlag string) (*settings, error) {
	cfg := domain.DefaultConfig()
	root, err := resolveWorkspaceRoot(workspaceFlag)
	switch {
	case err == nil:
		if cfg, err = workspacefinder.LoadConfig(root); err != nil {
			return nil, err
		}
	case strings.TrimSpace(workspaceFlag) != "":
		return nil, err
	default:
		root = ""
	}

	cfg, err = envconfig.Apply(cfg)
	if err != nil {
		return nil, err
	}
	return newSettings(root, cfg)
}

func newSettings(root string, cfg domain.Config) (*settings, error) {
	codec, err := cfg.NewCodec()
	if err != nil {
		return nil, err
	}
	return &settings{root: root, cfg: cfg, conv: usecase.NewConverter(codec)}, nil
}

// withMax overrides the codec ceiling when the --max flag was set.
func (s *settings) withMax(changed bool, ceiling int) error {
	if !changed {
		return nil
	}
	if err := domain.ValidateMax(ceiling); err != nil {
		return err
	}
	s.cfg.Codec.Max = ceiling
	s.conv = usecase.NewConverter(domain.NewCodec(domain.WithMax(ceiling)))
	return nil
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	st, err := loadSettings(workspaceFlag)
	if err != nil {
		return nil, err
	}
	if st.root == "" {
		wd, _ := os.Getwd()
		return nil, fmt.Errorf("workspace not found from %q (tip: run `roman init`)", wd)
	}
	return newWorkspaceCtx(st), nil
}

func newWorkspaceCtx(st *settings) *workspaceCtx {
	return &workspaceCtx{
		settings: *st,
		batches:  yamlbatch.NewLoader(yamlbatch.WithBatchesDir(st.cfg.Paths.BatchesDir)),
		store:    reportstore.NewJSONStore(st.root, st.cfg, reportstore.WithIndex(true)),
	}
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		if !fileExists(filepath.Join(abs, workspacefinder.ConfigFile)) {
			return "", fmt.Errorf("no %s in %q (tip: run `roman init --path %s`)", workspacefinder.ConfigFile, abs, w)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `roman init`): %w", wd, err)
	}
	return root, nil
}

func resolveBatchPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("batch is required")
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	batchesDir := filepath.Join(ws.root, ws.cfg.Paths.BatchesDir)

	if hasYAMLExt(in) {
		p := filepath.Join(batchesDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	for _, ext := range []string{".yaml", ".yml"} {
		if p := filepath.Join(batchesDir, in+ext); fileExists(p) {
			return p, nil
		}
	}

	// Last resort: match by the batch "name" field.
	refs, err := ws.batches.ListBatches(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("batch %q not found in %q", in, batchesDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
