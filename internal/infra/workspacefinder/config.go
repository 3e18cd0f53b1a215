package workspacefinder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/roman/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads roman.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Roman.Codec.Max != nil {
		if err := domain.ValidateMax(*y.Roman.Codec.Max); err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		cfg.Codec.Max = *y.Roman.Codec.Max
	}
	if f := strings.TrimSpace(y.Roman.Output.Format); f != "" {
		cfg.Output.Format = f
	}
	if y.Roman.Output.Template != "" {
		cfg.Output.Template = y.Roman.Output.Template
	}
	if y.Roman.Paths.BatchesDir != "" {
		cfg.Paths.BatchesDir = y.Roman.Paths.BatchesDir
	}
	if y.Roman.Paths.ReportsDir != "" {
		cfg.Paths.ReportsDir = y.Roman.Paths.ReportsDir
	}
	if y.Roman.Server.Addr != "" {
		cfg.Server.Addr = y.Roman.Server.Addr
	}

	return cfg, nil
}

type yamlConfig struct {
	Roman struct {
		Codec struct {
			Max *int `yaml:"max"`
		} `yaml:"codec"`

		Output struct {
			Format   string `yaml:"format"`
			Template string `yaml:"template"`
		} `yaml:"output"`

		Paths struct {
			BatchesDir string `yaml:"batches_dir"`
			ReportsDir string `yaml:"reports_dir"`
		} `yaml:"paths"`

		Server struct {
			Addr string `yaml:"addr"`
		} `yaml:"server"`
	} `yaml:"roman"`
}
