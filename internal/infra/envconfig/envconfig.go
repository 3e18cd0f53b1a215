// Package envconfig overlays ROMAN_* environment variables on a loaded config.
package envconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"

	"github.com/aalvaropc/roman/internal/domain"
)

// Env lists the supported variables. Zero values mean "not set".
type Env struct {
	// Max is the codec ceiling. ENV: ROMAN_MAX
	Max int `env:"ROMAN_MAX"`
	// Format is the default output format. ENV: ROMAN_FORMAT
	Format string `env:"ROMAN_FORMAT"`
	// Template is the output template for --format template. ENV: ROMAN_TEMPLATE
	Template string `env:"ROMAN_TEMPLATE"`
	// Addr is the listen address for serve. ENV: ROMAN_ADDR
	Addr string `env:"ROMAN_ADDR"`
}

// decode is swapped in tests.
var decode = envdecode.Decode

// Read decodes the environment. No variable set is not an error.
func Read() (Env, error) {
	var e Env
	if err := decode(&e); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Env{}, &domain.OpError{
			Op:   "envconfig.read",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	return e, nil
}

// Apply returns cfg with the environment overrides applied.
func Apply(cfg domain.Config) (domain.Config, error) {
	e, err := Read()
	if err != nil {
		return cfg, err
	}
	return e.Overlay(cfg)
}

// Overlay applies the set fields of e on top of cfg.
func (e Env) Overlay(cfg domain.Config) (domain.Config, error) {
	if e.Max != 0 {
		if err := domain.ValidateMax(e.Max); err != nil {
			return cfg, &domain.OpError{
				Op:    "envconfig.apply",
				Kind:  domain.KindInvalidConfig,
				Input: fmt.Sprintf("ROMAN_MAX=%d", e.Max),
				Err:   err,
			}
		}
		cfg.Codec.Max = e.Max
	}
	if f := strings.TrimSpace(e.Format); f != "" {
		cfg.Output.Format = f
	}
	if e.Template != "" {
		cfg.Output.Template = e.Template
	}
	if a := strings.TrimSpace(e.Addr); a != "" {
		cfg.Server.Addr = a
	}
	return cfg, nil
}
