package tui

import (
	"log/slog"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/ports"
	"github.com/aalvaropc/roman/internal/usecase"
)

type Deps struct {
	WorkspaceLocator ports.WorkspaceLocator

	// Config is the effective configuration (file + env), used for batch paths.
	Config    domain.Config
	Converter *usecase.Converter

	Logger *slog.Logger
	Debug  bool
}
