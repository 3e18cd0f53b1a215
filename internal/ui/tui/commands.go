package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/infra/reportstore"
	"github.com/aalvaropc/roman/internal/infra/yamlbatch"
	"github.com/aalvaropc/roman/internal/usecase"
)

const batchTimeout = time.Minute

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, err: findErr}
		}
		return workspaceRefreshedMsg{cwd: wd, found: true, root: root}
	}
}

func cmdLoadBatches(root string, cfg domain.Config) tea.Cmd {
	return func() tea.Msg {
		loader := yamlbatch.NewLoader(yamlbatch.WithBatchesDir(cfg.Paths.BatchesDir))
		refs, err := loader.ListBatches(root)
		return batchesLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdRunBatch(root string, cfg domain.Config, conv *usecase.Converter, path string, log *slog.Logger) tea.Cmd {
	if log == nil {
		log = slog.Default()
	}
	return func() tea.Msg {
		log.Info("convert.start", "workspace", root, "batch_path", path, "max", conv.Max())

		uc := usecase.NewConvertBatch(
			yamlbatch.NewLoader(yamlbatch.WithBatchesDir(cfg.Paths.BatchesDir)),
			conv,
			reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true)),
		)

		ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
		defer cancel()

		report, id, err := uc.Execute(ctx, path)
		if err != nil {
			log.Error("convert.failed", "batch_path", path, "err", err)
			return batchDoneMsg{report: report, err: err}
		}

		for _, c := range report.Results {
			if c.Failed() {
				log.Warn("convert.item_failed", "input", c.Input, "direction", string(c.Direction))
			}
		}
		log.Info("convert.ok", "saved_id", id, "items", len(report.Results), "failures", report.Failures())
		return batchDoneMsg{report: report, id: id}
	}
}
