package tui

import "github.com/aalvaropc/roman/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type batchesLoadedMsg struct {
	root string
	refs []domain.BatchRef
	err  error
}

type batchDoneMsg struct {
	report domain.BatchReport
	id     string
	err    error
}
