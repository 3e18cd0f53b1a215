package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicNotice = "Unexpected error (see logs)"

// safeModel keeps the program alive when Update or View panics: the panic is
// logged with its stack and the inner model goes back to the home screen.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) logPanic(where string, r any) {
	s.log.Error("tui.panic", "where", where, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
}

// recoverHome drops whatever screen state was in flight.
func (m model) recoverHome() model {
	m.scr = screenHome
	m.input.Blur()
	m.running = false
	m.toast = panicNotice
	return m
}

func (s safeModel) Init() tea.Cmd { return s.m.Init() }

func (s safeModel) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("update", r)
			s.m = s.m.recoverHome()
			next, cmd = s, nil
		}
	}()

	inner, c := s.m.Update(msg)
	switch v := inner.(type) {
	case model:
		s.m = v
	case safeModel:
		s = v
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("view", r)
			out = panicNotice
		}
	}()
	return s.m.View()
}

var _ tea.Model = safeModel{}
