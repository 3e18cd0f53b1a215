package tui

import (
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type boomMsg struct{}

func TestSafeModel_RecoversFromPanicInUpdate(t *testing.T) {
	s := wrapSafe(newModel(Deps{}), slog.New(slog.NewJSONHandler(io.Discard, nil)))
	s.m, _ = s.m.openScreen("Encode")

	// A nil converter makes the next conversion panic.
	s.m.conv = nil
	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})

	got, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if cmd != nil {
		t.Fatalf("expected nil cmd after panic")
	}
	if got.m.scr != screenHome || got.m.toast == "" {
		t.Fatalf("expected reset to home with toast, got scr=%v toast=%q", got.m.scr, got.m.toast)
	}
}

func TestSafeModel_RecoversFromPanicInView(t *testing.T) {
	s := wrapSafe(newModel(Deps{}), nil)
	s.m.conv = nil
	if out := s.View(); out != "Unexpected error (see logs)" {
		t.Fatalf("unexpected view %q", out)
	}
}

func TestSafeModel_PassesThrough(t *testing.T) {
	s := wrapSafe(newModel(Deps{}), nil)
	next, _ := s.Update(boomMsg{})
	if _, ok := next.(safeModel); !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
}
