package tui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/usecase"
)

type screen int

const (
	screenHome screen = iota
	screenConvert
	screenTable
	screenBatches
)

const (
	historySize = 8
	tableRows   = 12
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps
	conv  *usecase.Converter
	log   *slog.Logger

	scr  screen
	menu list.Model

	input   textinput.Model
	dir     domain.Direction
	current domain.Conversion
	history []domain.Conversion

	table    []domain.Conversion
	tableErr string

	batches     []domain.BatchRef
	batchCursor int
	batchesErr  string
	running     bool
	report      *domain.BatchReport
	reportID    string

	toast string

	workspaceFound bool
	workspaceRoot  string
}

func Run(deps Deps) error {
	p := tea.NewProgram(wrapSafe(newModel(deps), deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	conv := deps.Converter
	if conv == nil {
		conv = usecase.NewConverter(nil)
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	items := []list.Item{
		menuItem{"Encode", fmt.Sprintf("Integer (1..%d) to numeral", conv.Max())},
		menuItem{"Decode", "Canonical numeral to integer"},
		menuItem{"Table", "Numerals for a range of integers"},
		menuItem{"Batches", "Convert a batch file and save a report"},
		menuItem{"Quit", "Exit roman"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "roman"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	in := textinput.New()
	in.CharLimit = 32
	in.Prompt = "› "

	return model{
		theme: DefaultTheme(),
		deps:  deps,
		conv:  conv,
		log:   log,
		scr:   screenHome,
		menu:  l,
		input: in,
	}
}

func (m model) Init() tea.Cmd {
	return cmdRefreshWorkspace(m.deps)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		m.input.Width = max(10, msg.Width-12)
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case batchesLoadedMsg:
		m.batches = msg.refs
		m.batchCursor = 0
		m.batchesErr = userMessage(msg.err, m.conv.Max())
		if msg.err == nil && len(msg.refs) == 0 {
			m.batchesErr = "No batches found"
		}
		return m, nil

	case batchDoneMsg:
		m.running = false
		if msg.err != nil {
			m.report = nil
			m.toast = userMessage(msg.err, m.conv.Max())
			return m, nil
		}
		r := msg.report
		m.report = &r
		m.reportID = msg.id
		m.toast = ""
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.scr {
		case screenHome:
			return m.updateHome(msg)
		case screenConvert, screenTable:
			return m.updateInput(msg)
		case screenBatches:
			return m.updateBatches(msg)
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenHome:
		m.menu, cmd = m.menu.Update(msg)
	case screenConvert, screenTable:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := m.menu.FilterState() == list.Filtering
	if !filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			it, ok := m.menu.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			return m.openScreen(it.title)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) openScreen(title string) (model, tea.Cmd) {
	m.toast = ""
	switch title {
	case "Encode", "Decode", "Table":
		m.scr = screenConvert
		m.dir = domain.DirectionEncode
		m.input.Placeholder = "e.g. 1984"
		switch title {
		case "Decode":
			m.dir = domain.DirectionDecode
			m.input.Placeholder = "e.g. MCMLXXXIV"
		case "Table":
			m.scr = screenTable
			m.input.Placeholder = "from..to, e.g. 1..22"
			m.table, m.tableErr = nil, ""
		}
		m.input.Reset()
		m.current = domain.Conversion{}
		m.history = nil
		focus := m.input.Focus()
		return m, tea.Batch(focus, textinput.Blink)

	case "Batches":
		m.scr = screenBatches
		m.batches, m.batchCursor, m.report, m.reportID = nil, 0, nil, ""
		if !m.workspaceFound {
			m.batchesErr = "No workspace found (run: roman init)"
			return m, nil
		}
		m.batchesErr = ""
		return m, cmdLoadBatches(m.workspaceRoot, m.deps.Config)

	case "Quit":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) goHome() (tea.Model, tea.Cmd) {
	m.scr = screenHome
	m.input.Blur()
	m.toast = ""
	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.goHome()

	case "enter":
		if m.scr == screenTable {
			m.buildTable()
			return m, nil
		}
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		m.convertCurrent()
		m.history = append([]domain.Conversion{m.current}, m.history...)
		if len(m.history) > historySize {
			m.history = m.history[:historySize]
		}
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.scr == screenConvert {
		m.convertCurrent()
	}
	return m, cmd
}

func (m *model) convertCurrent() {
	v := m.input.Value()
	if strings.TrimSpace(v) == "" {
		m.current = domain.Conversion{}
		return
	}
	m.current = m.conv.Convert(v, m.dir)
	if m.deps.Debug {
		m.log.Debug("tui.convert", "input", v, "direction", string(m.current.Direction), "failed", m.current.Error != nil)
	}
}

func (m *model) buildTable() {
	from, to, ok := parseRange(m.input.Value())
	if !ok {
		m.table, m.tableErr = nil, "Enter a range like 1..22"
		return
	}
	rows, err := usecase.NewTable(m.conv).Execute(from, to)
	if err != nil {
		m.table, m.tableErr = nil, userMessage(err, m.conv.Max())
		return
	}
	m.table, m.tableErr = rows, ""
}

// parseRange reads "a..b", "a-b", "a b" or a single "a".
func parseRange(s string) (int, int, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0, false
	}
	from, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}
	to := from
	if len(fields) == 2 {
		if to, err = strconv.Atoi(fields[1]); err != nil {
			return 0, 0, false
		}
	}
	return from, to, true
}

func (m model) updateBatches(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "q":
		return m.goHome()

	case "up", "k":
		if m.batchCursor > 0 {
			m.batchCursor--
		}
	case "down", "j":
		if m.batchCursor < len(m.batches)-1 {
			m.batchCursor++
		}
	case "r":
		if m.workspaceFound && !m.running {
			return m, cmdLoadBatches(m.workspaceRoot, m.deps.Config)
		}
	case "enter":
		if m.running || len(m.batches) == 0 {
			return m, nil
		}
		m.running = true
		m.toast = ""
		ref := m.batches[m.batchCursor]
		return m, cmdRunBatch(m.workspaceRoot, m.deps.Config, m.conv, ref.Path, m.log)
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("roman") + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("Roman numeral converter (1..%d)", m.conv.Max())) + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render("Workspace: " + m.workspaceRoot)
	} else {
		workspaceBanner = m.theme.Help.Render("No workspace (batches need `roman init`)")
	}

	var body, help string
	switch m.scr {
	case screenHome:
		body = m.menu.View()
		help = "↑/↓ navigate • enter open • / search • q quit"

	case screenConvert:
		title := "Encode"
		if m.dir == domain.DirectionDecode {
			title = "Decode"
		}
		var b strings.Builder
		b.WriteString(m.theme.Title.Render(title) + "\n\n")
		b.WriteString(m.input.View() + "\n\n")
		if m.current.Input != "" {
			line := conversionText(m.current, m.conv.Max())
			if m.current.Error != nil {
				line = m.theme.Error.Render(line)
			} else {
				line = m.theme.OK.Render(line)
			}
			b.WriteString(line + "\n")
		}
		if len(m.history) > 0 {
			b.WriteString("\n" + m.theme.Subtitle.Render("History") + "\n")
			for _, c := range m.history {
				b.WriteString("  " + conversionText(c, m.conv.Max()) + "\n")
			}
		}
		body = strings.TrimRight(b.String(), "\n")
		help = "enter keep • esc back"

	case screenTable:
		var b strings.Builder
		b.WriteString(m.theme.Title.Render("Table") + "\n\n")
		b.WriteString(m.input.View() + "\n\n")
		switch {
		case m.tableErr != "":
			b.WriteString(m.theme.Error.Render(m.tableErr))
		case m.table != nil:
			b.WriteString(renderTable(m.table, tableRows))
		}
		body = strings.TrimRight(b.String(), "\n")
		help = "enter build • esc back"

	case screenBatches:
		var b strings.Builder
		b.WriteString(m.theme.Title.Render("Batches") + "\n\n")
		if m.batchesErr != "" {
			b.WriteString(m.theme.Error.Render(m.batchesErr) + "\n")
		}
		for i, ref := range m.batches {
			cursor := "  "
			if i == m.batchCursor {
				cursor = "› "
			}
			b.WriteString(cursor + ref.Name + "\n")
		}
		if m.running {
			b.WriteString("\nConverting…\n")
		}
		if m.report != nil {
			b.WriteString("\n" + renderReport(*m.report, m.reportID, m.conv.Max()) + "\n")
		}
		body = strings.TrimRight(b.String(), "\n")
		help = "↑/↓ select • enter convert • r reload • esc back"

	default:
		return wrap.Render(header + "\nunknown state")
	}

	out := header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(body) + "\n" + m.theme.Help.Render(help)
	if m.toast != "" {
		out += "\n" + m.theme.Error.Render(m.toast)
	}
	return wrap.Render(out)
}
