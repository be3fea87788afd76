// Package tui is the interactive terminal frontend: pick a source, enter
// a topic, page through matching paragraphs and their one-line syntheses.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/devreports/internal/report"
	"github.com/jask/devreports/internal/service"
)

// App ties together the explorer service and the browse view.
type App struct {
	ctx context.Context
	svc *service.ExplorerService

	sources []string
	source  string
	topic   string
	page    int

	topicInput textinput.Model
	spin       spinner.Model

	result   *service.SearchResult
	rows     []resultRow
	cursor   int
	overview *service.Overview

	modal        modalState
	sourceCursor int

	status string
	width  int

	// searchSeq invalidates synthesis results from superseded searches.
	searchSeq int
	inFlight  int
}

// resultRow is the display state of one result on the current page.
type resultRow struct {
	result    service.Result
	synthesis string
	synthErr  string
	pending   bool
	expanded  bool
}

type modalState string

const (
	modalNone         modalState = ""
	modalSourcePicker modalState = "sourcePicker"
)

// New builds the app. The context bounds synthesis calls issued by the TUI.
func New(ctx context.Context, svc *service.ExplorerService) *App {
	ti := textinput.New()
	ti.Placeholder = "e.g. artificial intelligence"
	ti.Prompt = "Topic: "
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		ctx:        ctx,
		svc:        svc,
		sources:    svc.Sources(),
		source:     report.SourceAll,
		page:       1,
		topicInput: ti,
		spin:       sp,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.overviewCmd(a.source))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		if a.topicInput.Focused() {
			return a.handleInputKey(m)
		}
		return a.handleBrowseKey(m)
	case spinner.TickMsg:
		if a.inFlight > 0 {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(m)
			return a, cmd
		}
	case overviewMsg:
		ov := service.Overview(m)
		a.overview = &ov
	case searchDoneMsg:
		return a.applySearch(m)
	case synthesisMsg:
		return a.applySynthesis(m)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.topicInput.Blur()
		return a, nil
	case tea.KeyEnter:
		topic := strings.TrimSpace(a.topicInput.Value())
		if topic == "" {
			a.status = "enter a topic of interest to begin your search"
			return a, nil
		}
		a.topicInput.Blur()
		if topic != a.topic {
			// new topic starts over at the first page
			a.page = 1
		}
		a.topic = topic
		return a, a.searchCmd()
	}
	var cmd tea.Cmd
	a.topicInput, cmd = a.topicInput.Update(m)
	return a, cmd
}

func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "/":
		a.topicInput.Focus()
		return a, textinput.Blink
	case "s":
		a.modal = modalSourcePicker
		a.sourceCursor = a.currentSourceIndex()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "left", "h":
		if a.result != nil && a.result.Page.HasPrev() {
			a.page = a.result.Page.Number - 1
			return a, a.searchCmd()
		}
	case "right", "l":
		if a.result != nil && a.result.Page.HasNext() {
			a.page = a.result.Page.Number + 1
			return a, a.searchCmd()
		}
	case "enter", "v":
		if a.cursor < len(a.rows) {
			a.rows[a.cursor].expanded = !a.rows[a.cursor].expanded
		}
	case "a":
		// re-run synthesis for the selected row (no-op when cached)
		if a.cursor < len(a.rows) && !a.rows[a.cursor].pending {
			row := &a.rows[a.cursor]
			row.pending = true
			row.synthErr = ""
			a.inFlight++
			return a, tea.Batch(a.synthesizeCmd(a.searchSeq, a.cursor, row.result), a.spin.Tick)
		}
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
	case "up", "k":
		if a.sourceCursor > 0 {
			a.sourceCursor--
		}
	case "down", "j":
		if a.sourceCursor < len(a.sources)-1 {
			a.sourceCursor++
		}
	case "enter":
		a.modal = modalNone
		selected := a.sources[a.sourceCursor]
		if selected == a.source {
			return a, nil
		}
		a.source = selected
		a.page = 1
		a.overview = nil
		if a.topic != "" {
			return a, tea.Batch(a.overviewCmd(selected), a.searchCmd())
		}
		return a, a.overviewCmd(selected)
	case "q", "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) currentSourceIndex() int {
	for i, s := range a.sources {
		if s == a.source {
			return i
		}
	}
	return 0
}

// commands

func (a *App) overviewCmd(source string) tea.Cmd {
	return func() tea.Msg {
		ov, err := a.svc.Overview(source)
		if err != nil {
			return errMsg{err}
		}
		return overviewMsg(ov)
	}
}

func (a *App) searchCmd() tea.Cmd {
	a.searchSeq++
	seq := a.searchSeq
	source, topic, page := a.source, a.topic, a.page
	a.status = "searching..."
	return func() tea.Msg {
		res, err := a.svc.Search(source, topic, page)
		if err != nil {
			return errMsg{err}
		}
		return searchDoneMsg{seq: seq, result: res}
	}
}

func (a *App) synthesizeCmd(seq, idx int, res service.Result) tea.Cmd {
	topic := a.topic
	return func() tea.Msg {
		line, err := a.svc.Synthesize(a.ctx, res.Paragraph.Text, topic)
		return synthesisMsg{seq: seq, idx: idx, line: line, err: err}
	}
}

func (a *App) applySearch(m searchDoneMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.searchSeq {
		return a, nil
	}
	res := m.result
	a.result = &res
	a.page = res.Page.Number
	a.cursor = 0
	a.inFlight = 0
	a.status = ""
	if len(res.Warnings) > 0 {
		a.status = res.Warnings[0]
	}

	a.rows = make([]resultRow, len(res.Results))
	cmds := make([]tea.Cmd, 0, len(res.Results)+1)
	for i, r := range res.Results {
		a.rows[i] = resultRow{result: r, pending: true}
		a.inFlight++
		cmds = append(cmds, a.synthesizeCmd(a.searchSeq, i, r))
	}
	if a.inFlight > 0 {
		cmds = append(cmds, a.spin.Tick)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) applySynthesis(m synthesisMsg) (tea.Model, tea.Cmd) {
	if m.seq != a.searchSeq || m.idx >= len(a.rows) {
		return a, nil
	}
	row := &a.rows[m.idx]
	row.pending = false
	row.synthesis = m.line
	if a.inFlight > 0 {
		a.inFlight--
	}
	if m.err != nil {
		row.synthErr = m.err.Error()
		a.status = m.err.Error()
	}
	return a, nil
}

// messages

type overviewMsg service.Overview

type searchDoneMsg struct {
	seq    int
	result service.SearchResult
}

type synthesisMsg struct {
	seq  int
	idx  int
	line string
	err  error
}

type statusMsg string

type errMsg struct{ error }
