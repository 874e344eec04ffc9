// Package tui shows the phases of a build live in the terminal.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
)

const (
	phaseListWidthRatio = 0.3
	logPaneBorderWidth  = 4
	headerHeight        = 2
)

// PhaseStatus represents the current state of a build phase.
type PhaseStatus string

const (
	// StatusRunning indicates the phase is executing.
	StatusRunning PhaseStatus = "Running"
	// StatusDone indicates the phase completed successfully.
	StatusDone PhaseStatus = "Done"
	// StatusError indicates the phase failed.
	StatusError PhaseStatus = "Error"
)

// Phase is one build phase in the list.
type Phase struct {
	ID     string
	Name   string
	Status PhaseStatus
	Cached bool
	Logs   strings.Builder
}

// TapeSource yields the status updates of a recording, one per Read.
// Read returns an error once the recording has ended.
type TapeSource interface {
	Read() (*progrock.StatusUpdate, error)
}

var _ tea.Model = (*Model)(nil)

// Model is the Bubble Tea model of the progress view.
type Model struct {
	Phases   []*Phase
	Viewport viewport.Model
	// Selected is the index of the phase whose output is shown while not following.
	Selected int
	// Follow shows the output of the latest phase.
	Follow bool
	// Interrupted is set when the user quit before the recording ended.
	Interrupted bool

	tape    TapeSource
	byID    map[string]*Phase
	spinner spinner.Model
}

// NewModel creates a model that reads updates from tape.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = runningStyle

	return &Model{
		Phases:   make([]*Phase, 0),
		Viewport: viewport.New(0, 0),
		Follow:   true,
		tape:     tape,
		byID:     make(map[string]*Phase),
		spinner:  s,
	}
}

// Init starts reading the tape.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(WaitForTape(m.tape), m.spinner.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		listWidth := int(float64(msg.Width) * phaseListWidthRatio)
		m.Viewport.Width = max(msg.Width-listWidth-logPaneBorderWidth, 0)
		m.Viewport.Height = max(msg.Height-headerHeight, 0)
		m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgTapeUpdate:
		m.apply(msg.Update)
		return m, WaitForTape(m.tape)

	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Interrupted = true
		return m, tea.Quit
	case "up", "k":
		m.selectPhase(m.active() - 1)
	case "down", "j":
		m.selectPhase(m.active() + 1)
	case "f":
		m.Follow = true
		m.refresh()
	}
	return m, nil
}

// selectPhase stops following and shows the output of phase i, wrapping around the list.
func (m *Model) selectPhase(i int) {
	n := len(m.Phases)
	if n == 0 {
		return
	}
	m.Follow = false
	m.Selected = (i%n + n) % n
	m.refresh()
}

// active returns the index of the phase whose output is shown, or -1.
func (m *Model) active() int {
	if len(m.Phases) == 0 {
		return -1
	}
	if m.Follow {
		return len(m.Phases) - 1
	}
	return m.Selected
}

func (m *Model) apply(update *progrock.StatusUpdate) {
	if update == nil {
		return
	}

	for _, v := range update.Vertexes {
		phase, ok := m.byID[v.Id]
		if !ok {
			phase = &Phase{ID: v.Id, Name: v.Name}
			m.byID[v.Id] = phase
			m.Phases = append(m.Phases, phase)
		}
		switch {
		case v.Completed == nil:
			phase.Status = StatusRunning
		case v.Error != nil:
			phase.Status = StatusError
		default:
			phase.Status = StatusDone
		}
		phase.Cached = v.Cached
	}

	for _, log := range update.Logs {
		if phase, ok := m.byID[log.Vertex]; ok {
			phase.Logs.Write(log.Data)
		}
	}

	m.refresh()
}

// refresh shows the output of the active phase in the viewport.
func (m *Model) refresh() {
	i := m.active()
	if i < 0 {
		m.Viewport.SetContent("")
		return
	}
	m.Viewport.SetContent(WrapLog(m.Phases[i].Logs.String(), m.Viewport.Width))
	if m.Follow {
		m.Viewport.GotoBottom()
	}
}
