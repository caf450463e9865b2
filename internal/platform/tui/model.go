package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodgesim/internal/core"
	"github.com/vovakirdan/dodgesim/internal/report"
	"github.com/vovakirdan/dodgesim/internal/sim"
	"github.com/vovakirdan/dodgesim/internal/storage"
)

// LoopFactory builds a fresh loop for each watched run.
type LoopFactory func() (*sim.Loop, error)

// Model is the Bubble Tea model for watching a run frame by frame.
type Model struct {
	newLoop  LoopFactory
	loop     *sim.Loop
	store    *storage.Store
	logger   *log.Logger
	tickRate int
	screen   *core.Screen
	bar      progress.Model
	lastHits int
	paused   bool
	quitting bool
	saved    bool // Whether the finished run has been stored
}

// NewModel creates a watch model. store and logger may be nil.
func NewModel(newLoop LoopFactory, store *storage.Store, logger *log.Logger, tickRate int) (Model, error) {
	loop, err := newLoop()
	if err != nil {
		return Model{}, err
	}

	return Model{
		newLoop:  newLoop,
		loop:     loop,
		store:    store,
		logger:   logger,
		tickRate: tickRate,
		screen:   core.NewScreen(80, laneHeight),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.resize(msg.Width), nil

	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// resize fits the lane and progress bar to a terminal width.
func (m Model) resize(width int) Model {
	m.screen = core.NewScreen(width, laneHeight)
	m.bar.Width = max(width-4, 10)
	return m
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKey(msg) {
	case CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case CmdPause:
		m.paused = !m.paused
	case CmdStep:
		if m.paused {
			m.step()
		}
	case CmdRestart:
		if m.loop.State() == sim.Finished {
			loop, err := m.newLoop()
			if err != nil {
				m.logf("cannot restart run", "error", err)
				return m, nil
			}
			m.loop = loop
			m.lastHits = 0
			m.saved = false
		}
	}
	return m, nil
}

// step advances the loop by one frame and stores the run once it ends.
func (m *Model) step() {
	hits, err := m.loop.Step()
	if err != nil && !errors.Is(err, sim.ErrFinished) {
		m.logf("step failed", "error", err)
		return
	}
	m.lastHits = hits

	if m.loop.State() == sim.Finished && !m.saved {
		m.saved = true
		if m.store != nil {
			if _, err := m.store.SaveRun(storage.RecordOf(m.loop, m.loop.Result())); err != nil {
				m.logf("could not save run", "error", err)
			}
		}
	}
}

func (m Model) logf(msg string, keyvals ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, keyvals...)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	res := m.loop.Result()
	cfg := m.loop.Config()

	drawLane(m.screen, m.loop.Player(), m.loop.Obstacles(), m.lastHits > 0)

	var sb strings.Builder
	sb.WriteString(hudStyle.Render(fmt.Sprintf("Frame %d/%d  Collisions %d  Executor %s  Seed %d",
		res.Frames, cfg.Frames, res.TotalCollisions, m.loop.Executor().Name(), m.loop.Seed())))
	sb.WriteString("\n\n")
	sb.WriteString(laneStyle.Render(m.screen.String()))
	sb.WriteString("\n\n")

	percent := 1.0
	if cfg.Frames > 0 {
		percent = core.ClampF(float64(res.Frames)/float64(cfg.Frames), 0, 1)
	}
	sb.WriteString(m.bar.ViewAs(percent))
	sb.WriteString("\n\n")

	switch {
	case m.loop.State() == sim.Finished:
		sb.WriteString(report.OutcomeText(res.Outcome))
		sb.WriteString("  ")
		sb.WriteString(hintStyle.Render("R restart  Q quit"))
	case m.paused:
		sb.WriteString(pausedText)
		sb.WriteString("  ")
		sb.WriteString(hintStyle.Render("P resume  N step  Q quit"))
	default:
		sb.WriteString(hintStyle.Render("P pause  Q quit"))
	}
	return sb.String()
}

// Run starts the Bubble Tea program for a watched run.
func Run(newLoop LoopFactory, store *storage.Store, logger *log.Logger, tickRate int) error {
	model, err := NewModel(newLoop, store, logger, tickRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
