// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

const progressBarWidth = 50

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// Interactive reports whether stdout is attached to a terminal. The
// seeding command falls back to plain log lines when it is not.
func Interactive() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// progressMsg carries one seeding progress update into the model.
type progressMsg struct {
	name  string
	index int
	total int
}

// doneMsg signals that the batch finished and the UI should exit.
type doneMsg struct{}

type progressModel struct {
	bar     progress.Model
	updates <-chan tea.Msg

	title   string
	current string
	index   int
	total   int
	done    bool
	aborted bool
}

func newProgressModel(title string, total int, updates <-chan tea.Msg) *progressModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = progressBarWidth
	return &progressModel{
		bar:     bar,
		updates: updates,
		title:   title,
		total:   total,
	}
}

func waitForUpdate(updates <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return msg
	}
}

func (m *progressModel) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	case progressMsg:
		m.current = msg.name
		m.index = msg.index
		m.total = msg.total
		var percent float64
		if msg.total > 0 {
			percent = float64(msg.index) / float64(msg.total)
		}
		return m, tea.Batch(m.bar.SetPercent(percent), waitForUpdate(m.updates))
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true)
)

func (m *progressModel) View() string {
	status := "waiting..."
	if m.current != "" {
		status = fmt.Sprintf("%d/%d  %s", m.index, m.total, m.current)
	}
	if m.done {
		status = fmt.Sprintf("done, %d cities processed", m.index)
	}
	return fmt.Sprintf("%s\n\n%s\n%s\n",
		titleStyle.Render(m.title),
		m.bar.View(),
		statusStyle.Render(status))
}

// ProgressRunner bridges seeder progress callbacks into a bubbletea
// progress bar. The seeder runs on the caller's goroutine and feeds
// updates through OnProgress; the UI runs on its own goroutine between
// Start and Finish.
type ProgressRunner struct {
	updates chan tea.Msg
	done    chan struct{}
	model   *progressModel
	err     error
}

// NewProgressRunner creates a runner for a batch of the given size.
func NewProgressRunner(title string, total int) *ProgressRunner {
	r := &ProgressRunner{
		updates: make(chan tea.Msg, 8),
		done:    make(chan struct{}),
	}
	r.model = newProgressModel(title, total, r.updates)
	go func() {
		defer close(r.done)
		_, r.err = runProgram(r.model)
	}()
	return r
}

// OnProgress is the seeder progress callback. Once the UI has exited it
// never blocks: updates are dropped, and a keyboard abort comes back as
// a stop-processing error so the seeder ends the batch.
func (r *ProgressRunner) OnProgress(name string, index, total int) error {
	select {
	case <-r.done:
		return r.exitState()
	default:
	}
	select {
	case r.updates <- progressMsg{name: name, index: index, total: total}:
		return nil
	case <-r.done:
		return r.exitState()
	}
}

// Aborted reports whether the user quit the UI. Only meaningful after
// the UI has exited.
func (r *ProgressRunner) Aborted() bool {
	select {
	case <-r.done:
		return r.model.aborted
	default:
		return false
	}
}

func (r *ProgressRunner) exitState() error {
	if r.model.aborted {
		return cserrors.NewStopProcessingError("seeding aborted from progress UI")
	}
	return nil
}

// Finish tells the UI the batch is over and waits for it to exit.
func (r *ProgressRunner) Finish() error {
	close(r.updates)
	<-r.done
	return r.err
}
