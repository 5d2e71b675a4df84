package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether stdout is a terminal a spinner can draw on.
func IsInteractive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RunSpinner runs a minimal Bubble Tea spinner while executing the given action.
// The UI exits when the action completes and returns the action's error.
// Without a terminal the action simply runs inline.
func RunSpinner(ctx context.Context, title string, action func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !IsInteractive() {
		return action()
	}

	logs := make(chan logEntry, 16)
	setActiveLogChannel(logs)
	defer clearActiveLogChannel()

	m := newSpinnerModel(ctx, title, logs, action)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return err
	}
	return final.(*spinnerModel).err
}

type actionDoneMsg struct{ err error }

type logMsg logEntry

type spinnerModel struct {
	ctx    context.Context
	title  string
	status string
	spin   spinner.Model
	done   bool
	err    error
	result chan error
	logs   chan logEntry
	style  lipgloss.Style
	dim    lipgloss.Style
}

func newSpinnerModel(ctx context.Context, title string, logs chan logEntry, action func() error) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &spinnerModel{
		ctx:    ctx,
		title:  title,
		spin:   s,
		result: make(chan error, 1),
		logs:   logs,
		style:  lipgloss.NewStyle().Padding(0, 1),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}

	go func() {
		// Small delay for smoother paint before heavy work
		time.Sleep(50 * time.Millisecond)
		m.result <- action()
	}()

	return m
}

func (m *spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForCompletion(), m.waitForLog())
}

func (m *spinnerModel) waitForCompletion() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return actionDoneMsg{err: m.ctx.Err()}
		case err := <-m.result:
			return actionDoneMsg{err: err}
		}
	}
}

func (m *spinnerModel) waitForLog() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return nil
		case e := <-m.logs:
			return logMsg(e)
		}
	}
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Allow cancel via keyboard
			m.err = fmt.Errorf("operation canceled")
			m.done = true
			return m, tea.Quit
		}
	case actionDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case logMsg:
		if msg.message != "" {
			m.status = msg.message
		}
		return m, m.waitForLog()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return m.style.Render("✗ " + m.title + " (" + m.err.Error() + ")\n")
		}
		return m.style.Render("✓ " + m.title + "\n")
	}
	line := m.spin.View() + " " + m.title
	if m.status != "" {
		line += " " + m.dim.Render(m.status)
	}
	return m.style.Render(line)
}
