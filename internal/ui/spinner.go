package ui

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type stopMsg struct{}

type spinModel struct {
	spinner  spinner.Model
	label    string
	quitting bool
}

func (m spinModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(stopMsg); ok {
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinModel) View() string {
	if m.quitting {
		return ""
	}
	return m.spinner.View() + " " + m.label
}

// spinnerProgram animates on its own goroutine until stop is called.
// Interrupts are left to the running child process.
type spinnerProgram struct {
	p    *tea.Program
	done chan struct{}
}

func startSpinner(out io.Writer, label string, style lipgloss.Style) *spinnerProgram {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(style))
	p := tea.NewProgram(
		spinModel{spinner: s, label: label},
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	sp := &spinnerProgram{p: p, done: make(chan struct{})}
	go func() {
		defer close(sp.done)
		_, _ = p.Run()
	}()
	return sp
}

func (s *spinnerProgram) stop() {
	s.p.Send(stopMsg{})
	<-s.done
}
