// Package tui renders generation progress as a live checklist. The model is
// driven entirely by messages from the command running the pipeline; it does
// no work of its own.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type entryState struct {
	order int
	title string
	path  string
	done  bool
}

type Model struct {
	spinner  spinner.Model
	entries  []entryState
	total    int
	finished bool
	aborted  bool
	err      error
}

func New(total int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return Model{spinner: sp, total: total}
}

// Err returns the run error carried by the final RunDoneMsg, if any.
func (m Model) Err() error { return m.err }

// Aborted reports whether the user quit before the run finished.
func (m Model) Aborted() bool { return m.aborted }

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil

	case EntryStartedMsg:
		m.total = msg.Total
		m.entries = append(m.entries, entryState{order: msg.Order, title: msg.Title})
		return m, nil

	case EntryWrittenMsg:
		if msg.Index >= 0 && msg.Index < len(m.entries) {
			m.entries[msg.Index].done = true
			m.entries[msg.Index].path = msg.Path
		}
		return m, nil

	case RunDoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	written := 0
	for _, e := range m.entries {
		if e.done {
			written++
		}
	}
	b.WriteString(headerStyle.Render("Generating lessons"))
	b.WriteString(" ")
	b.WriteString(counterStyle.Render(fmt.Sprintf("%d/%d", written, m.total)))
	b.WriteString("\n\n")

	for _, e := range m.entries {
		label := fmt.Sprintf("%02d %s", e.order, e.title)
		if e.done {
			b.WriteString("  " + doneMarkStyle.Render("✓") + " " + titleStyle.Render(label))
			if e.path != "" {
				b.WriteString(pathStyle.Render("  " + e.path))
			}
		} else {
			b.WriteString("  " + m.spinner.View() + " " + activeTitleStyle.Render(label))
		}
		b.WriteString("\n")
	}

	switch {
	case m.finished && m.err != nil:
		b.WriteString("\n" + errorStyle.Render("✗ "+m.err.Error()) + "\n")
	case m.finished:
		b.WriteString("\n" + doneMarkStyle.Render("✓ all lessons written") + "\n")
	default:
		b.WriteString("\n" + counterStyle.Render("q to quit") + "\n")
	}
	return b.String()
}
