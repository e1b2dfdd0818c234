// Package timerwatch is the live countdown view for a timer-gated
// occurrence. It polls the occurrence service once a second and exits when
// the countdown reaches zero or the user quits.
package timerwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/service"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

type viewMsg struct {
	view *app.OccurrenceView
	err  error
}

type Model struct {
	occurrences service.OccurrenceService
	taskID      string
	date        time.Time

	title    string
	duration int
	remain   int
	running  bool
	done     bool
	err      error

	bar progress.Model
}

func New(occurrences service.OccurrenceService, view *app.OccurrenceView) Model {
	bar := progress.New(progress.WithGradient("#fabd2f", "#8ec07c"))
	return Model{
		occurrences: occurrences,
		taskID:      view.TaskID,
		date:        view.Date,
		title:       view.Title,
		duration:    view.TimerDuration,
		remain:      view.TimerRemain,
		running:     view.TimerRunning,
		bar:         bar,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		view, err := m.occurrences.Get(context.Background(), m.taskID, m.date, nil)
		return viewMsg{view: view, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
	case tickMsg:
		return m, m.fetch()
	case viewMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.remain = msg.view.TimerRemain
		m.running = msg.view.TimerRunning
		if m.remain == 0 {
			m.done = true
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n"
	}

	pct := 0.0
	if m.duration > 0 {
		pct = float64(m.duration-m.remain) / float64(m.duration)
	}

	state := formatter.StyleYellow.Render("running")
	if !m.running {
		state = formatter.Dim("paused")
	}
	if m.done {
		state = formatter.StyleGreen.Render("elapsed")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		formatter.Bold(m.title),
		"",
		m.bar.ViewAs(pct),
		"",
		fmt.Sprintf("%s remaining  %s", formatter.Bold(formatter.FormatSeconds(m.remain)), state),
		"",
		formatter.Dim("q to quit"),
	)
	return formatter.RenderBox("Timer", body)
}

// Done reports whether the countdown fully elapsed while watching.
func (m Model) Done() bool {
	return m.done
}

// Err returns the polling error that ended the watch, if any.
func (m Model) Err() error {
	return m.err
}
