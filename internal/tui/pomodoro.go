package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyplan/internal/notify"
	"studyplan/internal/store"
)

type pomodoroPhase int

const (
	pomodoroIdle pomodoroPhase = iota
	pomodoroWork
	pomodoroBreak
	pomodoroCompleted
)

const (
	pomodoroBreakLength = 5 * time.Minute
	pomodoroTarget      = 4
)

// pomodoroModel runs study intervals sized by the persisted pomodoro
// length setting. Sessions are transient; nothing here is stored.
type pomodoroModel struct {
	planner *store.Planner
	bus     *notify.Bus
	width   int
	height  int

	phase          pomodoroPhase
	completedCount int

	remaining time.Duration
	phaseEnd  time.Time
}

func newPomodoroModel(p *store.Planner, bus *notify.Bus) pomodoroModel {
	return pomodoroModel{
		planner: p,
		bus:     bus,
		phase:   pomodoroIdle,
	}
}

func (p *pomodoroModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p pomodoroModel) workDuration() time.Duration {
	return time.Duration(p.planner.Settings.App().PomodoroLength) * time.Minute
}

func (p pomodoroModel) active() bool {
	return p.phase == pomodoroWork || p.phase == pomodoroBreak
}

func (p pomodoroModel) remainingLabel() string {
	return formatPomodoroTime(p.remaining)
}

// announce publishes phase changes, respecting the notifications toggle.
func (p pomodoroModel) announce(text string, sev notify.Severity) {
	if !p.planner.Settings.App().Notifications {
		return
	}
	p.bus.Publish(text, sev)
}

func (p pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if p.active() {
			p.remaining = time.Until(p.phaseEnd)
			if p.remaining <= 0 {
				return p.advancePhase()
			}
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if p.phase == pomodoroIdle || p.phase == pomodoroCompleted {
				return p.startSession()
			}
		case key.Matches(msg, keys.Stop):
			if p.phase != pomodoroIdle {
				return p.cancelSession()
			}
		case key.Matches(msg, keys.Toggle):
			// Skip the break
			if p.phase == pomodoroBreak {
				return p.startWorkPhase()
			}
		}
	}
	return p, nil
}

func (p pomodoroModel) startSession() (pomodoroModel, tea.Cmd) {
	p.completedCount = 0
	return p.startWorkPhase()
}

func (p pomodoroModel) startWorkPhase() (pomodoroModel, tea.Cmd) {
	p.phase = pomodoroWork
	p.remaining = p.workDuration()
	p.phaseEnd = time.Now().Add(p.remaining)
	return p, nil
}

func (p pomodoroModel) advancePhase() (pomodoroModel, tea.Cmd) {
	switch p.phase {
	case pomodoroWork:
		p.completedCount++

		if p.completedCount >= pomodoroTarget {
			p.phase = pomodoroCompleted
			p.announce("Pomodoro session complete! Log your hours on the Goals tab.", notify.Success)
			return p, nil
		}

		p.phase = pomodoroBreak
		p.remaining = pomodoroBreakLength
		p.phaseEnd = time.Now().Add(pomodoroBreakLength)
		p.announce("Break time!", notify.Info)
		return p, nil

	case pomodoroBreak:
		return p.startWorkPhase()
	}
	return p, nil
}

func (p pomodoroModel) cancelSession() (pomodoroModel, tea.Cmd) {
	p.phase = pomodoroIdle
	p.remaining = 0
	p.announce("Pomodoro cancelled", notify.Info)
	return p, nil
}

func (p pomodoroModel) view() string {
	w := p.width - 4

	title := titleStyle.Render("Pomodoro Timer")

	var timeDisplay string
	var phaseLabel string
	var indicator string

	switch p.phase {
	case pomodoroIdle:
		timeDisplay = timerStyle.Width(w - 6).Render(formatPomodoroTime(p.workDuration()))
		phaseLabel = mutedStyle.Render("Ready to start")
		indicator = mutedStyle.Render("Press s to begin")
	case pomodoroWork:
		timeDisplay = accentStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatPomodoroTime(p.remaining))
		phaseLabel = accentStyle.Bold(true).Render("STUDY")
		indicator = p.renderProgress()
	case pomodoroBreak:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatPomodoroTime(p.remaining))
		phaseLabel = successStyle.Bold(true).Render("BREAK")
		indicator = p.renderProgress()
	case pomodoroCompleted:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render("Done!")
		phaseLabel = successStyle.Bold(true).Render("SESSION COMPLETE")
		indicator = p.renderProgress()
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		"",
		indicator,
	)

	var controls string
	switch p.phase {
	case pomodoroIdle, pomodoroCompleted:
		controls = mutedStyle.Render("s: start  q: quit")
	case pomodoroWork:
		controls = mutedStyle.Render("S: cancel")
	case pomodoroBreak:
		controls = mutedStyle.Render("t: skip break  S: cancel")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (p pomodoroModel) renderProgress() string {
	var parts []string
	for i := 0; i < pomodoroTarget; i++ {
		if i < p.completedCount {
			parts = append(parts, successStyle.Render("●"))
		} else if i == p.completedCount && p.phase == pomodoroWork {
			parts = append(parts, accentStyle.Render("◐"))
		} else {
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	progress := strings.Join(parts, " ")
	counter := mutedStyle.Render(fmt.Sprintf("  %d/%d", p.completedCount, pomodoroTarget))
	return progress + counter
}

func formatPomodoroTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}
