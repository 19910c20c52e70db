package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"studyplan/internal/notify"
	"studyplan/internal/store"
	"studyplan/internal/views"
)

type goalsModel struct {
	planner *store.Planner
	bus     *notify.Bus
	width   int
	height  int

	goals     []store.StudyGoal
	weekGoals map[string]bool // ids inside the current week window
	cursor    int

	formActive bool
	form       *huh.Form

	formTitle  *string
	formTarget *string
	formWeek   *string
	formDesc   *string

	editingID string
}

func newGoalsModel(p *store.Planner, bus *notify.Bus) goalsModel {
	title, target, week, desc := "", "", "", ""
	m := goalsModel{
		planner:    p,
		bus:        bus,
		formTitle:  &title,
		formTarget: &target,
		formWeek:   &week,
		formDesc:   &desc,
	}
	m.refresh()
	return m
}

func (m *goalsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *goalsModel) refresh() {
	m.goals = m.planner.Goals.All()
	m.weekGoals = make(map[string]bool)
	for _, g := range views.CurrentWeekGoals(m.goals, time.Now()) {
		m.weekGoals[g.ID] = true
	}
	if m.cursor >= len(m.goals) {
		m.cursor = max(0, len(m.goals)-1)
	}
}

func (m goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.goals) > 0 {
				goal := m.goals[m.cursor]
				return m.showForm(&goal)
			}
		case key.Matches(msg, keys.Plus):
			return m.adjust(1)
		case key.Matches(msg, keys.Minus):
			return m.adjust(-1)
		case key.Matches(msg, keys.Right):
			return m.adjust(0.5)
		case key.Matches(msg, keys.Left):
			return m.adjust(-0.5)
		case key.Matches(msg, keys.Toggle):
			if len(m.goals) > 0 {
				goal := m.goals[m.cursor]
				done := !goal.Completed
				err := m.planner.Goals.Update(goal.ID, store.GoalUpdate{Completed: &done})
				if err != nil {
					m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
					return m, nil
				}
				return m, changed()
			}
		case key.Matches(msg, keys.Delete):
			if len(m.goals) > 0 {
				goal := m.goals[m.cursor]
				if err := m.planner.Goals.Delete(goal.ID); err != nil {
					m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
					return m, nil
				}
				m.bus.Publish(fmt.Sprintf("%q has been deleted", goal.Title), notify.Info)
				return m, changed()
			}
		}
	}
	return m, nil
}

// adjust moves the selected goal's logged hours, floored at zero by the
// store.
func (m goalsModel) adjust(delta float64) (goalsModel, tea.Cmd) {
	if len(m.goals) == 0 {
		return m, nil
	}
	goal := m.goals[m.cursor]
	if err := m.planner.Goals.AdjustHours(goal.ID, delta); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	return m, changed()
}

func (m goalsModel) showForm(goal *store.StudyGoal) (goalsModel, tea.Cmd) {
	if goal != nil {
		*m.formTitle = goal.Title
		*m.formTarget = strconv.FormatFloat(goal.TargetHours, 'f', -1, 64)
		*m.formWeek = goal.WeekStartDate
		*m.formDesc = goal.Description
		m.editingID = goal.ID
	} else {
		*m.formTitle = ""
		*m.formTarget = "10"
		*m.formWeek = views.WeekStart(time.Now()).Format("2006-01-02")
		*m.formDesc = ""
		m.editingID = ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal Title").Value(m.formTitle),
			huh.NewInput().Title("Target Hours").Value(m.formTarget),
			huh.NewInput().Title("Week Start (YYYY-MM-DD)").Value(m.formWeek),
			huh.NewText().Title("Description (optional)").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.applyForm()
	}

	return m, cmd
}

func (m goalsModel) applyForm() (goalsModel, tea.Cmd) {
	if strings.TrimSpace(*m.formTitle) == "" {
		m.bus.Publish("Please enter a goal title", notify.Error)
		return m, nil
	}
	target, err := strconv.ParseFloat(*m.formTarget, 64)
	if err != nil || target <= 0 {
		m.bus.Publish("Target hours must be a positive number", notify.Error)
		return m, nil
	}
	if _, err := time.Parse("2006-01-02", *m.formWeek); err != nil {
		m.bus.Publish("Week start must be YYYY-MM-DD", notify.Error)
		return m, nil
	}

	if m.editingID != "" {
		err := m.planner.Goals.Update(m.editingID, store.GoalUpdate{
			Title:         m.formTitle,
			TargetHours:   &target,
			WeekStartDate: m.formWeek,
			Description:   m.formDesc,
		})
		if err != nil {
			m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
			return m, nil
		}
		m.bus.Publish(fmt.Sprintf("%q has been updated", *m.formTitle), notify.Success)
		return m, changed()
	}

	_, err = m.planner.Goals.Add(store.StudyGoal{
		Title:         *m.formTitle,
		TargetHours:   target,
		WeekStartDate: *m.formWeek,
		Description:   *m.formDesc,
	})
	if err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	m.bus.Publish(fmt.Sprintf("%q goal created", *m.formTitle), notify.Success)
	return m, changed()
}

func (m goalsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Goal")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Goal")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Study Goals")

	if len(m.goals) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No goals yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, goal := range m.goals {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		week := ""
		if m.weekGoals[goal.ID] {
			week = highlightStyle.Render(" this week")
		}
		check := ""
		if goal.Completed {
			check = successStyle.Render(" ✓")
		}

		pct := views.ProgressPercent(goal.CompletedHours, goal.TargetHours)
		line := fmt.Sprintf("%s%-26s %s / %s%s%s",
			cursor, truncate(goal.Title, 26),
			formatHours(goal.CompletedHours), formatHours(goal.TargetHours),
			week, check)
		rows = append(rows, style.Render(line))
		rows = append(rows, "    "+progressBar(pct, min(w-10, 40)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  +/-: ±1h  →/←: ±0.5h  t: toggle  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// progressBar renders pct (0–100) as a fixed-width block bar.
func progressBar(pct float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, pct)
}
