package tui

import (
	"fmt"
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

type assignmentsModel struct {
	planner *store.Planner
	bus     *notify.Bus
	width   int
	height  int

	items  []store.Assignment // due-date sorted for display
	cursor int

	formActive bool
	form       *huh.Form

	formCourse   *string
	formTitle    *string
	formDue      *string
	formPriority *string
	formDesc     *string

	editingID string
}

func newAssignmentsModel(p *store.Planner, bus *notify.Bus) assignmentsModel {
	course, title, due, priority, desc := "", "", "", string(store.PriorityMedium), ""
	m := assignmentsModel{
		planner:      p,
		bus:          bus,
		formCourse:   &course,
		formTitle:    &title,
		formDue:      &due,
		formPriority: &priority,
		formDesc:     &desc,
	}
	m.refresh()
	return m
}

func (m *assignmentsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *assignmentsModel) refresh() {
	m.items = views.ByDueDate(m.planner.Assignments.All())
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

func (m assignmentsModel) update(msg tea.Msg) (assignmentsModel, tea.Cmd) {
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
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				return m.showForm(&item)
			}
		case key.Matches(msg, keys.Toggle):
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				done := !item.Completed
				err := m.planner.Assignments.Update(item.ID, store.AssignmentUpdate{Completed: &done})
				if err != nil {
					m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
					return m, nil
				}
				if done {
					m.bus.Publish(fmt.Sprintf("%q marked complete", item.Title), notify.Success)
				}
				return m, changed()
			}
		case key.Matches(msg, keys.Delete):
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				if err := m.planner.Assignments.Delete(item.ID); err != nil {
					m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
					return m, nil
				}
				m.bus.Publish(fmt.Sprintf("%q has been deleted", item.Title), notify.Info)
				return m, changed()
			}
		}
	}
	return m, nil
}

func (m assignmentsModel) showForm(item *store.Assignment) (assignmentsModel, tea.Cmd) {
	if item != nil {
		*m.formCourse = item.Course
		*m.formTitle = item.Title
		*m.formDue = item.DueDate
		*m.formPriority = string(item.Priority)
		*m.formDesc = item.Description
		m.editingID = item.ID
	} else {
		*m.formCourse = ""
		*m.formTitle = ""
		*m.formDue = time.Now().Format("2006-01-02")
		*m.formPriority = string(store.PriorityMedium)
		*m.formDesc = ""
		m.editingID = ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Course").Value(m.formCourse),
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Due Date (YYYY-MM-DD)").Value(m.formDue),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("Low", string(store.PriorityLow)),
					huh.NewOption("Medium", string(store.PriorityMedium)),
					huh.NewOption("High", string(store.PriorityHigh)),
				).Value(m.formPriority),
			huh.NewText().Title("Description (optional)").Value(m.formDesc),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m assignmentsModel) updateForm(msg tea.Msg) (assignmentsModel, tea.Cmd) {
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

func (m assignmentsModel) applyForm() (assignmentsModel, tea.Cmd) {
	if strings.TrimSpace(*m.formTitle) == "" || strings.TrimSpace(*m.formCourse) == "" {
		m.bus.Publish("Please fill in the course and title", notify.Error)
		return m, nil
	}
	if _, err := time.Parse("2006-01-02", *m.formDue); err != nil {
		m.bus.Publish("Due date must be YYYY-MM-DD", notify.Error)
		return m, nil
	}

	if m.editingID != "" {
		priority := store.Priority(*m.formPriority)
		err := m.planner.Assignments.Update(m.editingID, store.AssignmentUpdate{
			Course:      m.formCourse,
			Title:       m.formTitle,
			DueDate:     m.formDue,
			Priority:    &priority,
			Description: m.formDesc,
		})
		if err != nil {
			m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
			return m, nil
		}
		m.bus.Publish(fmt.Sprintf("%q has been updated", *m.formTitle), notify.Success)
		return m, changed()
	}

	_, err := m.planner.Assignments.Add(store.Assignment{
		Course:      *m.formCourse,
		Title:       *m.formTitle,
		DueDate:     *m.formDue,
		Priority:    store.Priority(*m.formPriority),
		Description: *m.formDesc,
	})
	if err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	m.bus.Publish(fmt.Sprintf("%q added", *m.formTitle), notify.Success)
	return m, changed()
}

func (m assignmentsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Assignment")
		if m.editingID != "" {
			title = titleStyle.Render("Edit Assignment")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	pending := views.PendingCount(m.items)
	title := titleStyle.Render("Assignments")
	counts := mutedStyle.Render(fmt.Sprintf("%d pending, %d done", pending, len(m.items)-pending))

	if len(m.items) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No assignments yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title+"  "+counts)
	rows = append(rows, "")

	for i, item := range m.items {
		check := mutedStyle.Render("○")
		if item.Completed {
			check = successStyle.Render("●")
		}
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		titleCell := truncate(item.Title, 28)
		if item.Completed {
			titleCell = mutedStyle.Strikethrough(true).Render(titleCell)
		}
		row := fmt.Sprintf("%s%s %s  %-28s %s %s",
			cursor, check, item.DueDate, titleCell, priorityBadge(item.Priority),
			mutedStyle.Render(truncate(item.Course, 16)))
		rows = append(rows, style.Render(row))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  t: toggle done  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
