package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"studyplan/internal/notify"
	"studyplan/internal/store"
)

type timetableModel struct {
	planner *store.Planner
	bus     *notify.Bus
	width   int
	height  int

	slots  []store.TimeSlot
	cursor int

	formActive bool
	form       *huh.Form
	confirming bool // clear-all confirmation

	// Form field pointers (survive value copies)
	formCourse   *string
	formLecturer *string
	formDay      *string
	formStart    *string
	formEnd      *string
	formConfirm  *bool

	editingID string
}

func newTimetableModel(p *store.Planner, bus *notify.Bus) timetableModel {
	course, lecturer, day, start, end := "", "", store.Days[0], "", ""
	confirm := false
	m := timetableModel{
		planner:      p,
		bus:          bus,
		formCourse:   &course,
		formLecturer: &lecturer,
		formDay:      &day,
		formStart:    &start,
		formEnd:      &end,
		formConfirm:  &confirm,
	}
	m.refresh()
	return m
}

func (m *timetableModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *timetableModel) refresh() {
	m.slots = m.planner.Timetable.Slots()
	if m.cursor >= len(m.slots) {
		m.cursor = max(0, len(m.slots)-1)
	}
}

func (m timetableModel) update(msg tea.Msg) (timetableModel, tea.Cmd) {
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
			if m.cursor < len(m.slots)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showSlotForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(m.slots) > 0 {
				slot := m.slots[m.cursor]
				return m.showSlotForm(&slot)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.slots) > 0 {
				slot := m.slots[m.cursor]
				if err := m.planner.Timetable.DeleteSlot(slot.ID); err != nil {
					m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
					return m, nil
				}
				m.bus.Publish(fmt.Sprintf("%q removed from your timetable", slot.CourseName), notify.Info)
				return m, changed()
			}
		case key.Matches(msg, keys.Clear):
			if len(m.slots) > 0 {
				return m.showClearForm()
			}
		}
	}
	return m, nil
}

func changed() tea.Cmd {
	return func() tea.Msg { return dataChangedMsg{} }
}

func (m timetableModel) showSlotForm(slot *store.TimeSlot) (timetableModel, tea.Cmd) {
	if slot != nil {
		*m.formCourse = slot.CourseName
		*m.formLecturer = slot.Lecturer
		*m.formDay = slot.Day
		*m.formStart = slot.StartTime
		*m.formEnd = slot.EndTime
		m.editingID = slot.ID
	} else {
		*m.formCourse = ""
		*m.formLecturer = ""
		*m.formDay = store.Days[0]
		*m.formStart = "09:00"
		*m.formEnd = "10:00"
		m.editingID = ""
	}

	dayOptions := make([]huh.Option[string], len(store.Days))
	for i, d := range store.Days {
		dayOptions[i] = huh.NewOption(d, d)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Course Name").Value(m.formCourse),
			huh.NewInput().Title("Lecturer").Value(m.formLecturer),
			huh.NewSelect[string]().Title("Day").Options(dayOptions...).Value(m.formDay),
			huh.NewInput().Title("Start (HH:MM)").Value(m.formStart),
			huh.NewInput().Title("End (HH:MM)").Value(m.formEnd),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	m.confirming = false
	return m, m.form.Init()
}

func (m timetableModel) showClearForm() (timetableModel, tea.Cmd) {
	*m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear entire timetable?").
				Description("This removes every class and cannot be undone.").
				Value(m.formConfirm),
		),
	).WithShowHelp(true)

	m.formActive = true
	m.confirming = true
	return m, m.form.Init()
}

func (m timetableModel) updateForm(msg tea.Msg) (timetableModel, tea.Cmd) {
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
		if m.confirming {
			return m.applyClear()
		}
		return m.applySlotForm()
	}

	return m, cmd
}

func (m timetableModel) applyClear() (timetableModel, tea.Cmd) {
	if !*m.formConfirm {
		return m, nil
	}
	if err := m.planner.Timetable.ClearAll(); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	m.bus.Publish("Timetable cleared", notify.Info)
	return m, changed()
}

func (m timetableModel) applySlotForm() (timetableModel, tea.Cmd) {
	// Validation happens here, before any mutation.
	if err := validateSlotInput(*m.formCourse, *m.formStart, *m.formEnd); err != nil {
		m.bus.Publish(err.Error(), notify.Error)
		return m, nil
	}

	if m.editingID != "" {
		err := m.planner.Timetable.UpdateSlot(m.editingID, store.SlotUpdate{
			CourseName: m.formCourse,
			Lecturer:   m.formLecturer,
			Day:        m.formDay,
			StartTime:  m.formStart,
			EndTime:    m.formEnd,
		})
		if err != nil {
			m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
			return m, nil
		}
		m.bus.Publish(fmt.Sprintf("%q has been updated", *m.formCourse), notify.Success)
		return m, changed()
	}

	_, err := m.planner.Timetable.AddSlot(store.TimeSlot{
		CourseName: *m.formCourse,
		Lecturer:   *m.formLecturer,
		Day:        *m.formDay,
		StartTime:  *m.formStart,
		EndTime:    *m.formEnd,
	})
	if err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	m.bus.Publish(fmt.Sprintf("%q added to your timetable", *m.formCourse), notify.Success)
	return m, changed()
}

// validateSlotInput enforces the presentation-boundary invariants:
// required course name, HH:MM times, start strictly before end.
func validateSlotInput(course, start, end string) error {
	if strings.TrimSpace(course) == "" {
		return fmt.Errorf("Please enter a course name")
	}
	if !validClock(start) || !validClock(end) {
		return fmt.Errorf("Times must be HH:MM in 24-hour format")
	}
	if start >= end {
		return fmt.Errorf("Start time must be before end time")
	}
	return nil
}

// validClock reports whether s is a zero-padded 24-hour HH:MM time.
// Zero-padding makes string comparison agree with chronological order.
func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, c := range []byte{s[0], s[1], s[3], s[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h < 24 && m < 60
}

func (m timetableModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Class")
		if m.confirming {
			title = titleStyle.Render("Clear Timetable")
		} else if m.editingID != "" {
			title = titleStyle.Render("Edit Class")
		}
		formView := m.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Weekly Timetable")

	if len(m.slots) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No classes yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-2s %-10s %-13s %-24s %s", "", "Day", "Time", "Course", "Lecturer"))
	rows = append(rows, header)

	for i, slot := range m.slots {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(slot.Color)).Render("▍")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %-10s %s–%s  %-24s %s",
			cursor, dot, slot.Day, slot.StartTime, slot.EndTime,
			truncate(slot.CourseName, 24), slot.Lecturer))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  C: clear all"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
