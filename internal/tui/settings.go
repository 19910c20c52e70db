package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"studyplan/internal/export"
	"studyplan/internal/notify"
	"studyplan/internal/store"
)

var accentColors = []string{"blue", "purple", "pink", "emerald", "amber", "cyan"}

type settingsFormKind int

const (
	settingsFormEdit settingsFormKind = iota
	settingsFormImport
	settingsFormReset
)

type settingsModel struct {
	planner *store.Planner
	bus     *notify.Bus
	width   int
	height  int

	app store.AppSettings
	acc store.Accessibility

	formActive bool
	form       *huh.Form
	formKind   settingsFormKind

	themeMode     *string
	accentColor   *string
	notifications *bool
	pomodoro      *string
	fontSize      *string
	highContrast  *bool
	importPath    *string
	confirmReset  *bool
}

func newSettingsModel(p *store.Planner, bus *notify.Bus) settingsModel {
	mode, accent, pomo, font, path := "", "", "", "", ""
	notif, contrast, reset := false, false, false
	m := settingsModel{
		planner:       p,
		bus:           bus,
		themeMode:     &mode,
		accentColor:   &accent,
		notifications: &notif,
		pomodoro:      &pomo,
		fontSize:      &font,
		highContrast:  &contrast,
		importPath:    &path,
		confirmReset:  &reset,
	}
	m.refresh()
	return m
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *settingsModel) refresh() {
	m.app = m.planner.Settings.App()
	m.acc = m.planner.Settings.Accessibility()
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showEditForm()
		case key.Matches(msg, keys.New): // "n" opens the import prompt
			return m.showImportForm()
		case key.Matches(msg, keys.Clear):
			return m.showResetForm()
		}
	}
	return m, nil
}

func (m settingsModel) showEditForm() (settingsModel, tea.Cmd) {
	*m.themeMode = string(m.app.Theme.Mode)
	*m.accentColor = m.app.Theme.AccentColor
	*m.notifications = m.app.Notifications
	*m.pomodoro = strconv.Itoa(m.app.PomodoroLength)
	*m.fontSize = string(m.acc.FontSize)
	*m.highContrast = m.acc.HighContrast

	accentOptions := make([]huh.Option[string], len(accentColors))
	for i, c := range accentColors {
		accentOptions[i] = huh.NewOption(c, c)
	}
	pomodoroOptions := make([]huh.Option[string], len(store.PomodoroLengths))
	for i, l := range store.PomodoroLengths {
		label := fmt.Sprintf("%d minutes", l)
		if l == 25 {
			label += " (recommended)"
		}
		pomodoroOptions[i] = huh.NewOption(label, strconv.Itoa(l))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Light", string(store.ThemeLight)),
					huh.NewOption("Dark", string(store.ThemeDark)),
					huh.NewOption("System", string(store.ThemeSystem)),
				).Value(m.themeMode),
			huh.NewSelect[string]().Title("Accent Color").Options(accentOptions...).Value(m.accentColor),
			huh.NewConfirm().Title("Notifications").Value(m.notifications),
			huh.NewSelect[string]().Title("Pomodoro Length").Options(pomodoroOptions...).Value(m.pomodoro),
		).Title("Application"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Font Size").
				Options(
					huh.NewOption("Small", string(store.FontSmall)),
					huh.NewOption("Medium", string(store.FontMedium)),
					huh.NewOption("Large", string(store.FontLarge)),
				).Value(m.fontSize),
			huh.NewConfirm().Title("High Contrast").Value(m.highContrast),
		).Title("Accessibility"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formKind = settingsFormEdit
	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) showImportForm() (settingsModel, tea.Cmd) {
	*m.importPath = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backup file to import").
				Description("Replaces all current data with the backup's contents.").
				Value(m.importPath),
		),
	).WithShowHelp(true)

	m.formKind = settingsFormImport
	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) showResetForm() (settingsModel, tea.Cmd) {
	*m.confirmReset = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all data?").
				Description("Deletes every class, assignment and goal. Consider exporting first.").
				Value(m.confirmReset),
		),
	).WithShowHelp(true)

	m.formKind = settingsFormReset
	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
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
		switch m.formKind {
		case settingsFormEdit:
			return m.applyEdit()
		case settingsFormImport:
			return m.applyImport()
		case settingsFormReset:
			return m.applyReset()
		}
	}

	return m, cmd
}

func (m settingsModel) applyEdit() (settingsModel, tea.Cmd) {
	settings := m.planner.Settings

	theme := store.Theme{Mode: store.ThemeMode(*m.themeMode), AccentColor: *m.accentColor}
	if err := settings.SetTheme(theme); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	if err := settings.SetNotifications(*m.notifications); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	if minutes, err := strconv.Atoi(*m.pomodoro); err == nil {
		if err := settings.SetPomodoroLength(minutes); err != nil {
			m.bus.Publish(err.Error(), notify.Error)
			return m, nil
		}
	}
	if err := settings.SetFontSize(store.FontSize(*m.fontSize)); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	if err := settings.SetHighContrast(*m.highContrast); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}

	m.bus.Publish("Settings updated", notify.Success)
	return m, changed()
}

func (m settingsModel) applyImport() (settingsModel, tea.Cmd) {
	path := strings.TrimSpace(*m.importPath)
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.bus.Publish(fmt.Sprintf("Could not read %s: %v", path, err), notify.Error)
		return m, nil
	}
	backup, err := export.ParseBackup(data)
	if err != nil {
		m.bus.Publish("Failed to import data. Please check the file format.", notify.Error)
		return m, nil
	}
	if err := export.Restore(m.planner, backup); err != nil {
		m.bus.Publish(fmt.Sprintf("Import failed: %v", err), notify.Error)
		return m, nil
	}

	m.bus.Publish("Your data has been restored from the backup", notify.Success)
	return m, changed()
}

func (m settingsModel) applyReset() (settingsModel, tea.Cmd) {
	if !*m.confirmReset {
		return m, nil
	}

	if err := m.planner.Timetable.ClearAll(); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	if err := m.planner.Assignments.Clear(); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}
	if err := m.planner.Goals.Clear(); err != nil {
		m.bus.Publish(fmt.Sprintf("Could not save: %v", err), notify.Error)
		return m, nil
	}

	m.bus.Publish("All your data has been permanently reset", notify.Info)
	return m, changed()
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Settings")
		switch m.formKind {
		case settingsFormImport:
			title = titleStyle.Render("Import Backup")
		case settingsFormReset:
			title = titleStyle.Render("Reset All Data")
		}
		formView := m.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")

	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	label := func(s string) string {
		return lipgloss.NewStyle().Width(18).Render(s)
	}

	total := m.planner.Timetable.Len() + m.planner.Assignments.Len() + m.planner.Goals.Len()

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %s %s", label("Theme"), highlightStyle.Render(string(m.app.Theme.Mode))),
		fmt.Sprintf("  %s %s", label("Accent color"), highlightStyle.Render(m.app.Theme.AccentColor)),
		fmt.Sprintf("  %s %s", label("Notifications"), onOff(m.app.Notifications)),
		fmt.Sprintf("  %s %s", label("Pomodoro length"), highlightStyle.Render(fmt.Sprintf("%d min", m.app.PomodoroLength))),
		fmt.Sprintf("  %s %s", label("Font size"), highlightStyle.Render(string(m.acc.FontSize))),
		fmt.Sprintf("  %s %s", label("High contrast"), onOff(m.acc.HighContrast)),
		"",
		mutedStyle.Render(fmt.Sprintf("  %d item(s) stored locally", total)),
		"",
		mutedStyle.Render("  enter: edit  x: export  n: import  C: reset all data"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
