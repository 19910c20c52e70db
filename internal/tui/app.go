package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"studyplan/internal/export"
	"studyplan/internal/notify"
	"studyplan/internal/store"
	"studyplan/internal/views"
)

// App is the root Bubble Tea model. The planner's stores are mutated
// only from this update loop; user feedback flows through the injected
// notification bus.
type App struct {
	planner   *store.Planner
	bus       *notify.Bus
	logger    zerolog.Logger
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	toasts  []notify.Notification
	toastCh chan []notify.Notification

	dashboard   dashboardModel
	timetable   timetableModel
	assignments assignmentsModel
	goals       goalsModel
	pomodoro    pomodoroModel
	settings    settingsModel

	help help.Model
}

// NewApp wires the planner and bus into the root model and subscribes to
// bus updates for the session's lifetime.
func NewApp(p *store.Planner, bus *notify.Bus, logger zerolog.Logger, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	// The channel holds at most one snapshot. When a new one arrives
	// before the loop drains the old, the stale snapshot is replaced so
	// the UI never renders out-of-date toasts.
	ch := make(chan []notify.Notification, 1)
	bus.Subscribe(func(active []notify.Notification) {
		for {
			select {
			case ch <- active:
				return
			default:
				select {
				case <-ch:
				default:
				}
			}
		}
	})

	return App{
		planner:     p,
		bus:         bus,
		logger:      logger,
		exportDir:   exportDir,
		activeView:  viewDashboard,
		toastCh:     ch,
		dashboard:   newDashboardModel(p),
		timetable:   newTimetableModel(p, bus),
		assignments: newAssignmentsModel(p, bus),
		goals:       newGoalsModel(p, bus),
		pomodoro:    newPomodoroModel(p, bus),
		settings:    newSettingsModel(p, bus),
		help:        h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.listenToasts(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) listenToasts() tea.Cmd {
	ch := a.toastCh
	return func() tea.Msg {
		return toastsMsg(<-ch)
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.timetable.setSize(a.width, contentHeight)
		a.assignments.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.dashboard.refresh()
		return a, nil

	case toastsMsg:
		a.toasts = msg
		return a, a.listenToasts()

	case dataChangedMsg:
		a.dashboard.refresh()
		a.timetable.refresh()
		a.assignments.refresh()
		a.goals.refresh()
		a.settings.refresh()
		return a, nil

	case exportDoneMsg:
		a.exportPicking = false
		a.bus.Publish("Your data has been exported to "+msg.path, notify.Success)
		return a, nil

	case tea.KeyMsg:
		// Export picker overlay
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// A capturing child (form) sees every key first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Dismiss):
			if len(a.toasts) > 0 {
				a.bus.Dismiss(a.toasts[0].ID)
			}
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewTimetable)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewAssignments)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewGoals)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewPomodoro)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % 6)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		}

	case tickMsg:
		cmds = append(cmds, tickCmd())
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewDashboard:
		a.dashboard.refresh()
	case viewTimetable:
		a.timetable.refresh()
	case viewAssignments:
		a.assignments.refresh()
	case viewGoals:
		a.goals.refresh()
	case viewSettings:
		a.settings.refresh()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTimetable:
		a.timetable, cmd = a.timetable.update(msg)
	case viewAssignments:
		a.assignments, cmd = a.assignments.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewPomodoro:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTimetable:
		return a.timetable.formActive
	case viewAssignments:
		return a.assignments.formActive
	case viewGoals:
		return a.goals.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTimetable:
		content = a.timetable.view()
	case viewAssignments:
		content = a.assignments.view()
	case viewGoals:
		content = a.goals.view()
	case viewPomodoro:
		content = a.pomodoro.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	if len(a.toasts) > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left, a.renderToasts(), content)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studyplan")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	pomodoroInfo := ""
	if a.pomodoro.active() {
		pomodoroInfo = accentStyle.Render(" ◉ " + a.pomodoro.remainingLabel())
	}

	left := footerStyle.Render(helpView)
	right := pomodoroInfo

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderToasts() string {
	var rows []string
	for _, t := range a.toasts {
		rows = append(rows, toastStyle(t.Severity).Render(t.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"JSON (full backup)", "CSV (assignments)"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the planner state here, on the update loop; the
// returned command runs on its own goroutine and must not touch the
// collections, so it only performs the file write.
func (a App) doExport(format int) tea.Cmd {
	bus := a.bus
	logger := a.logger
	now := time.Now()

	var path string
	var write func() error
	if format == 0 {
		backup := export.Build(a.planner, now)
		path = filepath.Join(a.exportDir, export.DefaultFilename(now, "json"))
		write = func() error { return export.WriteBackup(backup, path) }
	} else {
		rows := views.ByDueDate(a.planner.Assignments.All())
		path = filepath.Join(a.exportDir, export.DefaultFilename(now, "csv"))
		write = func() error { return export.ToCSV(rows, path) }
	}

	return func() tea.Msg {
		if err := write(); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("export failed")
			bus.Publish(fmt.Sprintf("Export failed: %v", err), notify.Error)
			return nil
		}

		logger.Info().Str("path", path).Msg("exported backup")
		return exportDoneMsg{path: path}
	}
}
