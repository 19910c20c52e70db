package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyplan/internal/store"
	"studyplan/internal/views"
)

type dashboardModel struct {
	planner *store.Planner
	width   int
	height  int

	totalClasses int
	todayClasses []store.TimeSlot
	upcoming     []store.Assignment
	pendingCount int
	weekGoals    []store.StudyGoal
	hours        views.HourTotals

	chart barchart.Model
}

func newDashboardModel(p *store.Planner) dashboardModel {
	d := dashboardModel{
		planner: p,
		chart:   barchart.New(40, 8),
	}
	d.refresh()
	return d
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

// refresh recomputes every derived view from the current store snapshots.
func (d *dashboardModel) refresh() {
	now := time.Now()
	slots := d.planner.Timetable.Slots()
	assignments := d.planner.Assignments.All()
	goals := d.planner.Goals.All()

	d.totalClasses = len(slots)
	d.todayClasses = views.TodayClasses(slots, now)
	d.upcoming = views.UpcomingAssignments(assignments, 3)
	d.pendingCount = views.PendingCount(assignments)
	d.weekGoals = views.CurrentWeekGoals(goals, now)
	d.hours = views.SumHours(d.weekGoals)
	d.buildChart()
}

func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	d.chart = barchart.New(chartWidth, 8)

	var bars []barchart.BarData
	for _, g := range d.weekGoals {
		bars = append(bars, barchart.BarData{
			Label: truncate(g.Title, 10),
			Values: []barchart.BarValue{
				{Name: "done", Value: g.CompletedHours, Style: lipgloss.NewStyle().Foreground(colorSuccess)},
				{Name: "left", Value: max64(g.TargetHours-g.CompletedHours, 0), Style: lipgloss.NewStyle().Foreground(colorSubtle)},
			},
		})
	}
	if len(bars) > 0 {
		d.chart.PushAll(bars)
		d.chart.Draw()
	}
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	statsPanel := d.renderStatsPanel(contentWidth)
	todayPanel := d.renderTodayPanel(contentWidth)
	upcomingPanel := d.renderUpcomingPanel(contentWidth)
	goalsPanel := d.renderGoalsPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, statsPanel, todayPanel, upcomingPanel, goalsPanel)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	stats := []string{
		fmt.Sprintf("%s %s", titleStyle.Render("Classes"), highlightStyle.Render(fmt.Sprintf("%d", d.totalClasses))),
		fmt.Sprintf("%s %s", titleStyle.Render("Today"), successStyle.Render(fmt.Sprintf("%d", len(d.todayClasses)))),
		fmt.Sprintf("%s %s", titleStyle.Render("Pending"), warningStyle.Render(fmt.Sprintf("%d", d.pendingCount))),
		fmt.Sprintf("%s %s", titleStyle.Render("Goals"), accentStyle.Render(fmt.Sprintf("%d", len(d.weekGoals)))),
	}
	return panelStyle.Width(w).Render(strings.Join(stats, "    "))
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today's Schedule")

	if len(d.todayClasses) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No classes today"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range d.todayClasses {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("▍")
		rows = append(rows, fmt.Sprintf("  %s %s–%s  %-24s %s",
			dot, s.StartTime, s.EndTime, truncate(s.CourseName, 24), mutedStyle.Render(s.Lecturer)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderUpcomingPanel(w int) string {
	title := titleStyle.Render("Upcoming Assignments")

	if len(d.upcoming) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No pending assignments"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, a := range d.upcoming {
		rows = append(rows, fmt.Sprintf("  %s  %-28s %s %s",
			a.DueDate, truncate(a.Title, 28), priorityBadge(a.Priority), mutedStyle.Render(a.Course)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderGoalsPanel(w int) string {
	pct := views.ProgressPercent(d.hours.Completed, d.hours.Target)
	title := titleStyle.Render("This Week")
	summary := fmt.Sprintf("%s / %s  (%s)",
		successStyle.Render(formatHours(d.hours.Completed)),
		highlightStyle.Render(formatHours(d.hours.Target)),
		mutedStyle.Render(fmt.Sprintf("%.0f%%", pct)),
	)

	if len(d.weekGoals) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No goals for this week"),
		)
		return panelStyle.Width(w).Render(content)
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title+"  "+summary, "", d.chart.View()),
	)
}

func priorityBadge(p store.Priority) string {
	switch p {
	case store.PriorityHigh:
		return errorStyle.Render("high")
	case store.PriorityMedium:
		return warningStyle.Render("med ")
	default:
		return mutedStyle.Render("low ")
	}
}
