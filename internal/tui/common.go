package tui

import (
	"fmt"
	"time"

	"studyplan/internal/notify"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTimetable
	viewAssignments
	viewGoals
	viewPomodoro
	viewSettings
)

var viewNames = []string{"Dashboard", "Timetable", "Assignments", "Goals", "Pomodoro", "Settings"}

// --- Messages ---

// toastsMsg carries the active notifications from the bus.
type toastsMsg []notify.Notification

// dataChangedMsg tells views to re-read the planner state.
type dataChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

type tickMsg time.Time

// --- Helpers ---

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
