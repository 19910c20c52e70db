// Package views holds the derived read-only projections over the
// planner's collections. Every function is pure: the current time is an
// explicit parameter and the inputs are never mutated.
package views

import (
	"sort"
	"time"

	"studyplan/internal/store"
)

// TodayClasses returns the slots scheduled on now's weekday, in
// timetable order.
func TodayClasses(slots []store.TimeSlot, now time.Time) []store.TimeSlot {
	day := now.Weekday().String()
	var out []store.TimeSlot
	for _, s := range slots {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

// UpcomingAssignments returns incomplete assignments sorted ascending by
// due date. A limit of 0 returns all of them.
func UpcomingAssignments(assignments []store.Assignment, limit int) []store.Assignment {
	var out []store.Assignment
	for _, a := range assignments {
		if !a.Completed {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ByDueDate returns all assignments sorted ascending by due date,
// completed ones included.
func ByDueDate(assignments []store.Assignment) []store.Assignment {
	out := make([]store.Assignment, len(assignments))
	copy(out, assignments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	return out
}

// PendingCount returns how many assignments are not yet completed.
func PendingCount(assignments []store.Assignment) int {
	n := 0
	for _, a := range assignments {
		if !a.Completed {
			n++
		}
	}
	return n
}

// WeekStart returns the most recent Sunday at midnight in now's location.
func WeekStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// CurrentWeekGoals returns the goals whose week starts on or after the
// most recent Sunday.
func CurrentWeekGoals(goals []store.StudyGoal, now time.Time) []store.StudyGoal {
	start := WeekStart(now)
	var out []store.StudyGoal
	for _, g := range goals {
		d, err := time.ParseInLocation("2006-01-02", g.WeekStartDate, now.Location())
		if err != nil {
			continue
		}
		if !d.Before(start) {
			out = append(out, g)
		}
	}
	return out
}

// HourTotals aggregates completed and target hours over a goal subset.
type HourTotals struct {
	Completed float64
	Target    float64
}

// SumHours totals completed and target hours over goals.
func SumHours(goals []store.StudyGoal) HourTotals {
	var t HourTotals
	for _, g := range goals {
		t.Completed += g.CompletedHours
		t.Target += g.TargetHours
	}
	return t
}

// ProgressPercent returns completed/target as a display percentage,
// clamped to [0, 100]. A zero target reads as 0%.
func ProgressPercent(completed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := completed / target * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
