package views

import (
	"testing"
	"time"

	"studyplan/internal/store"
)

func TestTodayClassesFiltersByWeekday(t *testing.T) {
	slots := []store.TimeSlot{
		{ID: "1", CourseName: "Algebra", Day: "Monday"},
		{ID: "2", CourseName: "Physics", Day: "Tuesday"},
		{ID: "3", CourseName: "Algebra Lab", Day: "Monday"},
	}

	// 2026-08-24 is a Monday.
	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	got := TodayClasses(slots, monday)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Monday classes = %+v", got)
	}

	tuesday := monday.AddDate(0, 0, 1)
	got = TodayClasses(slots, tuesday)
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("Tuesday classes = %+v", got)
	}

	sunday := monday.AddDate(0, 0, -1)
	if got := TodayClasses(slots, sunday); len(got) != 0 {
		t.Errorf("Sunday classes = %+v, want none", got)
	}
}

func TestUpcomingAssignmentsSkipsCompletedAndSorts(t *testing.T) {
	assignments := []store.Assignment{
		{ID: "a", Title: "Late essay", DueDate: "2026-09-10"},
		{ID: "b", Title: "Done already", DueDate: "2026-09-01", Completed: true},
		{ID: "c", Title: "Quiz prep", DueDate: "2026-09-03"},
	}

	got := UpcomingAssignments(assignments, 0)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "a" {
		t.Errorf("order = [%s %s], want [c a]", got[0].ID, got[1].ID)
	}
}

func TestUpcomingAssignmentsLimit(t *testing.T) {
	assignments := []store.Assignment{
		{ID: "a", DueDate: "2026-09-05"},
		{ID: "b", DueDate: "2026-09-01"},
		{ID: "c", DueDate: "2026-09-03"},
	}

	got := UpcomingAssignments(assignments, 2)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("limited = %+v, want [b c]", got)
	}
}

func TestByDueDateKeepsCompleted(t *testing.T) {
	assignments := []store.Assignment{
		{ID: "a", DueDate: "2026-09-05", Completed: true},
		{ID: "b", DueDate: "2026-09-01"},
	}

	got := ByDueDate(assignments)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("sorted = %+v", got)
	}
	if assignments[0].ID != "a" {
		t.Error("input slice was reordered")
	}
}

func TestPendingCount(t *testing.T) {
	assignments := []store.Assignment{
		{ID: "a"},
		{ID: "b", Completed: true},
		{ID: "c"},
	}
	if got := PendingCount(assignments); got != 2 {
		t.Errorf("PendingCount = %d, want 2", got)
	}
	if got := PendingCount(nil); got != 0 {
		t.Errorf("PendingCount(nil) = %d, want 0", got)
	}
}

func TestWeekStartIsMostRecentSunday(t *testing.T) {
	// 2026-08-26 is a Wednesday; its week starts Sunday 2026-08-23.
	wednesday := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	want := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(wednesday); !got.Equal(want) {
		t.Errorf("WeekStart = %v, want %v", got, want)
	}

	// A Sunday is its own week start.
	sunday := time.Date(2026, 8, 23, 23, 59, 0, 0, time.UTC)
	if got := WeekStart(sunday); !got.Equal(want) {
		t.Errorf("WeekStart(Sunday) = %v, want %v", got, want)
	}
}

func TestCurrentWeekGoalsWindow(t *testing.T) {
	goals := []store.StudyGoal{
		{ID: "this", Title: "This week", WeekStartDate: "2026-08-23"},
		{ID: "last", Title: "Last week", WeekStartDate: "2026-08-16"},
		{ID: "next", Title: "Next week", WeekStartDate: "2026-08-30"},
		{ID: "bad", Title: "Unparseable", WeekStartDate: "soon"},
	}

	wednesday := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	got := CurrentWeekGoals(goals, wednesday)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].ID != "this" || got[1].ID != "next" {
		t.Errorf("ids = [%s %s], want [this next]", got[0].ID, got[1].ID)
	}
}

func TestSumHours(t *testing.T) {
	goals := []store.StudyGoal{
		{CompletedHours: 1.5, TargetHours: 5},
		{CompletedHours: 3, TargetHours: 4},
	}
	totals := SumHours(goals)
	if totals.Completed != 4.5 || totals.Target != 9 {
		t.Errorf("totals = %+v, want {4.5 9}", totals)
	}
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		completed, target, want float64
	}{
		{5, 10, 50},
		{12, 10, 100},
		{0, 10, 0},
		{5, 0, 0},
		{5, -1, 0},
		{-2, 10, 0},
	}
	for _, c := range cases {
		if got := ProgressPercent(c.completed, c.target); got != c.want {
			t.Errorf("ProgressPercent(%v, %v) = %v, want %v", c.completed, c.target, got, c.want)
		}
	}
}
