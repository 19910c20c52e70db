package store

import (
	"encoding/json"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestPlanner(t *testing.T) *Planner {
	t.Helper()
	p, err := Open(newTestStore(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return p
}

func strPtr(s string) *string   { return &s }
func boolPtr(b bool) *bool      { return &b }
func f64Ptr(f float64) *float64 { return &f }

func TestTimetableAddAssignsIDAndColor(t *testing.T) {
	p := newTestPlanner(t)

	first, err := p.Timetable.AddSlot(TimeSlot{
		CourseName: "Linear Algebra",
		Lecturer:   "Dr. Chen",
		Day:        "Monday",
		StartTime:  "09:00",
		EndTime:    "10:30",
	})
	if err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if first.ID == "" {
		t.Error("expected generated id")
	}
	if first.Color != SlotColor(0) {
		t.Errorf("color = %q, want %q", first.Color, SlotColor(0))
	}

	second, err := p.Timetable.AddSlot(TimeSlot{CourseName: "Physics", Day: "Tuesday", StartTime: "11:00", EndTime: "12:00"})
	if err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if second.Color != SlotColor(1) {
		t.Errorf("second color = %q, want %q", second.Color, SlotColor(1))
	}
	if second.ID == first.ID {
		t.Error("ids must be unique")
	}
	if p.Timetable.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Timetable.Len())
	}
}

func TestTimetableAddKeepsExplicitColor(t *testing.T) {
	p := newTestPlanner(t)

	slot, err := p.Timetable.AddSlot(TimeSlot{CourseName: "Art History", Day: "Friday", StartTime: "14:00", EndTime: "15:00", Color: "#123456"})
	if err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if slot.Color != "#123456" {
		t.Errorf("color = %q, want caller's #123456", slot.Color)
	}
}

func TestTimetableUpdateMergesPartialFields(t *testing.T) {
	p := newTestPlanner(t)

	slot, _ := p.Timetable.AddSlot(TimeSlot{CourseName: "Chemistry", Lecturer: "Dr. Ito", Day: "Wednesday", StartTime: "09:00", EndTime: "10:00"})

	if err := p.Timetable.UpdateSlot(slot.ID, SlotUpdate{Lecturer: strPtr("Dr. Novak"), EndTime: strPtr("11:00")}); err != nil {
		t.Fatalf("UpdateSlot: %v", err)
	}

	got := p.Timetable.Slots()[0]
	if got.Lecturer != "Dr. Novak" {
		t.Errorf("lecturer = %q, want Dr. Novak", got.Lecturer)
	}
	if got.EndTime != "11:00" {
		t.Errorf("endTime = %q, want 11:00", got.EndTime)
	}
	if got.CourseName != "Chemistry" || got.Day != "Wednesday" || got.StartTime != "09:00" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestTimetableMissingIDIsNoOp(t *testing.T) {
	p := newTestPlanner(t)
	p.Timetable.AddSlot(TimeSlot{CourseName: "Biology", Day: "Monday", StartTime: "08:00", EndTime: "09:00"})

	if err := p.Timetable.UpdateSlot("no-such-id", SlotUpdate{CourseName: strPtr("x")}); err != nil {
		t.Fatalf("UpdateSlot missing id: %v", err)
	}
	if err := p.Timetable.DeleteSlot("no-such-id"); err != nil {
		t.Fatalf("DeleteSlot missing id: %v", err)
	}

	slots := p.Timetable.Slots()
	if len(slots) != 1 || slots[0].CourseName != "Biology" {
		t.Errorf("collection changed by missing-id mutation: %+v", slots)
	}
}

func TestTimetableDeleteAndClear(t *testing.T) {
	p := newTestPlanner(t)
	a, _ := p.Timetable.AddSlot(TimeSlot{CourseName: "A", Day: "Monday", StartTime: "09:00", EndTime: "10:00"})
	b, _ := p.Timetable.AddSlot(TimeSlot{CourseName: "B", Day: "Tuesday", StartTime: "09:00", EndTime: "10:00"})

	if err := p.Timetable.DeleteSlot(a.ID); err != nil {
		t.Fatalf("DeleteSlot: %v", err)
	}
	slots := p.Timetable.Slots()
	if len(slots) != 1 || slots[0].ID != b.ID {
		t.Errorf("after delete: %+v", slots)
	}

	if err := p.Timetable.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if p.Timetable.Len() != 0 {
		t.Errorf("Len after clear = %d, want 0", p.Timetable.Len())
	}
}

func TestTimetableRehydratesFromSnapshot(t *testing.T) {
	s := newTestStore(t)

	tt, err := NewTimetable(s)
	if err != nil {
		t.Fatalf("NewTimetable: %v", err)
	}
	slot, err := tt.AddSlot(TimeSlot{CourseName: "Databases", Lecturer: "Prof. Ahmed", Day: "Thursday", StartTime: "13:00", EndTime: "15:00"})
	if err != nil {
		t.Fatalf("AddSlot: %v", err)
	}

	reopened, err := NewTimetable(s)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	slots := reopened.Slots()
	if len(slots) != 1 {
		t.Fatalf("rehydrated %d slots, want 1", len(slots))
	}
	if slots[0] != slot {
		t.Errorf("rehydrated slot = %+v, want %+v", slots[0], slot)
	}
}

func TestAssignmentsToggleAndDelete(t *testing.T) {
	p := newTestPlanner(t)

	item, err := p.Assignments.Add(Assignment{Course: "CS101", Title: "Problem set 3", DueDate: "2026-09-04", Priority: PriorityHigh})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Completed {
		t.Error("new assignment should start incomplete")
	}

	if err := p.Assignments.Update(item.ID, AssignmentUpdate{Completed: boolPtr(true)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := p.Assignments.All()[0]; !got.Completed {
		t.Error("completed flag not flipped")
	}

	if err := p.Assignments.Delete(item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if p.Assignments.Len() != 0 {
		t.Errorf("Len = %d, want 0", p.Assignments.Len())
	}
}

func TestAssignmentsRehydrate(t *testing.T) {
	s := newTestStore(t)

	a, err := NewAssignments(s)
	if err != nil {
		t.Fatalf("NewAssignments: %v", err)
	}
	item, _ := a.Add(Assignment{Course: "Stats", Title: "Essay", DueDate: "2026-09-10", Priority: PriorityMedium, Description: "2000 words"})

	reopened, err := NewAssignments(s)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := reopened.All()
	if len(got) != 1 || got[0] != item {
		t.Errorf("rehydrated = %+v, want [%+v]", got, item)
	}
}

func TestGoalsAdjustHoursFloorsAtZero(t *testing.T) {
	p := newTestPlanner(t)

	goal, err := p.Goals.Add(StudyGoal{Title: "Read chapter 4", TargetHours: 5, WeekStartDate: "2026-08-23"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := p.Goals.AdjustHours(goal.ID, 1); err != nil {
		t.Fatalf("AdjustHours: %v", err)
	}
	if err := p.Goals.AdjustHours(goal.ID, 0.5); err != nil {
		t.Fatalf("AdjustHours: %v", err)
	}
	if got := p.Goals.All()[0].CompletedHours; got != 1.5 {
		t.Errorf("completedHours = %v, want 1.5", got)
	}

	if err := p.Goals.AdjustHours(goal.ID, -3); err != nil {
		t.Fatalf("AdjustHours: %v", err)
	}
	if got := p.Goals.All()[0].CompletedHours; got != 0 {
		t.Errorf("completedHours = %v, want 0 after floor", got)
	}
}

func TestGoalsUpdateClampsNegativeHours(t *testing.T) {
	p := newTestPlanner(t)
	goal, _ := p.Goals.Add(StudyGoal{Title: "Flashcards", TargetHours: 3, WeekStartDate: "2026-08-23"})

	if err := p.Goals.Update(goal.ID, GoalUpdate{CompletedHours: f64Ptr(-2)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := p.Goals.All()[0].CompletedHours; got != 0 {
		t.Errorf("completedHours = %v, want 0", got)
	}
}

func TestGoalsAdjustMissingIDIsNoOp(t *testing.T) {
	p := newTestPlanner(t)
	p.Goals.Add(StudyGoal{Title: "Revise", TargetHours: 2, WeekStartDate: "2026-08-23"})

	if err := p.Goals.AdjustHours("missing", 1); err != nil {
		t.Fatalf("AdjustHours missing id: %v", err)
	}
	if got := p.Goals.All()[0].CompletedHours; got != 0 {
		t.Errorf("completedHours = %v, want 0", got)
	}
}

func TestSettingsDefaultsAndPersistence(t *testing.T) {
	s := newTestStore(t)

	st, err := NewSettings(s)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	if st.App() != DefaultAppSettings() {
		t.Errorf("App() = %+v, want defaults", st.App())
	}
	if st.Accessibility() != DefaultAccessibility() {
		t.Errorf("Accessibility() = %+v, want defaults", st.Accessibility())
	}

	if err := st.SetTheme(Theme{Mode: ThemeDark, AccentColor: "purple"}); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := st.SetNotifications(false); err != nil {
		t.Fatalf("SetNotifications: %v", err)
	}
	if err := st.SetPomodoroLength(45); err != nil {
		t.Fatalf("SetPomodoroLength: %v", err)
	}
	if err := st.SetFontSize(FontLarge); err != nil {
		t.Fatalf("SetFontSize: %v", err)
	}
	if err := st.SetHighContrast(true); err != nil {
		t.Fatalf("SetHighContrast: %v", err)
	}

	reopened, err := NewSettings(s)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	app := reopened.App()
	if app.Theme.Mode != ThemeDark || app.Theme.AccentColor != "purple" {
		t.Errorf("theme = %+v", app.Theme)
	}
	if app.Notifications {
		t.Error("notifications should be off")
	}
	if app.PomodoroLength != 45 {
		t.Errorf("pomodoroLength = %d, want 45", app.PomodoroLength)
	}
	acc := reopened.Accessibility()
	if acc.FontSize != FontLarge || !acc.HighContrast {
		t.Errorf("accessibility = %+v", acc)
	}
}

func TestSettingsRejectsUnknownPomodoroLength(t *testing.T) {
	s := newTestStore(t)
	st, err := NewSettings(s)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}

	if err := st.SetPomodoroLength(30); err == nil {
		t.Fatal("expected error for length outside presets")
	}
	if st.App().PomodoroLength != 25 {
		t.Errorf("pomodoroLength = %d, want unchanged 25", st.App().PomodoroLength)
	}
}

func TestSettingsReplaceKeepsDiskAndMemoryInStep(t *testing.T) {
	s := newTestStore(t)
	st, err := NewSettings(s)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	if err := st.SetNotifications(false); err != nil {
		t.Fatalf("SetNotifications: %v", err)
	}
	prevApp := st.App()

	// Block the accessibility snapshot so the second write of Replace
	// fails after the first one succeeded.
	for _, ddl := range []string{
		`CREATE TRIGGER no_acc_insert BEFORE INSERT ON snapshots WHEN NEW.name = 'accessibility'
		 BEGIN SELECT RAISE(ABORT, 'accessibility writes disabled'); END`,
		`CREATE TRIGGER no_acc_update BEFORE UPDATE ON snapshots WHEN NEW.name = 'accessibility'
		 BEGIN SELECT RAISE(ABORT, 'accessibility writes disabled'); END`,
	} {
		if _, err := s.db.Exec(ddl); err != nil {
			t.Fatalf("create trigger: %v", err)
		}
	}

	newApp := AppSettings{
		Theme:          Theme{Mode: ThemeDark, AccentColor: "green"},
		Notifications:  true,
		PomodoroLength: 45,
	}
	if err := st.Replace(newApp, Accessibility{FontSize: FontLarge, HighContrast: true}); err == nil {
		t.Fatal("expected error when the accessibility write is blocked")
	}

	if st.App() != prevApp {
		t.Errorf("app settings = %+v, want prior %+v", st.App(), prevApp)
	}
	if st.Accessibility() != DefaultAccessibility() {
		t.Errorf("accessibility = %+v, want defaults", st.Accessibility())
	}

	data, ok, err := s.loadSnapshot(settingsSnapshot)
	if err != nil || !ok {
		t.Fatalf("load settings snapshot: ok=%v err=%v", ok, err)
	}
	var onDisk AppSettings
	if err := json.Unmarshal([]byte(data), &onDisk); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if onDisk != prevApp {
		t.Errorf("on-disk app settings = %+v, want prior %+v", onDisk, prevApp)
	}
}

func TestSlotColorCyclesDeterministically(t *testing.T) {
	palette := SlotPalette()
	if len(palette) == 0 {
		t.Fatal("empty palette")
	}
	for i := 0; i < len(palette)*2; i++ {
		want := palette[i%len(palette)]
		if got := SlotColor(i); got != want {
			t.Errorf("SlotColor(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestValidPomodoroLength(t *testing.T) {
	for _, l := range PomodoroLengths {
		if !ValidPomodoroLength(l) {
			t.Errorf("ValidPomodoroLength(%d) = false", l)
		}
	}
	for _, l := range []int{0, 10, 30, 90, -25} {
		if ValidPomodoroLength(l) {
			t.Errorf("ValidPomodoroLength(%d) = true", l)
		}
	}
}

func TestPlannerOpenRehydratesEverything(t *testing.T) {
	s := newTestStore(t)

	p, err := Open(s)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p.Timetable.AddSlot(TimeSlot{CourseName: "Calculus", Day: "Monday", StartTime: "09:00", EndTime: "10:00"})
	p.Assignments.Add(Assignment{Course: "Calculus", Title: "Homework 1", DueDate: "2026-09-01", Priority: PriorityLow})
	p.Goals.Add(StudyGoal{Title: "Practice problems", TargetHours: 4, WeekStartDate: "2026-08-23"})
	p.Settings.SetHighContrast(true)

	again, err := Open(s)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if again.Timetable.Len() != 1 || again.Assignments.Len() != 1 || again.Goals.Len() != 1 {
		t.Errorf("rehydrated lens = %d/%d/%d, want 1/1/1",
			again.Timetable.Len(), again.Assignments.Len(), again.Goals.Len())
	}
	if !again.Settings.Accessibility().HighContrast {
		t.Error("highContrast not rehydrated")
	}
}
