package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studyplan/internal/store"
)

func seededPlanner(t *testing.T) *store.Planner {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	p, err := store.Open(s)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := p.Timetable.AddSlot(store.TimeSlot{CourseName: "Algorithms", Lecturer: "Dr. Okafor", Day: "Monday", StartTime: "09:00", EndTime: "10:30"}); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	if _, err := p.Assignments.Add(store.Assignment{Course: "Algorithms", Title: "Graph homework", DueDate: "2026-09-07", Priority: store.PriorityHigh}); err != nil {
		t.Fatalf("Add assignment: %v", err)
	}
	if _, err := p.Assignments.Add(store.Assignment{Course: "History", Title: "Reading notes", DueDate: "2026-09-02", Priority: store.PriorityLow, Completed: true}); err != nil {
		t.Fatalf("Add assignment: %v", err)
	}
	if _, err := p.Goals.Add(store.StudyGoal{Title: "Revise sorting", TargetHours: 6, CompletedHours: 2, WeekStartDate: "2026-08-23"}); err != nil {
		t.Fatalf("Add goal: %v", err)
	}
	return p
}

func TestBuildCapturesFullState(t *testing.T) {
	p := seededPlanner(t)
	now := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)

	b := Build(p, now)

	if len(b.Timetable) != 1 || len(b.Assignments) != 2 || len(b.Goals) != 1 {
		t.Errorf("lens = %d/%d/%d, want 1/2/1", len(b.Timetable), len(b.Assignments), len(b.Goals))
	}
	if b.ExportedAt != "2026-08-26T14:00:00Z" {
		t.Errorf("exportedAt = %q", b.ExportedAt)
	}
	if _, err := time.Parse(time.RFC3339, b.ExportedAt); err != nil {
		t.Errorf("exportedAt not RFC3339: %v", err)
	}
	if b.Settings.FontSize != store.FontMedium {
		t.Errorf("fontSize = %q, want medium default", b.Settings.FontSize)
	}
	if b.Settings.Theme.Mode != store.ThemeSystem {
		t.Errorf("theme mode = %q, want system default", b.Settings.Theme.Mode)
	}
}

func TestToJSONWritesFileFormat(t *testing.T) {
	p := seededPlanner(t)
	now := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), DefaultFilename(now, "json"))

	if err := ToJSON(p, path, now); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if filepath.Base(path) != "studyplan-backup-2026-08-26.json" {
		t.Errorf("filename = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"timetable", "assignments", "goals", "settings", "exportedAt"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("document missing %q", key)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p := seededPlanner(t)
	now := time.Now()

	data, err := json.Marshal(Build(p, now))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	b, err := ParseBackup(data)
	if err != nil {
		t.Fatalf("ParseBackup: %v", err)
	}

	s2, err := store.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	defer s2.Close()
	p2, err := store.Open(s2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := Restore(p2, b); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if p2.Timetable.Len() != 1 || p2.Assignments.Len() != 2 || p2.Goals.Len() != 1 {
		t.Errorf("restored lens = %d/%d/%d", p2.Timetable.Len(), p2.Assignments.Len(), p2.Goals.Len())
	}
	if got := p2.Timetable.Slots()[0]; got != p.Timetable.Slots()[0] {
		t.Errorf("restored slot = %+v, want %+v", got, p.Timetable.Slots()[0])
	}
}

func TestRestoreKeepsLocalOnlySettings(t *testing.T) {
	p := seededPlanner(t)
	if err := p.Settings.SetNotifications(false); err != nil {
		t.Fatalf("SetNotifications: %v", err)
	}
	if err := p.Settings.SetPomodoroLength(45); err != nil {
		t.Fatalf("SetPomodoroLength: %v", err)
	}

	b := &Backup{
		Settings: BackupSettings{
			FontSize:     store.FontLarge,
			HighContrast: true,
			Theme:        store.Theme{Mode: store.ThemeDark, AccentColor: "green"},
		},
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := Restore(p, b); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	app := p.Settings.App()
	if app.Theme.Mode != store.ThemeDark || app.Theme.AccentColor != "green" {
		t.Errorf("theme = %+v", app.Theme)
	}
	if app.Notifications || app.PomodoroLength != 45 {
		t.Errorf("local-only settings changed: %+v", app)
	}
	acc := p.Settings.Accessibility()
	if acc.FontSize != store.FontLarge || !acc.HighContrast {
		t.Errorf("accessibility = %+v", acc)
	}
	if p.Timetable.Len() != 0 || p.Assignments.Len() != 0 || p.Goals.Len() != 0 {
		t.Error("restore with empty collections should wipe existing data")
	}
}

func TestParseBackupRejectsBadDocuments(t *testing.T) {
	stamp := `"exportedAt": "2026-08-26T14:00:00Z"`
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing exportedAt", `{"timetable": [], "assignments": [], "goals": []}`},
		{"bad exportedAt", `{"exportedAt": "yesterday"}`},
		{"slot without id", `{"timetable": [{"courseName": "Math", "day": "Monday"}], ` + stamp + `}`},
		{"slot with unknown day", `{"timetable": [{"id": "1", "courseName": "Math", "day": "Funday"}], ` + stamp + `}`},
		{"assignment bad priority", `{"assignments": [{"id": "1", "title": "x", "priority": "urgent"}], ` + stamp + `}`},
		{"goal zero target", `{"goals": [{"id": "1", "title": "x", "targetHours": 0}], ` + stamp + `}`},
		{"goal negative hours", `{"goals": [{"id": "1", "title": "x", "targetHours": 2, "completedHours": -1}], ` + stamp + `}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseBackup([]byte(c.data)); err == nil {
				t.Errorf("ParseBackup accepted %s", c.name)
			}
		})
	}
}

func TestToCSV(t *testing.T) {
	assignments := []store.Assignment{
		{ID: "1", Course: "CS101", Title: "Problem set", DueDate: "2026-09-02", Priority: store.PriorityHigh, Completed: true, Description: "chapters 1-3"},
		{ID: "2", Course: "History", Title: "Essay, draft", DueDate: "2026-09-05", Priority: store.PriorityLow},
	}

	path := filepath.Join(t.TempDir(), "assignments.csv")
	if err := ToCSV(assignments, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if strings.Join(rows[0], ",") != "Course,Title,Due Date,Priority,Completed,Description" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][4] != "yes" || rows[2][4] != "no" {
		t.Errorf("completed columns = %q/%q, want yes/no", rows[1][4], rows[2][4])
	}
	if rows[2][1] != "Essay, draft" {
		t.Errorf("title with comma mangled: %q", rows[2][1])
	}
}
