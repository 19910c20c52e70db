package export

import (
	"encoding/json"
	"fmt"
	"time"

	"studyplan/internal/store"
)

// ParseBackup decodes and validates a backup document. A failure leaves
// no state applied anywhere; callers surface the error to the user.
func ParseBackup(data []byte) (*Backup, error) {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if err := validate(&b); err != nil {
		return nil, fmt.Errorf("invalid backup: %w", err)
	}
	return &b, nil
}

func validate(b *Backup) error {
	if b.ExportedAt == "" {
		return fmt.Errorf("missing exportedAt")
	}
	if _, err := time.Parse(time.RFC3339, b.ExportedAt); err != nil {
		return fmt.Errorf("bad exportedAt: %w", err)
	}

	for i, s := range b.Timetable {
		if s.ID == "" || s.CourseName == "" {
			return fmt.Errorf("timetable[%d]: missing id or courseName", i)
		}
		if !validDay(s.Day) {
			return fmt.Errorf("timetable[%d]: unknown day %q", i, s.Day)
		}
	}
	for i, a := range b.Assignments {
		if a.ID == "" || a.Title == "" {
			return fmt.Errorf("assignments[%d]: missing id or title", i)
		}
		switch a.Priority {
		case store.PriorityLow, store.PriorityMedium, store.PriorityHigh:
		default:
			return fmt.Errorf("assignments[%d]: unknown priority %q", i, a.Priority)
		}
	}
	for i, g := range b.Goals {
		if g.ID == "" || g.Title == "" {
			return fmt.Errorf("goals[%d]: missing id or title", i)
		}
		if g.TargetHours <= 0 {
			return fmt.Errorf("goals[%d]: targetHours must be positive", i)
		}
		if g.CompletedHours < 0 {
			return fmt.Errorf("goals[%d]: negative completedHours", i)
		}
	}
	return nil
}

func validDay(day string) bool {
	for _, d := range store.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Restore replaces the planner's entire state with the backup's. It is a
// whole-file restore, not a merge; collections are swapped one store at
// a time.
func Restore(p *store.Planner, b *Backup) error {
	if err := p.Timetable.Replace(b.Timetable); err != nil {
		return err
	}
	if err := p.Assignments.Replace(b.Assignments); err != nil {
		return err
	}
	if err := p.Goals.Replace(b.Goals); err != nil {
		return err
	}

	app := p.Settings.App()
	app.Theme = b.Settings.Theme
	acc := store.Accessibility{
		FontSize:     b.Settings.FontSize,
		HighContrast: b.Settings.HighContrast,
	}
	return p.Settings.Replace(app, acc)
}
