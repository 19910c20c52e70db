package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"studyplan/internal/store"
)

// Backup is the full-state JSON document produced by export and consumed
// by import. Field names are part of the file format.
type Backup struct {
	Timetable   []store.TimeSlot   `json:"timetable"`
	Assignments []store.Assignment `json:"assignments"`
	Goals       []store.StudyGoal  `json:"goals"`
	Settings    BackupSettings     `json:"settings"`
	ExportedAt  string             `json:"exportedAt"`
}

// BackupSettings flattens the two preference records into one object.
type BackupSettings struct {
	FontSize     store.FontSize `json:"fontSize"`
	HighContrast bool           `json:"highContrast"`
	Theme        store.Theme    `json:"theme"`
}

// Build assembles a backup document from the planner's current state,
// stamped with now.
func Build(p *store.Planner, now time.Time) Backup {
	acc := p.Settings.Accessibility()
	return Backup{
		Timetable:   p.Timetable.Slots(),
		Assignments: p.Assignments.All(),
		Goals:       p.Goals.All(),
		Settings: BackupSettings{
			FontSize:     acc.FontSize,
			HighContrast: acc.HighContrast,
			Theme:        p.Settings.App().Theme,
		},
		ExportedAt: now.UTC().Format(time.RFC3339),
	}
}

// WriteBackup writes an already-built backup document to path. Callers
// that run off the update loop build the document first and hand only
// the file write to this function.
func WriteBackup(b Backup, path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// ToJSON writes a backup of the planner to path.
func ToJSON(p *store.Planner, path string, now time.Time) error {
	return WriteBackup(Build(p, now), path)
}

// DefaultFilename returns the dated backup filename for now.
func DefaultFilename(now time.Time, ext string) string {
	return fmt.Sprintf("studyplan-backup-%s.%s", now.Format("2006-01-02"), ext)
}
