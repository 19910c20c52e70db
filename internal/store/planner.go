package store

// Planner bundles the four collection stores backed by one database.
// All mutations flow through exactly one caller (the UI update loop), so
// the stores carry no locking.
type Planner struct {
	Timetable   *Timetable
	Assignments *Assignments
	Goals       *Goals
	Settings    *Settings
}

// Open rehydrates every collection from its snapshot.
func Open(s *Store) (*Planner, error) {
	timetable, err := NewTimetable(s)
	if err != nil {
		return nil, err
	}
	assignments, err := NewAssignments(s)
	if err != nil {
		return nil, err
	}
	goals, err := NewGoals(s)
	if err != nil {
		return nil, err
	}
	settings, err := NewSettings(s)
	if err != nil {
		return nil, err
	}
	return &Planner{
		Timetable:   timetable,
		Assignments: assignments,
		Goals:       goals,
		Settings:    settings,
	}, nil
}
