package store

// Days of the week as used by TimeSlot.Day, Monday first.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TimeSlot is one scheduled class occurrence in the weekly timetable.
type TimeSlot struct {
	ID         string `json:"id"`
	CourseName string `json:"courseName"`
	Lecturer   string `json:"lecturer"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"` // HH:MM, 24-hour
	EndTime    string `json:"endTime"`   // HH:MM, 24-hour
	Color      string `json:"color"`
}

// SlotUpdate carries a partial edit of a TimeSlot. Nil fields are left
// untouched.
type SlotUpdate struct {
	CourseName *string
	Lecturer   *string
	Day        *string
	StartTime  *string
	EndTime    *string
	Color      *string
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Assignment struct {
	ID          string   `json:"id"`
	Course      string   `json:"course"`
	Title       string   `json:"title"`
	DueDate     string   `json:"dueDate"` // ISO date, YYYY-MM-DD
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
	Description string   `json:"description,omitempty"`
}

type AssignmentUpdate struct {
	Course      *string
	Title       *string
	DueDate     *string
	Priority    *Priority
	Completed   *bool
	Description *string
}

// StudyGoal tracks hours studied against a weekly target. The completed
// flag is user-set and is not derived from the hour counters.
type StudyGoal struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	TargetHours    float64 `json:"targetHours"`
	CompletedHours float64 `json:"completedHours"`
	WeekStartDate  string  `json:"weekStartDate"` // ISO date, YYYY-MM-DD
	Description    string  `json:"description,omitempty"`
	Completed      bool    `json:"completed"`
}

type GoalUpdate struct {
	Title          *string
	TargetHours    *float64
	CompletedHours *float64
	WeekStartDate  *string
	Description    *string
	Completed      *bool
}

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Accessibility holds the global accessibility preferences.
type Accessibility struct {
	FontSize     FontSize `json:"fontSize"`
	HighContrast bool     `json:"highContrast"`
}

type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

type Theme struct {
	Mode        ThemeMode `json:"mode"`
	AccentColor string    `json:"accentColor"`
}

// PomodoroLengths are the selectable study interval lengths in minutes.
var PomodoroLengths = []int{15, 25, 45, 60}

// AppSettings holds the global application preferences.
type AppSettings struct {
	Theme          Theme `json:"theme"`
	Notifications  bool  `json:"notifications"`
	PomodoroLength int   `json:"pomodoroLength"` // minutes
}

func DefaultAccessibility() Accessibility {
	return Accessibility{FontSize: FontMedium, HighContrast: false}
}

func DefaultAppSettings() AppSettings {
	return AppSettings{
		Theme:          Theme{Mode: ThemeSystem, AccentColor: "blue"},
		Notifications:  true,
		PomodoroLength: 25,
	}
}

// ValidPomodoroLength reports whether minutes is one of the preset lengths.
func ValidPomodoroLength(minutes int) bool {
	for _, l := range PomodoroLengths {
		if l == minutes {
			return true
		}
	}
	return false
}
