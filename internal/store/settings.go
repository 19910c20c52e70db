package store

import (
	"encoding/json"
	"fmt"
)

const (
	settingsSnapshot      = "settings"
	accessibilitySnapshot = "accessibility"
)

// Settings owns the two singular preference records: application settings
// and accessibility settings. Each persists under its own snapshot.
type Settings struct {
	store         *Store
	app           AppSettings
	accessibility Accessibility
}

// NewSettings rehydrates both records, falling back to defaults when no
// snapshot exists.
func NewSettings(s *Store) (*Settings, error) {
	st := &Settings{
		store:         s,
		app:           DefaultAppSettings(),
		accessibility: DefaultAccessibility(),
	}

	data, ok, err := s.loadSnapshot(settingsSnapshot)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(data), &st.app); err != nil {
			return nil, err
		}
	}

	data, ok, err = s.loadSnapshot(accessibilitySnapshot)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(data), &st.accessibility); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (st *Settings) persistApp() error {
	data, err := json.Marshal(st.app)
	if err != nil {
		return err
	}
	return st.store.saveSnapshot(settingsSnapshot, string(data))
}

func (st *Settings) persistAccessibility() error {
	data, err := json.Marshal(st.accessibility)
	if err != nil {
		return err
	}
	return st.store.saveSnapshot(accessibilitySnapshot, string(data))
}

func (st *Settings) App() AppSettings {
	return st.app
}

func (st *Settings) Accessibility() Accessibility {
	return st.accessibility
}

// SetTheme replaces the theme record.
func (st *Settings) SetTheme(theme Theme) error {
	prev := st.app.Theme
	st.app.Theme = theme
	if err := st.persistApp(); err != nil {
		st.app.Theme = prev
		return err
	}
	return nil
}

// SetNotifications toggles user-facing notification delivery.
func (st *Settings) SetNotifications(enabled bool) error {
	prev := st.app.Notifications
	st.app.Notifications = enabled
	if err := st.persistApp(); err != nil {
		st.app.Notifications = prev
		return err
	}
	return nil
}

// SetPomodoroLength sets the study interval length; minutes must be one
// of the preset lengths.
func (st *Settings) SetPomodoroLength(minutes int) error {
	if !ValidPomodoroLength(minutes) {
		return fmt.Errorf("pomodoro length %d is not one of %v", minutes, PomodoroLengths)
	}
	prev := st.app.PomodoroLength
	st.app.PomodoroLength = minutes
	if err := st.persistApp(); err != nil {
		st.app.PomodoroLength = prev
		return err
	}
	return nil
}

// SetFontSize sets the accessibility font size.
func (st *Settings) SetFontSize(size FontSize) error {
	prev := st.accessibility.FontSize
	st.accessibility.FontSize = size
	if err := st.persistAccessibility(); err != nil {
		st.accessibility.FontSize = prev
		return err
	}
	return nil
}

// SetHighContrast toggles the high contrast mode.
func (st *Settings) SetHighContrast(enabled bool) error {
	prev := st.accessibility.HighContrast
	st.accessibility.HighContrast = enabled
	if err := st.persistAccessibility(); err != nil {
		st.accessibility.HighContrast = prev
		return err
	}
	return nil
}

// Replace swaps in both records wholesale, used by backup restore. On a
// failure of the second write the first snapshot is restored so memory
// and disk stay in step.
func (st *Settings) Replace(app AppSettings, acc Accessibility) error {
	prevApp, prevAcc := st.app, st.accessibility
	st.app, st.accessibility = app, acc
	if err := st.persistApp(); err != nil {
		st.app, st.accessibility = prevApp, prevAcc
		return err
	}
	if err := st.persistAccessibility(); err != nil {
		st.app, st.accessibility = prevApp, prevAcc
		st.persistApp()
		return err
	}
	return nil
}
