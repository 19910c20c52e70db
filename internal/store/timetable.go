package store

import "encoding/json"

const timetableSnapshot = "timetable"

// Timetable owns the weekly class slots. The in-memory slice is the
// source of truth; every mutation rewrites the full collection to the
// timetable snapshot.
type Timetable struct {
	store *Store
	slots []TimeSlot
}

// NewTimetable rehydrates the timetable from its snapshot, starting empty
// when none exists.
func NewTimetable(s *Store) (*Timetable, error) {
	t := &Timetable{store: s}
	data, ok, err := s.loadSnapshot(timetableSnapshot)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(data), &t.slots); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Timetable) persist() error {
	data, err := json.Marshal(t.slots)
	if err != nil {
		return err
	}
	return t.store.saveSnapshot(timetableSnapshot, string(data))
}

// Slots returns the slots in insertion order.
func (t *Timetable) Slots() []TimeSlot {
	out := make([]TimeSlot, len(t.slots))
	copy(out, t.slots)
	return out
}

func (t *Timetable) Len() int {
	return len(t.slots)
}

// AddSlot appends a new slot, assigning its id and, when the caller left
// it blank, a palette color derived from its position.
func (t *Timetable) AddSlot(slot TimeSlot) (TimeSlot, error) {
	slot.ID = newID()
	if slot.Color == "" {
		slot.Color = SlotColor(len(t.slots))
	}
	t.slots = append(t.slots, slot)
	if err := t.persist(); err != nil {
		t.slots = t.slots[:len(t.slots)-1]
		return TimeSlot{}, err
	}
	return slot, nil
}

// UpdateSlot merges the non-nil fields of u into the slot with the given
// id. A missing id is a no-op by contract, not an error.
func (t *Timetable) UpdateSlot(id string, u SlotUpdate) error {
	for i := range t.slots {
		if t.slots[i].ID != id {
			continue
		}
		prev := t.slots[i]
		s := &t.slots[i]
		if u.CourseName != nil {
			s.CourseName = *u.CourseName
		}
		if u.Lecturer != nil {
			s.Lecturer = *u.Lecturer
		}
		if u.Day != nil {
			s.Day = *u.Day
		}
		if u.StartTime != nil {
			s.StartTime = *u.StartTime
		}
		if u.EndTime != nil {
			s.EndTime = *u.EndTime
		}
		if u.Color != nil {
			s.Color = *u.Color
		}
		if err := t.persist(); err != nil {
			t.slots[i] = prev
			return err
		}
		return nil
	}
	return nil
}

// DeleteSlot removes the slot with the given id; missing ids are a no-op.
func (t *Timetable) DeleteSlot(id string) error {
	for i := range t.slots {
		if t.slots[i].ID != id {
			continue
		}
		prev := make([]TimeSlot, len(t.slots))
		copy(prev, t.slots)
		t.slots = append(t.slots[:i], t.slots[i+1:]...)
		if err := t.persist(); err != nil {
			t.slots = prev
			return err
		}
		return nil
	}
	return nil
}

// ClearAll wipes the whole timetable. Irreversible once persisted.
func (t *Timetable) ClearAll() error {
	prev := t.slots
	t.slots = nil
	if err := t.persist(); err != nil {
		t.slots = prev
		return err
	}
	return nil
}

// Replace swaps in a whole collection, used by backup restore.
func (t *Timetable) Replace(slots []TimeSlot) error {
	prev := t.slots
	t.slots = make([]TimeSlot, len(slots))
	copy(t.slots, slots)
	if err := t.persist(); err != nil {
		t.slots = prev
		return err
	}
	return nil
}
