package store

import "encoding/json"

const assignmentsSnapshot = "assignments"

// Assignments owns the assignment tracker collection.
type Assignments struct {
	store *Store
	items []Assignment
}

// NewAssignments rehydrates the collection from its snapshot.
func NewAssignments(s *Store) (*Assignments, error) {
	a := &Assignments{store: s}
	data, ok, err := s.loadSnapshot(assignmentsSnapshot)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(data), &a.items); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Assignments) persist() error {
	data, err := json.Marshal(a.items)
	if err != nil {
		return err
	}
	return a.store.saveSnapshot(assignmentsSnapshot, string(data))
}

// All returns the assignments in insertion order.
func (a *Assignments) All() []Assignment {
	out := make([]Assignment, len(a.items))
	copy(out, a.items)
	return out
}

func (a *Assignments) Len() int {
	return len(a.items)
}

// Add appends a new assignment, assigning its id.
func (a *Assignments) Add(item Assignment) (Assignment, error) {
	item.ID = newID()
	a.items = append(a.items, item)
	if err := a.persist(); err != nil {
		a.items = a.items[:len(a.items)-1]
		return Assignment{}, err
	}
	return item, nil
}

// Update merges the non-nil fields of u into the matching assignment.
// A missing id is a no-op by contract.
func (a *Assignments) Update(id string, u AssignmentUpdate) error {
	for i := range a.items {
		if a.items[i].ID != id {
			continue
		}
		prev := a.items[i]
		it := &a.items[i]
		if u.Course != nil {
			it.Course = *u.Course
		}
		if u.Title != nil {
			it.Title = *u.Title
		}
		if u.DueDate != nil {
			it.DueDate = *u.DueDate
		}
		if u.Priority != nil {
			it.Priority = *u.Priority
		}
		if u.Completed != nil {
			it.Completed = *u.Completed
		}
		if u.Description != nil {
			it.Description = *u.Description
		}
		if err := a.persist(); err != nil {
			a.items[i] = prev
			return err
		}
		return nil
	}
	return nil
}

// Delete removes the matching assignment; missing ids are a no-op.
func (a *Assignments) Delete(id string) error {
	for i := range a.items {
		if a.items[i].ID != id {
			continue
		}
		prev := make([]Assignment, len(a.items))
		copy(prev, a.items)
		a.items = append(a.items[:i], a.items[i+1:]...)
		if err := a.persist(); err != nil {
			a.items = prev
			return err
		}
		return nil
	}
	return nil
}

// Clear empties the collection.
func (a *Assignments) Clear() error {
	prev := a.items
	a.items = nil
	if err := a.persist(); err != nil {
		a.items = prev
		return err
	}
	return nil
}

// Replace swaps in a whole collection, used by backup restore.
func (a *Assignments) Replace(items []Assignment) error {
	prev := a.items
	a.items = make([]Assignment, len(items))
	copy(a.items, items)
	if err := a.persist(); err != nil {
		a.items = prev
		return err
	}
	return nil
}
