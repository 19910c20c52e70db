package store

import "encoding/json"

const goalsSnapshot = "goals"

// Goals owns the weekly study goal collection.
type Goals struct {
	store *Store
	items []StudyGoal
}

// NewGoals rehydrates the collection from its snapshot.
func NewGoals(s *Store) (*Goals, error) {
	g := &Goals{store: s}
	data, ok, err := s.loadSnapshot(goalsSnapshot)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(data), &g.items); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Goals) persist() error {
	data, err := json.Marshal(g.items)
	if err != nil {
		return err
	}
	return g.store.saveSnapshot(goalsSnapshot, string(data))
}

// All returns the goals in insertion order.
func (g *Goals) All() []StudyGoal {
	out := make([]StudyGoal, len(g.items))
	copy(out, g.items)
	return out
}

func (g *Goals) Len() int {
	return len(g.items)
}

// Add appends a new goal, assigning its id.
func (g *Goals) Add(goal StudyGoal) (StudyGoal, error) {
	goal.ID = newID()
	g.items = append(g.items, goal)
	if err := g.persist(); err != nil {
		g.items = g.items[:len(g.items)-1]
		return StudyGoal{}, err
	}
	return goal, nil
}

// Update merges the non-nil fields of u into the matching goal. A
// completedHours edit is floored at zero. Missing ids are a no-op.
func (g *Goals) Update(id string, u GoalUpdate) error {
	for i := range g.items {
		if g.items[i].ID != id {
			continue
		}
		prev := g.items[i]
		goal := &g.items[i]
		if u.Title != nil {
			goal.Title = *u.Title
		}
		if u.TargetHours != nil {
			goal.TargetHours = *u.TargetHours
		}
		if u.CompletedHours != nil {
			goal.CompletedHours = *u.CompletedHours
			if goal.CompletedHours < 0 {
				goal.CompletedHours = 0
			}
		}
		if u.WeekStartDate != nil {
			goal.WeekStartDate = *u.WeekStartDate
		}
		if u.Description != nil {
			goal.Description = *u.Description
		}
		if u.Completed != nil {
			goal.Completed = *u.Completed
		}
		if err := g.persist(); err != nil {
			g.items[i] = prev
			return err
		}
		return nil
	}
	return nil
}

// AdjustHours moves completedHours by delta, never below zero. The UI
// drives this in ±0.5 and ±1 steps.
func (g *Goals) AdjustHours(id string, delta float64) error {
	for i := range g.items {
		if g.items[i].ID != id {
			continue
		}
		hours := g.items[i].CompletedHours + delta
		if hours < 0 {
			hours = 0
		}
		return g.Update(id, GoalUpdate{CompletedHours: &hours})
	}
	return nil
}

// Delete removes the matching goal; missing ids are a no-op.
func (g *Goals) Delete(id string) error {
	for i := range g.items {
		if g.items[i].ID != id {
			continue
		}
		prev := make([]StudyGoal, len(g.items))
		copy(prev, g.items)
		g.items = append(g.items[:i], g.items[i+1:]...)
		if err := g.persist(); err != nil {
			g.items = prev
			return err
		}
		return nil
	}
	return nil
}

// Clear empties the collection.
func (g *Goals) Clear() error {
	prev := g.items
	g.items = nil
	if err := g.persist(); err != nil {
		g.items = prev
		return err
	}
	return nil
}

// Replace swaps in a whole collection, used by backup restore.
func (g *Goals) Replace(items []StudyGoal) error {
	prev := g.items
	g.items = make([]StudyGoal, len(items))
	copy(g.items, items)
	if err := g.persist(); err != nil {
		g.items = prev
		return err
	}
	return nil
}
