package store

// slotPalette is the fixed rotation of colors assigned to timetable slots.
var slotPalette = []string{"#3498DB", "#9B59B6", "#FF6B9D", "#2ECC71", "#F39C12", "#2EC4B6"}

// SlotColor returns the palette color for the slot at the given position
// in the collection. Deriving the color from position keeps assignment
// stable across restarts.
func SlotColor(index int) string {
	if index < 0 {
		index = 0
	}
	return slotPalette[index%len(slotPalette)]
}

// SlotPalette returns a copy of the color rotation.
func SlotPalette() []string {
	out := make([]string, len(slotPalette))
	copy(out, slotPalette)
	return out
}
