package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"studyplan/internal/store"
)

// ToCSV writes the assignment collection to path as a flat table, sorted
// the way the caller passes it in.
func ToCSV(assignments []store.Assignment, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Course", "Title", "Due Date", "Priority", "Completed", "Description"}); err != nil {
		return err
	}

	for _, a := range assignments {
		completed := "no"
		if a.Completed {
			completed = "yes"
		}
		row := []string{
			a.Course,
			a.Title,
			a.DueDate,
			string(a.Priority),
			completed,
			a.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
