// Package widget derives the compact "priority goals" view from the task list.
package widget

import (
	"fmt"
	"strings"

	"github.com/arohiabhilasha/FocusFlow/pkg/model"
	"github.com/arohiabhilasha/FocusFlow/pkg/util"
)

const (
	// DisplaySlots is how many rows the widget always shows while work remains.
	DisplaySlots = 5
	// ScrollLimit is how many tasks the scrollable widget list holds.
	ScrollLimit = 10
)

// View is the selected widget content. When AllDone is set, Tasks is empty and
// Placeholders is zero.
type View struct {
	Tasks        []model.Task
	Placeholders int
	AllDone      bool
}

// Slot is one widget row. Placeholder rows carry no task.
type Slot struct {
	Task        *model.Task
	Placeholder bool
}

// Select returns the first limit incomplete tasks in insertion order, padded up
// to DisplaySlots. A non-positive limit means DisplaySlots. The input is not modified.
func Select(tasks []model.Task, limit int) View {
	if limit <= 0 {
		limit = DisplaySlots
	}

	var selected []model.Task
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if len(selected) == limit {
			break
		}
		selected = append(selected, t.Clone())
	}

	if len(selected) == 0 {
		return View{AllDone: true}
	}

	v := View{Tasks: selected}
	if len(selected) < DisplaySlots {
		v.Placeholders = DisplaySlots - len(selected)
	}
	return v
}

// Slots lists the tasks followed by the placeholder rows.
func (v View) Slots() []Slot {
	slots := make([]Slot, 0, len(v.Tasks)+v.Placeholders)
	for i := range v.Tasks {
		t := v.Tasks[i]
		slots = append(slots, Slot{Task: &t})
	}
	for i := 0; i < v.Placeholders; i++ {
		slots = append(slots, Slot{Placeholder: true})
	}
	return slots
}

// Render draws v as plain text for status bars and scripts. Rows are cut to width
// cells; width <= 0 disables cutting.
func Render(v View, width int) string {
	var b strings.Builder
	b.WriteString("Priority Goals\n")
	if v.AllDone {
		b.WriteString("  ✓ All Done\n")
		return b.String()
	}
	for _, slot := range v.Slots() {
		var row string
		if slot.Placeholder {
			row = "  ┄"
		} else {
			row = fmt.Sprintf("  ○ %s", slot.Task.Title)
		}
		if width > 0 {
			row = util.Truncate(row, width)
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}
