package taskwarrior

import "strings"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusWaiting   = "waiting"
	StatusDeleted   = "deleted"
)

type Annotation struct {
	Description string `json:"description"`
}

// Task holds the fields of a Taskwarrior export that map onto a FocusFlow task.
// Dates and UDAs are ignored.
type Task struct {
	UUID        string       `json:"uuid"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Project     string       `json:"project,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Open reports whether the task still needs doing. Waiting tasks count as open.
func (t Task) Open() bool {
	return t.Status == StatusPending || t.Status == StatusWaiting
}

// Notes joins the annotations, one per line.
func (t Task) Notes() string {
	notes := make([]string, 0, len(t.Annotations))
	for _, a := range t.Annotations {
		if s := strings.TrimSpace(a.Description); s != "" {
			notes = append(notes, s)
		}
	}
	return strings.Join(notes, "\n")
}
