package model

import (
	"strconv"
	"strings"
	"time"
)

// Category is a reserved tag carried on stored tasks. Nothing reads or sets it yet.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryGrowth   Category = "growth"
)

// Millis is a timestamp stored as Unix milliseconds.
type Millis struct {
	time.Time
}

// NewMillis truncates t to millisecond precision so it survives a storage round trip.
func NewMillis(t time.Time) Millis {
	return Millis{Time: time.UnixMilli(t.UnixMilli())}
}

// UnmarshalJSON implements the json.Unmarshaler interface for Millis.
func (m *Millis) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "0" {
		m.Time = time.Time{}
		return nil
	}
	// Some writers emit fractional milliseconds.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	m.Time = time.UnixMilli(int64(f))
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Millis.
func (m Millis) MarshalJSON() ([]byte, error) {
	if m.Time.IsZero() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(m.Time.UnixMilli(), 10)), nil
}

// Task is one daily goal. A nil Description means none was ever set, which is
// different from a description the user cleared to "".
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   Millis    `json:"createdAt"`
	Category    *Category `json:"category,omitempty"`
}

// HasDescription reports whether a description was ever set, even to "".
func (t Task) HasDescription() bool {
	return t.Description != nil
}

// DescriptionText returns the description or "" when none was set.
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	c := t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.Category != nil {
		cat := *t.Category
		c.Category = &cat
	}
	return c
}

// NormalizeTitle trims s and reports whether the result may be used as a title.
func NormalizeTitle(s string) (string, bool) {
	title := strings.TrimSpace(s)
	return title, title != ""
}
