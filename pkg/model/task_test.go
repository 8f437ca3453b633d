package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTaskUnmarshalStoredShape(t *testing.T) {
	input := `{
		"id": "k3j9x2a1b",
		"title": "Buy milk",
		"completed": true,
		"createdAt": 1718000000123,
		"category": "health"
	}`

	var task Task
	if err := json.NewDecoder(strings.NewReader(input)).Decode(&task); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if task.ID != "k3j9x2a1b" {
		t.Errorf("Expected ID k3j9x2a1b, got %s", task.ID)
	}
	if task.Title != "Buy milk" {
		t.Errorf("Expected Title 'Buy milk', got '%s'", task.Title)
	}
	if !task.Completed {
		t.Error("Expected Completed to be true")
	}
	if task.HasDescription() {
		t.Errorf("Expected no description, got %q", task.DescriptionText())
	}
	if task.Category == nil || *task.Category != CategoryHealth {
		t.Errorf("Expected category health, got %v", task.Category)
	}
	if got := task.CreatedAt.UnixMilli(); got != 1718000000123 {
		t.Errorf("Expected createdAt 1718000000123, got %d", got)
	}
}

func TestTaskEmptyDescriptionSurvivesMarshal(t *testing.T) {
	empty := ""
	task := Task{ID: "a", Title: "A", Description: &empty, CreatedAt: NewMillis(time.Now())}

	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(b), `"description":""`) {
		t.Fatalf("Expected empty description to be written, got %s", b)
	}

	var back Task
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.HasDescription() || back.DescriptionText() != "" {
		t.Errorf("Expected present-but-empty description, got %v", back.Description)
	}
}

func TestMillisFractional(t *testing.T) {
	var m Millis
	if err := m.UnmarshalJSON([]byte("1718000000123.6")); err != nil {
		t.Fatalf("UnmarshalJSON failed: %v", err)
	}
	if m.UnixMilli() != 1718000000123 {
		t.Errorf("Expected 1718000000123, got %d", m.UnixMilli())
	}
}

func TestNormalizeTitle(t *testing.T) {
	if _, ok := NormalizeTitle("   "); ok {
		t.Error("Expected whitespace-only title to be rejected")
	}
	if title, ok := NormalizeTitle("  Stretch \n"); !ok || title != "Stretch" {
		t.Errorf("Expected 'Stretch', got %q (ok=%v)", title, ok)
	}
}

func TestCloneDoesNotShareDescription(t *testing.T) {
	d := "notes"
	orig := Task{ID: "a", Description: &d}
	c := orig.Clone()
	*c.Description = "changed"
	if *orig.Description != "notes" {
		t.Errorf("Expected original description untouched, got %q", *orig.Description)
	}
}
