package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Sessions", []string{"ID", "Status"})
	table.AddRow("S1", "active")

	view := table.View(DefaultStyles())

	if !strings.Contains(view, "Sessions") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "S1") {
		t.Error("view missing cell content")
	}
	if !strings.Contains(view, "active") {
		t.Error("view missing second column")
	}
}

func TestSimpleTableEmpty(t *testing.T) {
	table := NewSimpleTable("Empty", []string{"A"})
	if view := table.View(DefaultStyles()); view != "" {
		t.Fatalf("empty table should render nothing, got %q", view)
	}
}
