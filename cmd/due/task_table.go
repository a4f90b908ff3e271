package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/duecli/due/internal/ui"
	"github.com/duecli/due/task"
)

// formatTaskTable renders matches as the list table. Deadlines carry
// their relative distance and the urgency column is colored when color
// is on.
func formatTaskTable(matches []task.Match, now time.Time, color bool) string {
	table := ui.NewTable("ID", "DONE", "TITLE", "CATEGORY", "DEADLINE", "URGENCY")
	for _, m := range matches {
		t := m.Task
		urgency := t.Urgency(now)
		table.AddRow(
			ui.Highlight(strconv.Itoa(t.ID), color),
			doneMarker(t.Completed),
			ui.TruncateCell(t.Title, 0),
			t.Category,
			formatTableDeadline(t, now),
			ui.ColorizeUrgency(string(urgency), urgency, color),
		)
	}
	return table.String()
}

func doneMarker(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// formatTableDeadline shows the stored date plus its relative distance,
// like "28-08-2026 (3d left)". An unparseable deadline prints as
// written, a missing one as "-".
func formatTableDeadline(t task.Task, now time.Time) string {
	if _, ok := t.DeadlineTime(); !ok {
		if strings.TrimSpace(t.Deadline) == "" {
			return "-"
		}
		return t.Deadline
	}
	return fmt.Sprintf("%s (%s)", t.Deadline, ui.FormatDeadline(t, now))
}
