package main

import (
	"fmt"
	"time"

	"github.com/duecli/due/internal/markdown"
	"github.com/duecli/due/internal/ui"
	"github.com/duecli/due/task"
)

const detailLineWidth = 80

// printTaskDetail prints the full record for one task. The description
// renders as markdown, indented under its own heading.
func printTaskDetail(t task.Task, now time.Time, color bool) {
	urgency := t.Urgency(now)

	fmt.Printf("ID:        %s\n", idLabel(t.ID, color))
	fmt.Printf("Title:     %s\n", t.Title)
	fmt.Printf("Category:  %s\n", t.Category)
	fmt.Printf("Created:   %s\n", t.CreatedDate)
	fmt.Printf("Deadline:  %s\n", formatTableDeadline(t, now))
	fmt.Printf("Completed: %s\n", yesNo(t.Completed))
	fmt.Printf("State:     %s\n", ui.ColorizeUrgency(string(urgency), urgency, color))

	if description := markdown.SafeRender(detailLineWidth, 2, []byte(t.Description)); description != nil {
		fmt.Printf("\nDescription:\n%s\n", description)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
