package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/duecli/due/task"
)

// DaysUntil returns the whole calendar days from now's date to the
// deadline's date. Negative for past deadlines. Both times are reduced
// to dates first, so clock-of-day and DST shifts never change the count.
func DaysUntil(deadline, now time.Time) int {
	d := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n) / (24 * time.Hour))
}

// FormatDeadline describes how far away a task's deadline is, like
// "3d left", "today", or "2d overdue". A missing deadline renders as
// "-"; an unparseable one renders as written.
func FormatDeadline(t task.Task, now time.Time) string {
	when, ok := t.DeadlineTime()
	if !ok {
		if strings.TrimSpace(t.Deadline) == "" {
			return "-"
		}
		return t.Deadline
	}

	days := DaysUntil(when, now)
	switch {
	case days < 0:
		return fmt.Sprintf("%dd overdue", -days)
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("%dd left", days)
	}
}
