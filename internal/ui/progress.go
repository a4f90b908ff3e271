package ui

import (
	"fmt"
	"strings"

	"github.com/duecli/due/task"
)

const progressBarWidth = 20

// FormatProgress renders a completion summary with a textual bar:
//
//	[##########----------] 50% (2/4 done)
func FormatProgress(p task.Progress) string {
	filled := 0
	if p.Total > 0 {
		filled = progressBarWidth * p.Done / p.Total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled)
	return fmt.Sprintf("[%s] %d%% (%d/%d done)", bar, p.Percent, p.Done, p.Total)
}
