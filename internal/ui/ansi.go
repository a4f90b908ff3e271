package ui

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/duecli/due/task"
)

const (
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiReset  = "\x1b[0m"
)

// ColorEnabled reports whether output to f should use ANSI color under
// the given mode: "always", "never", or "auto". Auto requires a
// terminal and honors NO_COLOR and TERM=dumb.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return ansiEnabledFor(f)
}

func ansiEnabledFor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ColorizeUrgency wraps label in the color used for the urgency level:
// bold red for urgent, green for done, yellow otherwise.
func ColorizeUrgency(label string, urgency task.Urgency, enabled bool) string {
	if !enabled {
		return label
	}
	switch urgency {
	case task.UrgencyUrgent:
		return ansiBold + ansiRed + label + ansiReset
	case task.UrgencyDone:
		return ansiGreen + label + ansiReset
	default:
		return ansiYellow + label + ansiReset
	}
}

// Highlight renders label bold cyan when enabled.
func Highlight(label string, enabled bool) string {
	if !enabled {
		return label
	}
	return ansiBold + ansiCyan + label + ansiReset
}

// StripANSI removes ANSI color sequences.
func StripANSI(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
