package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/duecli/due/internal/config"
	"github.com/duecli/due/internal/ui"
)

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// stdoutColor reports whether stdout output should carry ANSI color
// under the configured mode.
func stdoutColor(cfg *config.Config) bool {
	return ui.ColorEnabled(cfg.UI.Color, os.Stdout)
}

func idLabel(id int, color bool) string {
	return ui.Highlight(strconv.Itoa(id), color)
}

// confirm prompts for a yes/no answer and reports whether the reply was
// affirmative. Empty input means no.
func confirm(w io.Writer, r io.Reader, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
