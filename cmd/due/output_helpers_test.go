package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "upper y", input: "Y\n", want: true},
		{name: "yes", input: "yes\n", want: true},
		{name: "n", input: "n\n", want: false},
		{name: "empty line", input: "\n", want: false},
		{name: "eof", input: "", want: false},
		{name: "garbage", input: "maybe\n", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := confirm(&prompt, strings.NewReader(tc.input), "delete task 3?")
			if err != nil {
				t.Fatalf("confirm failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if !strings.Contains(prompt.String(), "delete task 3? [y/N]") {
				t.Fatalf("expected prompt with [y/N], got %q", prompt.String())
			}
		})
	}
}

func TestIDLabel(t *testing.T) {
	if got := idLabel(3, false); got != "3" {
		t.Fatalf("expected plain id, got %q", got)
	}

	colored := idLabel(3, true)
	if !strings.Contains(colored, "3") || !strings.Contains(colored, "\x1b[") {
		t.Fatalf("expected colored id, got %q", colored)
	}
}
