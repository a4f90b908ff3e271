package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestTaskFlagAliasesUseSingleFlags(t *testing.T) {
	var description, category string
	cmd := &cobra.Command{Use: "example"}
	addTaskFlagAliases(cmd)
	cmd.Flags().StringVarP(&description, "description", "d", "", "Example description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Example category")

	if err := cmd.Flags().Set("desc", "Hello"); err != nil {
		t.Fatalf("set desc alias: %v", err)
	}
	if description != "Hello" {
		t.Fatalf("expected description to be set via alias, got %q", description)
	}
	if !cmd.Flags().Changed("description") {
		t.Fatal("expected description flag to be marked as changed")
	}

	if err := cmd.Flags().Set("cat", "Work"); err != nil {
		t.Fatalf("set cat alias: %v", err)
	}
	if category != "Work" {
		t.Fatalf("expected category to be set via alias, got %q", category)
	}

	usage := cmd.Flags().FlagUsages()
	if strings.Contains(usage, "--desc ") || strings.Contains(usage, "--cat ") {
		t.Fatalf("did not expect aliases to appear in usage, got %q", usage)
	}
	if !strings.Contains(usage, "-d, --description") {
		t.Fatalf("expected shorthand to appear inline, got %q", usage)
	}
}
