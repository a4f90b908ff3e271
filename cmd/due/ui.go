package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duecli/due/internal/editor"
	"github.com/duecli/due/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task browser",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	if !editor.IsInteractive() {
		return fmt.Errorf("due ui requires a terminal")
	}

	store, _, err := loadStore()
	if err != nil {
		return err
	}
	return tui.Run(store)
}
