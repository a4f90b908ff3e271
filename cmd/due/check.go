package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duecli/due/task"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Verify that a task file is well formed",
	Long: `Verify that a task file is well formed.

Checks the JSON structure against the task schema and rejects duplicate
ids. Without an argument the resolved data file is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err = resolveDataFile(cfg)
		if err != nil {
			return err
		}
	}

	if err := task.VerifyFile(path); err != nil {
		return err
	}

	fmt.Printf("%s: ok\n", path)
	return nil
}
