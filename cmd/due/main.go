// Package main implements the due CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duecli/due/internal/config"
	"github.com/duecli/due/internal/paths"
	"github.com/duecli/due/internal/taskenv"
	"github.com/duecli/due/task"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "due",
	Short: "Due - a deadline-first task tracker",
}

var dataFileFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&dataFileFlag, "file", "", "Task data file (overrides config and DUE_FILE)")
}

// loadConfig merges the global config file with the working directory's
// due.toml.
func loadConfig() (*config.Config, error) {
	dir, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(dir)
}

// resolveDataFile picks the task file location: the --file flag wins,
// then the DUE_FILE environment variable, then config data_file, then
// the default under the home directory.
func resolveDataFile(cfg *config.Config) (string, error) {
	if dataFileFlag != "" {
		return dataFileFlag, nil
	}
	if path, ok := taskenv.DataFile(); ok {
		return path, nil
	}
	return paths.ResolveWithDefault(cfg.DataFile, paths.DefaultDataFile)
}

// openStore loads the task store for the resolved data file. A corrupt
// file prints one warning to stderr and yields an empty store rather
// than aborting, so every command keeps working.
func openStore(cfg *config.Config) (*task.Store, error) {
	path, err := resolveDataFile(cfg)
	if err != nil {
		return nil, err
	}

	store, err := task.OpenWithCategories(path, cfg.CategorySet())
	if err != nil {
		if !errors.Is(err, task.ErrCorruptFile) {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "warning: %v; continuing with an empty task list\n", err)
	}
	return store, nil
}

// loadStore resolves config and store together, the common preamble of
// every task command.
func loadStore() (*task.Store, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}
