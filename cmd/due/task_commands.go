package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/duecli/due/internal/editor"
	"github.com/duecli/due/internal/ui"
	"github.com/duecli/due/task"
)

// due add
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task.

Opens $EDITOR on a TOML form when running interactively and neither a
title nor field flags are given. Use --no-edit to skip the editor, or
--edit to force opening it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addDeadline    string
	addDescription string
	addCategory    string
	addEdit        bool
	addNoEdit      bool
)

// due list
var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List tasks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var (
	listPending bool
	listDone    bool
	listUrgent  bool
	listJSON    bool
)

// due show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

// due done
var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle a task between done and pending",
	Aliases: []string{
		"toggle",
	},
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

// due edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of a task",
	Long: `Edit fields of a task.

Opens $EDITOR on a TOML form prefilled with the current values when
running interactively and no field flags are given. Use --no-edit to
skip the editor, or --edit to force opening it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle       string
	editDescription string
	editDeadline    string
	editCategory    string
	editEdit        bool
	editNoEdit      bool
)

// due rm
var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

var rmYes bool

// due progress
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completion progress",
	Args:  cobra.NoArgs,
	RunE:  runProgress,
}

var progressJSON bool

// due categories
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the allowed categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, showCmd, doneCmd, editCmd, rmCmd, progressCmd, categoriesCmd)
	addTaskFlagAliases(addCmd, editCmd)

	// add flags
	addCmd.Flags().StringVarP(&addDeadline, "deadline", "D", "", "Due date (DD-MM-YYYY)")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category label")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no fields given)")
	addCmd.Flags().BoolVar(&addNoEdit, "no-edit", false, "Do not open $EDITOR")

	// list flags
	listCmd.Flags().BoolVar(&listPending, "pending", false, "Only incomplete tasks not yet close to due")
	listCmd.Flags().BoolVar(&listDone, "done", false, "Only completed tasks")
	listCmd.Flags().BoolVar(&listUrgent, "urgent", false, "Only incomplete tasks due within three days")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	// show flags
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	// edit flags
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editDeadline, "deadline", "D", "", "New due date (DD-MM-YYYY)")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category label")
	editCmd.Flags().BoolVarP(&editEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no field flags)")
	editCmd.Flags().BoolVar(&editNoEdit, "no-edit", false, "Do not open $EDITOR")

	// rm flags
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Delete without confirmation")

	// progress flags
	progressCmd.Flags().BoolVar(&progressJSON, "json", false, "Output as JSON")
}

func shouldUseEditor(hasFields bool, editFlag bool, noEditFlag bool, interactive bool) bool {
	if editFlag {
		return true
	}
	if noEditFlag {
		return false
	}
	if hasFields {
		return false
	}
	return interactive
}

func parseTaskID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", value)
	}
	return id, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	hasFields := len(args) > 0 || hasChangedFlags(cmd, "deadline", "description", "category")
	useEditor := shouldUseEditor(hasFields, addEdit, addNoEdit, editor.IsInteractive())

	store, cfg, err := loadStore()
	if err != nil {
		return err
	}

	if useEditor {
		data := editor.DefaultCreateData(store.Categories())
		if len(args) > 0 {
			data.Title = args[0]
		}
		if cmd.Flags().Changed("deadline") {
			data.Deadline = addDeadline
		}
		if cmd.Flags().Changed("description") {
			data.Description = addDescription
		}
		if cmd.Flags().Changed("category") {
			data.Category = addCategory
		}

		parsed, err := editor.EditTaskWithData(data)
		if err != nil {
			return err
		}

		created, err := store.Create(parsed.Title, parsed.ToCreateOptions())
		if err != nil {
			return err
		}

		fmt.Printf("Created task %s: %s\n", idLabel(created.ID, stdoutColor(cfg)), created.Title)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("title is required (use --edit to open the editor)")
	}

	created, err := store.Create(args[0], task.CreateOptions{
		Description: addDescription,
		Deadline:    addDeadline,
		Category:    addCategory,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created task %s: %s\n", idLabel(created.ID, stdoutColor(cfg)), created.Title)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	store, cfg, err := loadStore()
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	matches := filterMatches(store.Query(query), time.Now(), listPending, listDone, listUrgent)

	if listJSON {
		tasks := make([]task.Task, 0, len(matches))
		for _, m := range matches {
			tasks = append(tasks, m.Task)
		}
		return encodeJSONToStdout(tasks)
	}

	if len(matches) == 0 {
		fmt.Println(emptyListMessage(store.Len(), query, listPending || listDone || listUrgent))
		return nil
	}

	fmt.Print(formatTaskTable(matches, time.Now(), stdoutColor(cfg)))
	return nil
}

// filterMatches narrows matches to the requested urgency states. No
// state flags means no narrowing.
func filterMatches(matches []task.Match, now time.Time, pending, done, urgent bool) []task.Match {
	if !pending && !done && !urgent {
		return matches
	}

	filtered := make([]task.Match, 0, len(matches))
	for _, m := range matches {
		switch m.Task.Urgency(now) {
		case task.UrgencyPending:
			if pending {
				filtered = append(filtered, m)
			}
		case task.UrgencyDone:
			if done {
				filtered = append(filtered, m)
			}
		case task.UrgencyUrgent:
			if urgent {
				filtered = append(filtered, m)
			}
		}
	}
	return filtered
}

func emptyListMessage(total int, query string, stateFiltered bool) string {
	if total == 0 {
		return "No tasks yet. Add one with `due add`."
	}
	if query != "" {
		return fmt.Sprintf("No tasks match %q.", query)
	}
	if stateFiltered {
		return "No tasks in the requested state."
	}
	return "No tasks found."
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	store, cfg, err := loadStore()
	if err != nil {
		return err
	}

	item, err := store.Get(id)
	if err != nil {
		return err
	}

	if showJSON {
		return encodeJSONToStdout(item)
	}

	printTaskDetail(item, time.Now(), stdoutColor(cfg))
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	store, cfg, err := loadStore()
	if err != nil {
		return err
	}

	toggled, err := store.Toggle(id)
	if err != nil {
		return err
	}

	state := "pending"
	if toggled.Completed {
		state = "done"
	}
	fmt.Printf("Marked task %s %s: %s\n", idLabel(toggled.ID, stdoutColor(cfg)), state, toggled.Title)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	store, cfg, err := loadStore()
	if err != nil {
		return err
	}

	hasFlags := hasChangedFlags(cmd, "title", "description", "deadline", "category")
	useEditor := shouldUseEditor(hasFlags, editEdit, editNoEdit, editor.IsInteractive())

	if useEditor {
		existing, err := store.Get(id)
		if err != nil {
			return err
		}

		data := editor.DataFromTask(&existing, store.Categories())
		if cmd.Flags().Changed("title") {
			data.Title = editTitle
		}
		if cmd.Flags().Changed("description") {
			data.Description = editDescription
		}
		if cmd.Flags().Changed("deadline") {
			data.Deadline = editDeadline
		}
		if cmd.Flags().Changed("category") {
			data.Category = editCategory
		}

		parsed, err := editor.EditTaskWithData(data)
		if err != nil {
			return err
		}

		updated, err := store.Edit(id, parsed.ToUpdateOptions())
		if err != nil {
			return err
		}
		if parsed.Completed != nil && *parsed.Completed != updated.Completed {
			updated, err = store.Toggle(id)
			if err != nil {
				return err
			}
		}

		fmt.Printf("Updated task %s: %s\n", idLabel(updated.ID, stdoutColor(cfg)), updated.Title)
		return nil
	}

	if !hasFlags {
		return fmt.Errorf("at least one field flag is required (use --edit to open the editor)")
	}

	opts := task.UpdateOptions{}
	if cmd.Flags().Changed("title") {
		opts.Title = &editTitle
	}
	if cmd.Flags().Changed("description") {
		opts.Description = &editDescription
	}
	if cmd.Flags().Changed("deadline") {
		opts.Deadline = &editDeadline
	}
	if cmd.Flags().Changed("category") {
		opts.Category = &editCategory
	}

	updated, err := store.Edit(id, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Updated task %s: %s\n", idLabel(updated.ID, stdoutColor(cfg)), updated.Title)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	store, cfg, err := loadStore()
	if err != nil {
		return err
	}

	if !rmYes {
		if !editor.IsInteractive() {
			return fmt.Errorf("refusing to delete without confirmation; pass --yes")
		}
		if _, err := store.Get(id); err != nil {
			return err
		}
		ok, err := confirm(os.Stderr, os.Stdin, fmt.Sprintf("delete task %d?", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	removed, err := store.Delete(id)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted task %s: %s\n", idLabel(removed.ID, stdoutColor(cfg)), removed.Title)
	return nil
}

func runProgress(cmd *cobra.Command, args []string) error {
	store, _, err := loadStore()
	if err != nil {
		return err
	}

	p := store.Progress()
	if progressJSON {
		return encodeJSONToStdout(p)
	}

	fmt.Printf("%d tasks: %d done, %d pending\n", p.Total, p.Done, p.Pending)
	fmt.Println(ui.FormatProgress(p))
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	store, _, err := loadStore()
	if err != nil {
		return err
	}

	for i, label := range store.Categories() {
		if i == 0 {
			fmt.Printf("%s (default)\n", label)
			continue
		}
		fmt.Println(label)
	}
	return nil
}
