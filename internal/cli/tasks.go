package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/notegit/notegit/internal/config"
	"github.com/notegit/notegit/internal/task"
	"github.com/spf13/cobra"
)

var listPriority string

func init() {
	tasksListCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority (p1|p2|p3|next|waiting|someday)")
	tasksCmd.AddCommand(tasksListCmd, tasksToggleCmd)
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List and toggle checkbox tasks in the vault",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks grouped by file",
	Long:  `List checkbox tasks across the vault. Without a filter, completed tasks are hidden. With --priority, tasks of that priority are shown whether completed or not.`,
	Args:  cobra.NoArgs,
	RunE:  runTasksList,
}

func runTasksList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(vaultDir)
	if err != nil {
		return err
	}
	if !cfg.ShowTasks {
		return fmt.Errorf("tasks are disabled (showTasks: false in %s)", config.FileName)
	}

	filter := task.PriorityNone
	if listPriority != "" {
		filter, err = task.ParsePriority(listPriority)
		if err != nil {
			return err
		}
	}

	repo := task.NewRepository(vaultDir, cfg.ExcludePatterns)
	tasks, err := repo.List(filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}

	lastFile := ""
	for _, t := range tasks {
		if t.FilePath != lastFile {
			fmt.Fprintln(out, t.FilePath)
			lastFile = t.FilePath
		}
		marker := " "
		if t.Completed {
			marker = "x"
		}
		label := ""
		if t.Priority != task.PriorityNone {
			label = "  (" + string(t.Priority) + ")"
		}
		fmt.Fprintf(out, "  %4d [%s] %s%s\n", t.LineNumber, marker, t.Content, label)
	}
	return nil
}

var tasksToggleCmd = &cobra.Command{
	Use:   "toggle <file> <line>",
	Short: "Toggle the checkbox task at a file and line",
	Args:  cobra.ExactArgs(2),
	RunE:  runTasksToggle,
}

func runTasksToggle(cmd *cobra.Command, args []string) error {
	lineNumber, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid line number %q", args[1])
	}

	cfg, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	repo := task.NewRepository(vaultDir, cfg.ExcludePatterns)
	t, err := repo.Find(args[0], lineNumber)
	if err != nil {
		if errors.Is(err, task.ErrStaleTask) {
			return fmt.Errorf("%s:%d: %w", args[0], lineNumber, err)
		}
		return err
	}

	completed, err := repo.Toggle(*t)
	if err != nil {
		return err
	}

	state := "open"
	if completed {
		state = "done"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s:%d is now %s\n", t.FilePath, t.LineNumber, state)
	return nil
}
