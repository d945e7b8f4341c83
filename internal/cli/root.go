// Package cli wires the notegit commands. Commands are thin: they load
// configuration, construct the repository or poller, and print results.
package cli

import (
	"github.com/notegit/notegit/internal/version"
	"github.com/spf13/cobra"
)

var vaultDir string

var rootCmd = &cobra.Command{
	Use:     "notegit",
	Short:   "Task tracking and sync status for a markdown vault",
	Long:    `Notegit scans a vault of markdown files for checkbox tasks, classifies them by priority tag, and keeps a debounced view of the working tree's sync status.`,
	Version: version.String(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultDir, "vault", ".", "Path to the vault root")
	rootCmd.AddCommand(tasksCmd, statusCmd, syncCmd, watchCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
