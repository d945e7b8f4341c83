package cli

import (
	"fmt"

	"github.com/notegit/notegit/internal/config"
	"github.com/notegit/notegit/internal/git"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the working tree status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	gateway := git.NewGateway(vaultDir, cfg.StatusArgv(), cfg.SyncArgv(), cfg.CommandTimeout())
	poller := git.NewPoller(gateway, cfg.DebounceWindow())
	defer poller.Close()

	status, err := poller.Refresh(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Branch: %s\n", status.Branch)
	if status.Clean {
		fmt.Fprintln(out, "Working tree clean")
		return nil
	}
	fmt.Fprintf(out, "%d uncommitted change(s)\n", status.ChangeCount)
	for _, f := range status.ChangedFiles {
		fmt.Fprintf(out, "  %-8s %s\n", f.Kind, f.Path)
	}
	return nil
}
