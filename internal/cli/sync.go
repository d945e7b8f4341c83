package cli

import (
	"fmt"

	"github.com/notegit/notegit/internal/config"
	"github.com/notegit/notegit/internal/git"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the external sync command",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	gateway := git.NewGateway(vaultDir, cfg.StatusArgv(), cfg.SyncArgv(), cfg.CommandTimeout())
	if err := gateway.Sync(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Sync completed.")
	return nil
}
