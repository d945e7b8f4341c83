package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/notegit/notegit/internal/config"
	"github.com/notegit/notegit/internal/git"
	"github.com/notegit/notegit/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and keep the sync status fresh",
	Long:  `Watch the vault for markdown changes and refresh the working tree status through the debounced poller. Runs until interrupted; with autoSyncOnClose set, a sync runs on the way out.`,
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(vaultDir)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gateway := git.NewGateway(vaultDir, cfg.StatusArgv(), cfg.SyncArgv(), cfg.CommandTimeout())
	poller := git.NewPoller(gateway, cfg.DebounceWindow())
	defer poller.Close()

	watcher, err := watch.NewWatcher(poller.RefreshDebounced)
	if err != nil {
		return err
	}
	if err := watcher.WatchRecursive(vaultDir); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (ctrl-c to stop)\n", vaultDir)

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// Cancel the pending debounce timer before any teardown work so no
	// refresh fires into a closed watcher.
	poller.Close()

	if cfg.AutoSyncOnClose {
		fmt.Fprintln(out, "Syncing before exit...")
		syncCtx, syncCancel := context.WithTimeout(context.Background(), cfg.CommandTimeout())
		defer syncCancel()
		if err := gateway.Sync(syncCtx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: sync on close failed: %v\n", err)
		}
	}
	return nil
}
