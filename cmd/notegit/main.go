package main

import (
	"fmt"
	"os"

	"github.com/notegit/notegit/internal/cli"
	"github.com/notegit/notegit/internal/tui"
)

func main() {
	// If no args, launch the TUI; otherwise route to the CLI
	if len(os.Args) == 1 {
		if err := tui.Run("."); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
	}
}
