// Package components holds small reusable TUI pieces.
package components

import (
	"strings"

	"github.com/notegit/notegit/internal/tui/styles"
)

// StatusBar renders the bottom bar showing sync state and help items.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar string for the given width and items.
// Items are joined with " • " and padded to fill the width.
func (s StatusBar) Render(width int, items []string) string {
	if len(items) == 0 {
		return styles.StatusBarStyle.Width(width).Render("")
	}
	return styles.StatusBarStyle.Width(width).Render(strings.Join(items, " • "))
}
