// Package task extracts checkbox tasks from a vault of markdown files,
// classifies them by priority tag, and toggles their completion state
// in place.
package task

// Task is a single checkbox line extracted from a markdown file. It is a
// snapshot of the line at scan time, not a live view: any edit that
// inserts or removes lines above it invalidates LineNumber.
type Task struct {
	FilePath   string   // vault-relative path, forward slashes
	LineNumber int      // 1-based line index at scan time
	Content    string   // line text with the checkbox marker stripped, tags retained
	Tags       []string // #-prefixed tokens in order of first appearance
	Priority   Priority
	Completed  bool
}
