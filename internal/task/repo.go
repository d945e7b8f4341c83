package task

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrStaleTask reports that a toggle target no longer matches the
// scanned task: the file shrank below the recorded line, or the line
// lost its checkbox marker. The file is left untouched.
var ErrStaleTask = errors.New("task line no longer matches the scanned task")

const (
	markerOpen = "- [ ]"
	markerDone = "- [x]"
)

// Repository lists and mutates checkbox tasks in a vault of markdown
// files rooted at a base path.
type Repository struct {
	root     string
	source   Source
	patterns func() []string
}

// NewRepository creates a repository over the given vault root. The
// patterns func supplies exclusion patterns and is consulted on every
// List call, so configuration changes take effect without a reload.
func NewRepository(root string, patterns func() []string) *Repository {
	return &Repository{
		root:     root,
		source:   WalkSource{},
		patterns: patterns,
	}
}

// WithSource sets a custom line source (useful for testing or for an
// external search tool).
func (r *Repository) WithSource(s Source) *Repository {
	r.source = s
	return r
}

// List scans the vault and returns tasks grouped by file in first-seen
// order, ascending line number within a file.
//
// With PriorityNone (no filter) only incomplete tasks are returned:
// completed tasks are hidden by default. With an explicit priority
// filter, tasks of that priority are returned whether completed or not.
// The asymmetry is deliberate: explicit filtering is privileged.
func (r *Repository) List(filter Priority) ([]Task, error) {
	lines, err := r.source.Lines(r.root)
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}

	var patterns []string
	if r.patterns != nil {
		patterns = r.patterns()
	}

	var tasks []Task
	for _, line := range lines {
		t := ParseLine(line.Path, line.Number, line.Text)
		if t == nil {
			continue
		}
		if IsExcluded(t.FilePath, patterns) {
			continue
		}
		t.Priority = Classify(t.Tags)
		if filter == PriorityNone {
			if t.Completed {
				continue
			}
		} else if t.Priority != filter {
			continue
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

// Find re-reads a single line and returns its task. Returns ErrStaleTask
// if the line is out of bounds, or an error if it is not a task line.
func (r *Repository) Find(path string, lineNumber int) (*Task, error) {
	lines, err := r.readLines(path)
	if err != nil {
		return nil, err
	}
	if lineNumber < 1 || lineNumber > len(lines) {
		return nil, ErrStaleTask
	}
	t := ParseLine(path, lineNumber, lines[lineNumber-1])
	if t == nil {
		return nil, fmt.Errorf("%s:%d is not a task line", path, lineNumber)
	}
	t.Priority = Classify(t.Tags)
	return t, nil
}

// Toggle flips the checkbox marker on the task's line and writes the
// file back, preserving every other byte. It re-reads the file at call
// time so concurrent edits to unrelated lines are not clobbered; the
// rewritten line itself is last-writer-wins. Only the first marker
// occurrence on the line is substituted.
//
// Returns the new completed state. If the recorded line no longer
// exists or carries no matching marker, the file is not modified and
// the original state is returned together with ErrStaleTask.
func (r *Repository) Toggle(t Task) (bool, error) {
	lines, err := r.readLines(t.FilePath)
	if err != nil {
		return t.Completed, err
	}
	if t.LineNumber < 1 || t.LineNumber > len(lines) {
		return t.Completed, ErrStaleTask
	}

	from, to := markerOpen, markerDone
	if t.Completed {
		from, to = markerDone, markerOpen
	}

	line := lines[t.LineNumber-1]
	replaced := strings.Replace(line, from, to, 1)
	if replaced == line {
		return t.Completed, ErrStaleTask
	}
	lines[t.LineNumber-1] = replaced

	full := filepath.Join(r.root, filepath.FromSlash(t.FilePath))
	if err := os.WriteFile(full, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return t.Completed, fmt.Errorf("write %s: %w", t.FilePath, err)
	}
	return !t.Completed, nil
}

// readLines reads a vault file and splits it on "\n". Carriage returns
// stay inside the line text, so CRLF files round-trip byte-for-byte.
func (r *Repository) readLines(path string) ([]string, error) {
	full := filepath.Join(r.root, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Split(string(data), "\n"), nil
}
