package git

import (
	"regexp"
	"strconv"
	"strings"
)

// ChangeKind classifies one dirty file entry.
type ChangeKind string

const (
	ChangeModified ChangeKind = "modified"
	ChangeNew      ChangeKind = "new"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRenamed  ChangeKind = "renamed"
	ChangeUnknown  ChangeKind = "unknown"
)

// changeKinds is the fixed status-code table. Codes outside the table
// map to ChangeUnknown with the raw code passed through as the label.
var changeKinds = map[string]ChangeKind{
	"M":  ChangeModified,
	"A":  ChangeNew,
	"??": ChangeNew,
	"D":  ChangeDeleted,
	"R":  ChangeRenamed,
}

// ChangedFile is one (status, path) entry from the status output.
type ChangedFile struct {
	Kind ChangeKind
	Code string // raw status letters as reported by the tool
	Path string
}

// Status is one parsed snapshot of the working tree. A new snapshot is
// created on every successful poll; a failed poll produces none.
type Status struct {
	Branch       string
	ChangeCount  int
	Clean        bool
	ChangedFiles []ChangedFile
}

var (
	fileLineRe = regexp.MustCompile(`^([MADR?]{1,2})\s+(.+)$`)
	intRe      = regexp.MustCompile(`\d+`)
)

// ParseStatus parses the external status command's output. The line
// grammar is fixed: "Branch: <name>" gives the branch (or "unknown"
// when absent), a line containing "Uncommitted" contributes its first
// embedded integer as the change count, the literal "Working tree
// clean" marks the tree clean, and "<status letters><ws><path>" lines
// with letters drawn from M, A, D, R, ? are dirty file entries, in
// output order.
func ParseStatus(output string) Status {
	status := Status{Branch: "unknown"}

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "Branch: "):
			status.Branch = strings.TrimSpace(strings.TrimPrefix(line, "Branch: "))
		case strings.Contains(line, "Uncommitted"):
			if digits := intRe.FindString(line); digits != "" {
				if n, err := strconv.Atoi(digits); err == nil {
					status.ChangeCount = n
				}
			}
		case strings.Contains(line, "Working tree clean"):
			status.Clean = true
		default:
			m := fileLineRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			kind, ok := changeKinds[m[1]]
			if !ok {
				kind = ChangeUnknown
			}
			status.ChangedFiles = append(status.ChangedFiles, ChangedFile{
				Kind: kind,
				Code: m[1],
				Path: m[2],
			})
		}
	}
	return status
}
