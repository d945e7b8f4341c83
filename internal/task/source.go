package task

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Line is one (path, lineNumber, text) triple fed to the parser.
type Line struct {
	Path   string
	Number int // 1-based
	Text   string
}

// Source produces the raw lines of every markdown file under a root.
// The parser is independent of where lines come from, so a source can
// be a direct directory walk or the parsed output of an external
// search tool.
type Source interface {
	Lines(root string) ([]Line, error)
}

// WalkSource reads markdown files via a recursive directory walk.
// Hidden directories (including the version-control dir) are skipped.
type WalkSource struct{}

// Lines walks root and returns every line of every .md file, in file
// order, with vault-relative forward-slash paths.
func (WalkSource) Lines(root string) ([]Line, error) {
	var lines []Line
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for i, text := range strings.Split(string(data), "\n") {
			lines = append(lines, Line{Path: rel, Number: i + 1, Text: text})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ParseGrepLine parses one "path:line:text" record as produced by a
// recursive text search. Returns false for records that do not match
// that shape (blank lines included), which callers skip.
func ParseGrepLine(s string) (Line, bool) {
	if strings.TrimSpace(s) == "" {
		return Line{}, false
	}
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Line{}, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return Line{}, false
	}
	return Line{Path: parts[0], Number: n, Text: parts[2]}, true
}

// ScanGrepOutput reads grep-style output and returns the well-formed
// records. Empty input or zero matches yields an empty result, not an
// error.
func ScanGrepOutput(r io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line, ok := ParseGrepLine(sc.Text()); ok {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan search output: %w", err)
	}
	return lines, nil
}
