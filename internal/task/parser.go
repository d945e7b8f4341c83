package task

import "regexp"

var (
	// A task line begins, after optional leading whitespace, with
	// "- [ ]" or "- [x]" (single space inside the brackets, lowercase x).
	checkboxRe = regexp.MustCompile(`^\s*- \[( |x)\]`)

	// Tags are a # followed by word characters or /, so hierarchical
	// tags like #project/sub are captured whole.
	tagRe = regexp.MustCompile(`#[\w/]+`)
)

// ParseLine produces a task candidate from one line of text, or nil when
// the line does not match the task grammar. Content is everything after
// the checkbox marker, trimmed of a single leading space; embedded tags
// are retained in the content and also extracted in order of first
// appearance.
func ParseLine(path string, lineNumber int, text string) *Task {
	loc := checkboxRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}

	content := text[loc[1]:]
	if len(content) > 0 && content[0] == ' ' {
		content = content[1:]
	}

	return &Task{
		FilePath:   path,
		LineNumber: lineNumber,
		Content:    content,
		Tags:       tagRe.FindAllString(content, -1),
		Completed:  text[loc[2]:loc[3]] == "x",
	}
}
