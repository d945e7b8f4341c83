package task

import (
	"regexp"
	"strings"
)

// IsExcluded reports whether path matches any of the exclusion patterns.
// Paths are normalized by stripping a leading "./". A pattern containing
// "*" is compiled to an anchored regexp with each "*" matching any run
// of characters; other regexp metacharacters are NOT escaped, a known
// limitation kept for compatibility with existing pattern configs. A
// plain pattern matches the whole path, a "/"-separated path suffix, or
// a bare trailing substring (so a basename alone matches). Matching is
// case-sensitive. Pure function; a pattern that fails to compile simply
// never matches.
func IsExcluded(path string, patterns []string) bool {
	path = strings.TrimPrefix(path, "./")
	for _, pattern := range patterns {
		if matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

func matchPattern(path, pattern string) bool {
	if strings.Contains(pattern, "*") {
		re, err := regexp.Compile("^" + strings.ReplaceAll(pattern, "*", ".*") + "$")
		if err != nil {
			return false
		}
		return re.MatchString(path)
	}
	return path == pattern ||
		strings.HasSuffix(path, "/"+pattern) ||
		strings.HasSuffix(path, pattern)
}
