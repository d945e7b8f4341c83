package task

import (
	"fmt"
	"strings"
)

// Priority is a tag-derived bucket used for filtering tasks.
type Priority string

// Priority buckets, highest precedence first. PriorityNone doubles as
// "no filter" when listing.
const (
	PriorityNone    Priority = ""
	PriorityP1      Priority = "p1"
	PriorityP2      Priority = "p2"
	PriorityP3      Priority = "p3"
	PriorityNext    Priority = "next"
	PriorityWaiting Priority = "waiting"
	PrioritySomeday Priority = "someday"
)

// precedence is the fixed order in which priorities are checked.
var precedence = []Priority{
	PriorityP1,
	PriorityP2,
	PriorityP3,
	PriorityNext,
	PriorityWaiting,
	PrioritySomeday,
}

// Classify maps a tag set to a single priority bucket. Priorities are
// checked in precedence order; the first one whose name appears as a
// case-sensitive substring of any tag wins, so precedence order beats
// tag order and a hierarchical tag like #next/today still matches
// "next". Returns PriorityNone when no tag matches.
func Classify(tags []string) Priority {
	for _, p := range precedence {
		for _, tag := range tags {
			if strings.Contains(tag, string(p)) {
				return p
			}
		}
	}
	return PriorityNone
}

// ParsePriority validates a user-supplied priority name.
func ParsePriority(s string) (Priority, error) {
	for _, p := range precedence {
		if s == string(p) {
			return p, nil
		}
	}
	return PriorityNone, fmt.Errorf("unknown priority %q (expected one of p1, p2, p3, next, waiting, someday)", s)
}
