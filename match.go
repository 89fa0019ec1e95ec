package grip

import "strings"

// MatchSelector reports whether an element described by name, id, and
// classes matches a selector. Supported syntax is deliberately small:
// "#id", ".class", a bare element name, and comma-separated lists of those.
// An empty selector matches nothing; callers treat empty as "no constraint"
// before getting here.
func MatchSelector(selector, name, id string, classes []string) bool {
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch part[0] {
		case '#':
			if id != "" && id == part[1:] {
				return true
			}
		case '.':
			for _, c := range classes {
				if c == part[1:] {
					return true
				}
			}
		default:
			if name == part {
				return true
			}
		}
	}
	return false
}

// matchesSelectorAndParents walks from node upward through its ancestors,
// testing each against selector. The walk stops successfully on a match and
// fails once boundary has been tested without one.
func matchesSelectorAndParents(node Element, selector string, boundary Element) bool {
	for n := node; n != nil; n = n.Parent() {
		if n.Matches(selector) {
			return true
		}
		if n == boundary {
			return false
		}
	}
	return false
}
