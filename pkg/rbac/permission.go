package rbac

import (
	"slices"
	"strings"
)

const (
	wildcard  = "*"
	delimiter = "."
)

// permissionMatches reports whether granted covers required.
func permissionMatches(required, granted string) bool {
	if required == granted || granted == wildcard {
		return true
	}
	if prefix, ok := strings.CutSuffix(granted, delimiter+wildcard); ok {
		return strings.HasPrefix(required, prefix+delimiter)
	}
	return false
}

func hasPermission(granted []string, required string) bool {
	for _, g := range granted {
		if permissionMatches(required, g) {
			return true
		}
	}
	return false
}

// normalize removes blanks and duplicates and sorts; a global wildcard collapses the set.
func normalize(perms []string) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if p == wildcard {
			return []string{wildcard}
		}
		out = append(out, p)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
