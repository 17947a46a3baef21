package refparser

import (
	"strings"

	"github.com/localgit/localgit/internal/gitrepo"
)

// Split implements spec.md §4.3: enumerate local branch and tag names,
// find every ref R such that s begins with R+"/", and return the longest
// such R along with the remaining path. If no ref matches, ok is false and
// the caller should treat the first slash-delimited token of s as a
// plausible SHA.
func Split(repo gitrepo.Repository, s string) (ref, path string, ok bool) {
	candidates := candidateRefs(repo)

	best := ""
	for _, name := range candidates {
		prefix := name + "/"
		if strings.HasPrefix(s, prefix) && len(name) > len(best) {
			best = name
		}
	}

	if best == "" {
		return "", "", false
	}
	return best, s[len(best)+1:], true
}

func candidateRefs(repo gitrepo.Repository) []string {
	var names []string
	if branches, err := repo.Branches(); err == nil {
		for _, b := range branches {
			names = append(names, b.Name)
		}
	}
	if tags, err := repo.Tags(); err == nil {
		for _, t := range tags {
			names = append(names, t.Name)
		}
	}
	return names
}

// FirstSegment returns the first "/"-delimited token of s, the plausible
// SHA a caller should try when Split finds no matching ref.
func FirstSegment(s string) string {
	if idx := strings.Index(s, "/"); idx >= 0 {
		return s[:idx]
	}
	return s
}
