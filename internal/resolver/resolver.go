package resolver

import (
	"path/filepath"
	"regexp"
)

// VirtualRepo is an explicit owner/repo mount pointing at an arbitrary
// filesystem path, trusted verbatim (spec.md §4.2, §9 "path sanitization
// vs virtual repos").
type VirtualRepo struct {
	Owner string
	Repo  string
	Path  string
}

// Resolver resolves owner/repo pairs to filesystem paths.
type Resolver struct {
	repoRoot string
	virtual  map[string]map[string]string // owner -> repo -> path
}

// New creates a Resolver rooted at repoRoot with the given virtual repo
// overrides.
func New(repoRoot string, virtualRepos []VirtualRepo) *Resolver {
	v := make(map[string]map[string]string, len(virtualRepos))
	for _, vr := range virtualRepos {
		if v[vr.Owner] == nil {
			v[vr.Owner] = make(map[string]string)
		}
		v[vr.Owner][vr.Repo] = vr.Path
	}
	return &Resolver{repoRoot: repoRoot, virtual: v}
}

var unsafeChar = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// sanitize replaces every character outside [A-Za-z0-9_.-] with "-", then
// replaces exact-match "." and ".." with a same-length run of "-" so a
// sanitized segment can never itself mean "this directory" or "parent
// directory" (spec.md §4.2 invariant, §8 "resolver safety").
func sanitize(segment string) string {
	s := unsafeChar.ReplaceAllString(segment, "-")
	switch s {
	case ".":
		return "-"
	case "..":
		return "--"
	default:
		return s
	}
}

// Resolve implements spec.md §4.2: a configured virtual repo is returned
// verbatim; otherwise owner and repo are sanitized independently and
// joined under repoRoot.
func (r *Resolver) Resolve(owner, repo string) string {
	if byRepo, ok := r.virtual[owner]; ok {
		if path, ok := byRepo[repo]; ok {
			return path
		}
	}
	return filepath.Join(r.repoRoot, sanitize(owner), sanitize(repo))
}
