package httpserver

import (
	"net/http"
	"strings"

	"github.com/localgit/localgit/internal/gitrepo"
	"github.com/localgit/localgit/internal/refparser"
)

// openRequestRepo resolves owner/repo to an on-disk path (spec.md §4.2) and
// opens it, returning openRepo's error unchanged when the path holds no
// repository.
func (h *handle) openRequestRepo(owner, repo string) (gitrepo.Repository, error) {
	path := h.resolver.Resolve(owner, repo)
	return h.openRepo(path)
}

// splitRefAndPath applies spec.md §4.3 to rest (the "*" wildcard tail after
// /:owner/:repo/ in the raw route): the longest matching
// branch/tag name is the ref, everything after is the path. When no ref
// matches, the first "/"-delimited token is treated as a plausible SHA
// instead.
func splitRefAndPath(repo gitrepo.Repository, rest string) (ref, path string) {
	rest = strings.TrimPrefix(rest, "/")
	if ref, path, ok := refparser.Split(repo, rest); ok {
		return ref, path
	}
	first := refparser.FirstSegment(rest)
	return first, strings.TrimPrefix(rest[len(first):], "/")
}

func normalizePath(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return strings.TrimPrefix(p, "/")
}

func writeNotFoundPlain(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(message))
}
