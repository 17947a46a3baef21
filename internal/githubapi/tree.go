package githubapi

import (
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v68/github"

	"github.com/localgit/localgit/internal/gitrepo"
)

// TreeResponse is the top-level get-tree envelope (spec.md §4.5). go-github
// models tree *entries* (gh.TreeEntry) exactly, but its Tree type is a
// client-side decode target without a top-level self URL field, so the
// envelope is declared locally; entries reuse gh.TreeEntry unchanged.
type TreeResponse struct {
	SHA       *string         `json:"sha,omitempty"`
	URL       *string         `json:"url,omitempty"`
	Tree      []*gh.TreeEntry `json:"tree"`
	Truncated *bool           `json:"truncated,omitempty"`
}

// EncodeTree builds the get-tree response (spec.md §4.5): sha, self url,
// flattened entries (mode is the 6-digit zero-padded octal gitrepo already
// produces), and entry URLs that differentiate blob vs. tree targets.
func EncodeTree(r *http.Request, owner, repo, sha string, entries []gitrepo.TreeEntry) *TreeResponse {
	out := make([]*gh.TreeEntry, 0, len(entries))
	for _, e := range entries {
		entry := &gh.TreeEntry{
			Path: gh.String(e.Path),
			Mode: gh.String(e.Mode),
			Type: gh.String(string(e.Type)),
			SHA:  gh.String(e.SHA),
			URL:  gh.String(entryURL(r, owner, repo, e)),
		}
		if e.Type == gitrepo.ObjectBlob {
			entry.Size = gh.Int(int(e.Size))
		}
		out = append(out, entry)
	}

	return &TreeResponse{
		SHA:       gh.String(sha),
		URL:       gh.String(SelfURL(r, fmt.Sprintf("api/repos/%s/%s/git/trees/%s", owner, repo, sha))),
		Tree:      out,
		Truncated: gh.Bool(false),
	}
}

func entryURL(r *http.Request, owner, repo string, e gitrepo.TreeEntry) string {
	switch e.Type {
	case gitrepo.ObjectTree:
		return SelfURL(r, fmt.Sprintf("api/repos/%s/%s/git/trees/%s", owner, repo, e.SHA))
	default:
		return SelfURL(r, fmt.Sprintf("api/repos/%s/%s/git/blobs/%s", owner, repo, e.SHA))
	}
}
