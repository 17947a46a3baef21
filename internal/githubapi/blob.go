package githubapi

import (
	"encoding/base64"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v68/github"
)

// EncodeBlob builds the get-blob response body (spec.md §4.5): sha, size,
// self url, and base64 content with a trailing newline, matching GitHub's
// git/blobs/:sha shape. go-github's Blob type already models exactly these
// fields, so it is reused verbatim rather than redeclared.
func EncodeBlob(r *http.Request, owner, repo, sha string, content []byte) *gh.Blob {
	encoded := base64.StdEncoding.EncodeToString(content) + "\n"
	return &gh.Blob{
		SHA:      gh.String(sha),
		Size:     gh.Int(len(content)),
		URL:      gh.String(SelfURL(r, fmt.Sprintf("api/repos/%s/%s/git/blobs/%s", owner, repo, sha))),
		Content:  gh.String(encoded),
		Encoding: gh.String("base64"),
	}
}
