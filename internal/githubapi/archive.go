package githubapi

import (
	"fmt"
	"net/http"
)

// ArchiveRedirectLocation builds the Location header for the archive-link
// endpoints (spec.md §4.5): a same-scheme/host redirect into the codeload
// route, which streams the actual archive bytes (§4.7).
func ArchiveRedirectLocation(r *http.Request, owner, repo, format, ref string) string {
	return SelfURL(r, fmt.Sprintf("codeload/%s/%s/%s/%s", owner, repo, format, ref))
}
