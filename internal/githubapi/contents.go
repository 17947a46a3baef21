package githubapi

import (
	"encoding/base64"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v68/github"

	"github.com/localgit/localgit/internal/gitrepo"
)

// EncodeContentsFile builds the single-object get-contents response for a
// file (spec.md §4.5): type "file" with base64 content and the self/git/html
// link triple. go-github's RepositoryContent models every field the GitHub
// contents API returns, including _links via RepositoryContentLinks, so it
// is reused unchanged.
func EncodeContentsFile(r *http.Request, owner, repo, path, sha string, content []byte) *gh.RepositoryContent {
	name := path
	if idx := lastSlash(path); idx >= 0 {
		name = path[idx+1:]
	}

	selfURL := SelfURL(r, fmt.Sprintf("api/repos/%s/%s/contents/%s", owner, repo, path))
	gitURL := SelfURL(r, fmt.Sprintf("api/repos/%s/%s/git/blobs/%s", owner, repo, sha))
	htmlURL := SelfURL(r, fmt.Sprintf("%s/%s/blob/master/%s", owner, repo, path))
	downloadURL := SelfURL(r, fmt.Sprintf("%s/%s/raw/master/%s", owner, repo, path))

	return &gh.RepositoryContent{
		Type:        gh.String("file"),
		Encoding:    gh.String("base64"),
		Size:        gh.Int(len(content)),
		Name:        gh.String(name),
		Path:        gh.String(path),
		Content:     gh.String(base64.StdEncoding.EncodeToString(content) + "\n"),
		SHA:         gh.String(sha),
		URL:         gh.String(selfURL),
		GitURL:      gh.String(gitURL),
		HTMLURL:     gh.String(htmlURL),
		DownloadURL: gh.String(downloadURL),
		Links: &gh.RepositoryContentLinks{
			Self: gh.String(selfURL),
			Git:  gh.String(gitURL),
			HTML: gh.String(htmlURL),
		},
	}
}

// EncodeContentsDir builds the array response for a directory listing
// (spec.md §4.5): file entries omit content/encoding; directory entries set
// type "dir", size 0, and a nil download_url.
func EncodeContentsDir(r *http.Request, owner, repo string, entries []gitrepo.TreeEntry) []*gh.RepositoryContent {
	out := make([]*gh.RepositoryContent, 0, len(entries))
	for _, e := range entries {
		selfURL := SelfURL(r, fmt.Sprintf("api/repos/%s/%s/contents/%s", owner, repo, e.Path))
		gitURL := SelfURL(r, fmt.Sprintf("api/repos/%s/%s/git/%ss/%s", owner, repo, e.Type, e.SHA))
		htmlURL := SelfURL(r, fmt.Sprintf("%s/%s/tree/master/%s", owner, repo, e.Path))

		entry := &gh.RepositoryContent{
			Name:    gh.String(e.Name),
			Path:    gh.String(e.Path),
			SHA:     gh.String(e.SHA),
			URL:     gh.String(selfURL),
			GitURL:  gh.String(gitURL),
			HTMLURL: gh.String(htmlURL),
			Links: &gh.RepositoryContentLinks{
				Self: gh.String(selfURL),
				Git:  gh.String(gitURL),
				HTML: gh.String(htmlURL),
			},
		}

		if e.Type == gitrepo.ObjectTree {
			entry.Type = gh.String("dir")
			entry.Size = gh.Int(0)
			entry.DownloadURL = nil
		} else {
			entry.Type = gh.String("file")
			entry.Size = gh.Int(int(e.Size))
			entry.DownloadURL = gh.String(SelfURL(r, fmt.Sprintf("%s/%s/raw/master/%s", owner, repo, e.Path)))
		}

		out = append(out, entry)
	}
	return out
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
