package githubapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/localgit/localgit/internal/gitrepo"
)

// commitAuthorRef is the {name,email,date} triple nested in commit.author
// and commit.committer (spec.md §4.5). Declared locally, mirroring
// go-github's CommitAuthor field tags, because the sibling commitUser type
// below needs a GitHub-user shape (avatar_url/gravatar_id) that is a
// distinct concept from this git-identity shape, and go-github models both
// under types this package can't cleanly compose a commit.tree.url onto
// (see commitTreeRef).
type commitAuthorRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// commitTreeRef is commit.tree: {sha, url}.
type commitTreeRef struct {
	SHA string `json:"sha"`
	URL string `json:"url"`
}

type signatureVerification struct {
	Verified  bool   `json:"verified"`
	Reason    string `json:"reason"`
	Signature string `json:"signature"`
	Payload   string `json:"payload"`
}

type commitObject struct {
	Author       commitAuthorRef        `json:"author"`
	Committer    commitAuthorRef        `json:"committer"`
	Message      string                 `json:"message"`
	Tree         commitTreeRef          `json:"tree"`
	URL          string                 `json:"url"`
	CommentCount int                    `json:"comment_count"`
	Verification signatureVerification  `json:"verification"`
}

// commitUser is the GitHub-account-shaped author/committer at the top level
// of the list-commits element, distinct from commitObject's git-identity
// author/committer.
type commitUser struct {
	AvatarURL  string `json:"avatar_url"`
	GravatarID string `json:"gravatar_id"`
}

type commitParentRef struct {
	SHA     string `json:"sha"`
	URL     string `json:"url"`
	HTMLURL string `json:"html_url"`
}

// CommitEntry is one element of the list-commits response body.
type CommitEntry struct {
	SHA         string            `json:"sha"`
	NodeID      string            `json:"node_id"`
	Commit      commitObject      `json:"commit"`
	URL         string            `json:"url"`
	HTMLURL     string            `json:"html_url"`
	CommentsURL string            `json:"comments_url"`
	Author      commitUser        `json:"author"`
	Committer   commitUser        `json:"committer"`
	Parents     []commitParentRef `json:"parents"`
}

// EncodeCommit builds one element of the list-commits response (spec.md
// §4.5). Verification is always reported unsigned ("not implemented"
// placeholders): this server has no way to check a real GPG/SSH commit
// signature.
func EncodeCommit(r *http.Request, owner, repo string, c gitrepo.Commit) CommitEntry {
	selfURL := SelfURL(r, fmt.Sprintf("api/repos/%s/%s/commits/%s", owner, repo, c.SHA))

	parents := make([]commitParentRef, 0, len(c.Parents))
	for _, p := range c.Parents {
		parents = append(parents, commitParentRef{
			SHA:     p,
			URL:     SelfURL(r, fmt.Sprintf("api/repos/%s/%s/commits/%s", owner, repo, p)),
			HTMLURL: SelfURL(r, fmt.Sprintf("%s/%s/commit/%s", owner, repo, p)),
		})
	}

	return CommitEntry{
		SHA:    c.SHA,
		NodeID: "not implemented",
		Commit: commitObject{
			Author:    commitAuthorRef{Name: c.Author.Name, Email: c.Author.Email, Date: isoMillis(c.Author.When)},
			Committer: commitAuthorRef{Name: c.Committer.Name, Email: c.Committer.Email, Date: isoMillis(c.Committer.When)},
			Message:   c.Message,
			Tree: commitTreeRef{
				SHA: c.TreeSHA,
				URL: SelfURL(r, fmt.Sprintf("api/repos/%s/%s/git/trees/%s", owner, repo, c.TreeSHA)),
			},
			URL:          selfURL,
			CommentCount: 0,
			Verification: signatureVerification{
				Verified:  false,
				Reason:    "not implemented",
				Signature: "not implemented",
				Payload:   "not implemented",
			},
		},
		URL:         selfURL,
		HTMLURL:     SelfURL(r, fmt.Sprintf("%s/%s/commit/%s", owner, repo, c.SHA)),
		CommentsURL: SelfURL(r, fmt.Sprintf("api/repos/%s/%s/commits/%s/comments", owner, repo, c.SHA)),
		Author:      commitUser{AvatarURL: GravatarURL(c.Author.Email), GravatarID: ""},
		Committer:   commitUser{AvatarURL: GravatarURL(c.Committer.Email), GravatarID: ""},
		Parents:     parents,
	}
}

// EncodeCommitList applies EncodeCommit across a commit history slice.
func EncodeCommitList(r *http.Request, owner, repo string, commits []gitrepo.Commit) []CommitEntry {
	out := make([]CommitEntry, 0, len(commits))
	for _, c := range commits {
		out = append(out, EncodeCommit(r, owner, repo, c))
	}
	return out
}

// isoMillis renders t as ISO-8601 with millisecond precision, per spec.md
// §4.5's "milliseconds from UNIX seconds×1000" wording.
func isoMillis(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
