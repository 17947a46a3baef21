package githubapi_test

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/localgit/localgit/internal/githubapi"
	"github.com/localgit/localgit/internal/gitrepo"
	"github.com/localgit/localgit/internal/testutil"
)

func TestEncodeBlobRoundTrip(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/api/repos/o/r/git/blobs/abc", nil)
	body := githubapi.EncodeBlob(r, "o", "r", "abc123", []byte("hello"))

	require.Equal(t, "abc123", body.GetSHA())
	require.Equal(t, 5, body.GetSize())
	decoded, err := base64.StdEncoding.DecodeString(body.GetContent()[:len(body.GetContent())-1])
	require.NoError(t, err)
	require.Equal(t, "hello", string(decoded))
	require.Contains(t, body.GetURL(), "/api/repos/o/r/git/blobs/abc123")
}

func TestEncodeTreeDifferentiatesBlobAndTreeURLs(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	entries := []gitrepo.TreeEntry{
		{Name: "a.txt", Path: "a.txt", Mode: "100644", Type: gitrepo.ObjectBlob, SHA: "aaaa", Size: 3},
		{Name: "sub", Path: "sub", Mode: "040000", Type: gitrepo.ObjectTree, SHA: "bbbb"},
	}
	tree := githubapi.EncodeTree(r, "o", "r", "root-sha", entries)

	require.Equal(t, "root-sha", *tree.SHA)
	require.Len(t, tree.Tree, 2)
	require.Contains(t, *tree.Tree[0].URL, "git/blobs/aaaa")
	require.Contains(t, *tree.Tree[1].URL, "git/trees/bbbb")
	require.False(t, *tree.Truncated)
}

func TestEncodeContentsFileHasLinks(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	body := githubapi.EncodeContentsFile(r, "o", "r", "dir/file.txt", "sha1", []byte("data"))

	require.Equal(t, "file", body.GetType())
	require.Equal(t, "file.txt", body.GetName())
	require.NotNil(t, body.Links)
	require.NotEmpty(t, body.Links.GetSelf())
}

func TestEncodeContentsDirOmitsContentAndDownloadURLForDirs(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	entries := []gitrepo.TreeEntry{
		{Name: "sub", Path: "sub", Type: gitrepo.ObjectTree, SHA: "bbbb"},
		{Name: "file.txt", Path: "file.txt", Type: gitrepo.ObjectBlob, SHA: "cccc", Size: 10},
	}
	out := githubapi.EncodeContentsDir(r, "o", "r", entries)
	require.Len(t, out, 2)
	require.Equal(t, "dir", out[0].GetType())
	require.Equal(t, 0, out[0].GetSize())
	require.Nil(t, out[0].DownloadURL)
	require.Equal(t, "file", out[1].GetType())
	require.Equal(t, 10, out[1].GetSize())
	require.NotNil(t, out[1].DownloadURL)
}

func TestEncodeCommitListShape(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommitFile("first", "a.txt", "a")
	repo := tr.Open(t)

	commit, err := repo.GetCommit(tr.HeadSHA())
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "http://example.com/", nil)
	entries := githubapi.EncodeCommitList(r, "o", "r", []gitrepo.Commit{*commit})
	require.Len(t, entries, 1)
	require.Equal(t, commit.SHA, entries[0].SHA)
	require.Equal(t, commit.Message, entries[0].Commit.Message)
	require.NotEmpty(t, entries[0].Author.AvatarURL)
	require.False(t, entries[0].Commit.Verification.Verified)
}

func TestArchiveRedirectLocation(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	loc := githubapi.ArchiveRedirectLocation(r, "o", "r", "zip", "main")
	require.Equal(t, "http://example.com/codeload/o/r/zip/main", loc)
}
