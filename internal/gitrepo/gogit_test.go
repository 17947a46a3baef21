package gitrepo_test

import (
	"testing"

	"github.com/localgit/localgit/internal/gitrepo"
	"github.com/localgit/localgit/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestDefaultBranchPrefersMain(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("init")
	tr.CreateBranch("main") // HEAD stays on master; both branches now exist
	repo := tr.Open(t)

	name, err := repo.DefaultBranch()
	require.NoError(t, err)
	require.Equal(t, "main", name)
}

func TestResolveCommitBySha(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	sha := tr.AddCommit("init")
	repo := tr.Open(t)

	got, err := repo.ResolveCommit(sha)
	require.NoError(t, err)
	require.Equal(t, sha, got)
}

func TestResolveCommitByShortSha(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	sha := tr.AddCommit("init")
	repo := tr.Open(t)

	got, err := repo.ResolveCommit(sha[:8])
	require.NoError(t, err)
	require.Equal(t, sha, got)
}

func TestResolveCommitUnknownRefNotFound(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("init")
	repo := tr.Open(t)

	_, err := repo.ResolveCommit("no-such-branch")
	require.Error(t, err)
	require.True(t, gitrepo.IsNotFound(err))
}

func TestBranchWithSlash(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	sha := tr.AddCommit("init")
	tr.CreateBranch("branch/with_slash")
	repo := tr.Open(t)

	got, err := repo.ResolveRef("branch/with_slash")
	require.NoError(t, err)
	require.Equal(t, sha, got)
}

func TestIsCheckedOut(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("init")
	tr.CreateBranch("other")
	repo := tr.Open(t)

	current, err := repo.IsCheckedOut("master")
	require.NoError(t, err)
	require.True(t, current)

	notCurrent, err := repo.IsCheckedOut("other")
	require.NoError(t, err)
	require.True(t, notCurrent) // "other" points at the same commit as HEAD
}

func TestResolveBlobUncommittedAddedFile(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("init")
	tr.WriteFile("new.txt", "hello")
	repo := tr.Open(t)

	sha, err := repo.ResolveBlob("master", "new.txt", true)
	require.NoError(t, err)
	require.Len(t, sha, 40)
}

func TestResolveBlobUncommittedDisabledIsNotFound(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("init")
	tr.WriteFile("new.txt", "hello")
	repo := tr.Open(t)

	_, err := repo.ResolveBlob("master", "new.txt", false)
	require.Error(t, err)
	require.True(t, gitrepo.IsNotFound(err))
}

func TestGetRawContentRoundTrip(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommitFile("init", "README.md", "# hello\n")
	repo := tr.Open(t)

	data, err := repo.GetRawContent("master", "README.md", true)
	require.NoError(t, err)
	require.Equal(t, "# hello\n", string(data))
}

func TestResolveTreeCountsEntries(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommitFile("init", "a.txt", "a")
	tr.AddCommitFile("nested", "sub/b.txt", "b")
	tr.AddCommitFile("nested2", "sub/c.txt", "c")
	repo := tr.Open(t)

	sha, err := repo.ResolveCommit("master")
	require.NoError(t, err)
	tree, err := repo.ResolveTree(sha)
	require.NoError(t, err)

	entries, err := repo.CollectTreeEntries(tree.SHA, "", true)
	require.NoError(t, err)

	var trees, blobs int
	for _, e := range entries {
		switch e.Type {
		case gitrepo.ObjectTree:
			trees++
		case gitrepo.ObjectBlob:
			require.Equal(t, int64(1), e.Size, "blob %s should report its real size", e.Path)
			blobs++
		}
	}
	require.Equal(t, 1, trees)
	require.Equal(t, 3, blobs)
}

func TestCommitLogFiltersByPath(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommitFile("c1", "a.txt", "a")
	tr.AddCommitFile("c2", "b.txt", "b")
	tr.AddCommitFile("c3", "a.txt", "a2")
	repo := tr.Open(t)

	commits, err := repo.CommitLog("master", "a.txt")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	require.Equal(t, "c3", commits[0].Message)
	require.Equal(t, "c1", commits[1].Message)
}
