package refparser_test

import (
	"testing"

	"github.com/localgit/localgit/internal/refparser"
	"github.com/localgit/localgit/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestSplitPicksLongestMatchingRef(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("first")
	tr.CreateBranch("release")
	tr.CreateTag("release/1.0")

	repo := tr.Open(t)

	ref, path, ok := refparser.Split(repo, "release/1.0/README.md")
	require.True(t, ok)
	require.Equal(t, "release/1.0", ref)
	require.Equal(t, "README.md", path)
}

func TestSplitNoMatch(t *testing.T) {
	tr := testutil.NewTestRepo(t)
	tr.AddCommit("first")
	repo := tr.Open(t)

	_, _, ok := refparser.Split(repo, "deadbeef/README.md")
	require.False(t, ok)
	require.Equal(t, "deadbeef", refparser.FirstSegment("deadbeef/README.md"))
}
