package resolver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSanitizesTraversal(t *testing.T) {
	r := New("/repos", nil)

	got := r.Resolve("../..", ".")
	require.Equal(t, filepath.Join("/repos", "..-..", "-"), got)
}

func TestResolveSanitizesUnsafeCharacters(t *testing.T) {
	r := New("/repos", nil)
	got := r.Resolve("ow ner", "re/po")
	require.Equal(t, filepath.Join("/repos", "ow-ner", "re-po"), got)
}

func TestResolveVirtualRepoVerbatim(t *testing.T) {
	r := New("/repos", []VirtualRepo{
		{Owner: "acme", Repo: "widgets", Path: "/srv/special/widgets"},
	})

	got := r.Resolve("acme", "widgets")
	require.Equal(t, "/srv/special/widgets", got)
}

func TestResolveVirtualRepoDoesNotMatchOtherRepo(t *testing.T) {
	r := New("/repos", []VirtualRepo{
		{Owner: "acme", Repo: "widgets", Path: "/srv/special/widgets"},
	})

	got := r.Resolve("acme", "gadgets")
	require.Equal(t, filepath.Join("/repos", "acme", "gadgets"), got)
}

func TestResolveUnsafeDotSegments(t *testing.T) {
	r := New("/repos", nil)
	require.Equal(t, filepath.Join("/repos", "-", "--"), r.Resolve(".", ".."))
}
