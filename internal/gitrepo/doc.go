// Package gitrepo provides the git access layer: reading blobs, trees, and
// commits from an on-disk repository, resolving refs and shortened SHAs,
// and deciding whether a given ref's content should come from the committed
// object database or the uncommitted working tree.
package gitrepo
