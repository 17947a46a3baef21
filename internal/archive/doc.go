// Package archive produces zip and tar.gz snapshots of a repository tree —
// either the committed tree at a resolved commit, or the working directory
// when the requested ref is currently checked out (spec.md §4.7). Finished
// archives for committed refs are cached on disk, keyed by
// owner-repo-commitOid, with temp-file-then-rename finalization so a reader
// never observes a partially written cache entry.
package archive
