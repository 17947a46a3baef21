// Package resolver maps an (owner, repo) pair to an absolute filesystem
// path, sanitizing untrusted path segments against traversal while
// honoring configured virtual-repo overrides verbatim (spec.md §4.2).
package resolver
