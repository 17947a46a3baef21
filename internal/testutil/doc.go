// Package testutil builds temporary on-disk git repositories with
// controlled commit history, branches, tags, and working-tree edits, for
// unit and end-to-end tests across the module.
package testutil
