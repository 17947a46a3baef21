// Package refparser splits a "<ref>/<path...>" URL segment where ref may
// itself contain slashes, by picking the longest enumerated branch or tag
// name that is a prefix of the segment (spec.md §4.3).
package refparser
