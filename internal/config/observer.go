package config

import "net/http"

// RawRequestEvent is the payload passed to a RawRequestObserver (spec.md
// §4.6): the incoming request plus the resolved repository/file/ref it
// is about to serve.
type RawRequestEvent struct {
	Request  *http.Request
	RepoPath string
	FilePath string
	Ref      string
}

// RawRequestObserver is the optional onRawRequest configuration hook
// (spec.md §6.4). It has no return value and is invoked best-effort: panics
// are recovered and logged by the caller rather than allowed to break
// delivery of the raw content response.
type RawRequestObserver func(RawRequestEvent)
