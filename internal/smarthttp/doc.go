// Package smarthttp implements the server side of Git's Smart HTTP
// transport (spec.md §4.8): info/refs discovery and the upload-pack /
// receive-pack services, by spawning the real `git` binary as a child
// process and streaming the HTTP request/response bodies through its
// stdin/stdout.
package smarthttp
