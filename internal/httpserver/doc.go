// Package httpserver wires every spec.md §6.1 HTTP route onto a chi
// router: raw content, Smart HTTP, the GitHub-shape JSON API, codeload
// archive streaming, and stubbed HTML routes, behind a subdomain-rewrite
// and request-logging middleware pair.
package httpserver
