package httpserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func mountHTMLRoutes(r chi.Router, h *handle) {
	r.Get("/{owner}/{repo}/blob/*", h.handleHTMLStub)
	r.Get("/{owner}/{repo}/tree/*", h.handleHTMLStub)
	r.Get("/{owner}/{repo}", h.handleHTMLStub)
	r.Get("/{owner}/{repo}/*", h.handleHTMLStub)
}

// handleHTMLStub returns spec.md §9's deliberately minimal placeholder
// page for blob/tree/repo-root HTML routes; this server's job is API and
// transport fidelity, not rendering a web UI.
func (h *handle) handleHTMLStub(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repoName := chi.URLParam(r, "repo")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<!doctype html><html><body><p>%s/%s — HTML view not implemented by this server.</p></body></html>", owner, repoName)
}
