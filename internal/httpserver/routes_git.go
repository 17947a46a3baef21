package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/localgit/localgit/internal/smarthttp"
)

func mountGitRoutes(r chi.Router, h *handle) {
	r.HandleFunc("/{owner}/{repo}.git/*", h.handleSmartHTTP)
}

// handleSmartHTTP implements spec.md §4.8: resolve the Smart HTTP action
// from the wildcard suffix, spawn the matching `git` subcommand against the
// resolved repository path, and stream stdin/stdout through it.
func (h *handle) handleSmartHTTP(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repoName := chi.URLParam(r, "repo")
	suffix := chi.URLParam(r, "*")

	req, ok := smarthttp.ParseRequest(r.Method, suffix, r.URL.Query().Get("service"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	repoPath := h.resolver.Resolve(owner, repoName)
	w.Header().Set("Content-Type", req.ContentType)

	gzipEncoded := r.Header.Get("Content-Encoding") == "gzip"
	if err := smarthttp.Handle(r.Context(), w, r.Body, gzipEncoded, repoPath, req); err != nil {
		h.log.Error("smart http transport failed", "owner", owner, "repo", repoName, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
