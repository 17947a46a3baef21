package httpserver

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/localgit/localgit/internal/config"
	"github.com/localgit/localgit/internal/gitrepo"
)

func mountRawRoutes(r chi.Router, h *handle) {
	r.Get("/raw/{owner}/{repo}/*", h.handleRaw)
	r.Get("/{owner}/{repo}/raw/*", h.handleRaw)
}

// handleRaw implements spec.md §4.6: resolve ref/path, decide
// committed-vs-working-tree content via isCheckedOut, stream the blob with
// MIME/ETag/Cache-Control headers, and invoke the optional onRawRequest
// observer with panics swallowed ("observability must never break
// delivery", spec.md §7).
func (h *handle) handleRaw(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repoName := chi.URLParam(r, "repo")
	rest := chi.URLParam(r, "*")

	repo, err := h.openRequestRepo(owner, repoName)
	if err != nil {
		writeNotFoundPlain(w, "not found.")
		return
	}
	defer repo.Close()

	ref, path := splitRefAndPath(repo, rest)
	path = normalizePath(path)

	includeUncommitted, err := repo.IsCheckedOut(ref)
	if err != nil {
		writeNotFoundPlain(w, "not found.")
		return
	}

	data, err := repo.GetRawContent(ref, path, includeUncommitted)
	if err != nil {
		if gitrepo.IsNotFound(err) {
			writeNotFoundPlain(w, "not found.")
			return
		}
		h.log.Error("raw content read failed", "owner", owner, "repo", repoName, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sha, err := repo.ResolveBlob(ref, path, includeUncommitted)
	if err == nil {
		w.Header().Set("ETag", sha)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "text/plain"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "max-age=0, private, must-revalidate")

	h.notifyRawRequest(r, owner, repoName, path, ref)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// notifyRawRequest invokes the configured onRawRequest observer, recovering
// any panic so a misbehaving observer never breaks response delivery.
func (h *handle) notifyRawRequest(r *http.Request, owner, repo, filePath, ref string) {
	if h.cfg.OnRawRequest == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("onRawRequest observer panicked", "panic", fmt.Sprint(rec))
		}
	}()
	h.cfg.OnRawRequest(config.RawRequestEvent{
		Request:  r,
		RepoPath: h.resolver.Resolve(owner, repo),
		FilePath: filePath,
		Ref:      ref,
	})
}
