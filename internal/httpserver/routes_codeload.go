package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/localgit/localgit/internal/archive"
	"github.com/localgit/localgit/internal/gitrepo"
)

func mountCodeloadRoutes(r chi.Router, h *handle) {
	r.Get("/codeload/{owner}/{repo}/zip/*", h.codeloadHandler(archive.FormatZip))
	r.Get("/codeload/{owner}/{repo}/legacy.zip/*", h.codeloadHandler(archive.FormatZip))
	r.Get("/codeload/{owner}/{repo}/tar.gz/*", h.codeloadHandler(archive.FormatTarGz))
	r.Get("/codeload/{owner}/{repo}/legacy.tar.gz/*", h.codeloadHandler(archive.FormatTarGz))
}

// codeloadHandler streams an archive for format (spec.md §4.7): the
// wildcard tail is the ref (it may contain slashes, as branch names can).
func (h *handle) codeloadHandler(format archive.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := chi.URLParam(r, "owner")
		repoName := chi.URLParam(r, "repo")
		ref := strings.TrimPrefix(chi.URLParam(r, "*"), "/")

		if h.archive == nil {
			http.Error(w, "archive cache unavailable", http.StatusInternalServerError)
			return
		}

		repo, err := h.openRequestRepo(owner, repoName)
		if err != nil {
			writeNotFoundPlain(w, "not found.")
			return
		}
		defer repo.Close()

		if ref == "" {
			if ref, err = repo.DefaultBranch(); err != nil {
				writeNotFoundPlain(w, "not found.")
				return
			}
		}

		uncommitted, err := repo.IsCheckedOut(ref)
		if err != nil {
			writeNotFoundPlain(w, "not found.")
			return
		}
		commitSHA, err := repo.ResolveCommit(ref)
		if err != nil {
			writeNotFoundPlain(w, "not found.")
			return
		}

		key := fmt.Sprintf("%s-%s-%s", owner, repoName, commitSHA)
		if uncommitted {
			key = fmt.Sprintf("%s-%s-SNAPSHOT", owner, repoName)
		}
		filename := key + "." + format.Extension()

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

		if _, err := h.archive.Stream(r.Context(), w, repo, owner, repoName, ref, format); err != nil {
			if gitrepo.IsNotFound(err) {
				h.log.Warn("archive ref not found after headers sent", "owner", owner, "repo", repoName, "ref", ref)
				return
			}
			h.log.Error("archive build failed", "owner", owner, "repo", repoName, "ref", ref, "error", err)
		}
	}
}
