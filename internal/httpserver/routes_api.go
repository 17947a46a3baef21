package httpserver

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/localgit/localgit/internal/apierror"
	"github.com/localgit/localgit/internal/githubapi"
	"github.com/localgit/localgit/internal/gitrepo"
)

func mountAPIRoutes(r chi.Router, h *handle) {
	r.Get("/api/repos/{owner}/{repo}/git/blobs/{sha}", h.handleGetBlob)
	r.Get("/api/repos/{owner}/{repo}/git/trees/{refOrSha}", h.handleGetTree)
	r.Get("/api/repos/{owner}/{repo}/contents/*", h.handleGetContents)
	r.Get("/api/repos/{owner}/{repo}/commits", h.handleListCommits)
	r.Get("/api/repos/{owner}/{repo}/zipball", h.archiveLinkHandler("zipball"))
	r.Get("/api/repos/{owner}/{repo}/zipball/*", h.archiveLinkHandler("zipball"))
	r.Get("/api/repos/{owner}/{repo}/tarball", h.archiveLinkHandler("tarball"))
	r.Get("/api/repos/{owner}/{repo}/tarball/*", h.archiveLinkHandler("tarball"))
	r.Get("/{owner}/{repo}/archive/{refAndExt}", h.archiveLinkLegacyHandler)
}

var shaPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleGetBlob implements spec.md §4.5's get-blob: validate sha is a
// literal 40-hex-digit string (422 otherwise), else encode the blob.
func (h *handle) handleGetBlob(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repoName := chi.URLParam(r, "repo")
	sha := chi.URLParam(r, "sha")

	if !shaPattern.MatchString(sha) {
		writeAPIError(w, apierror.InvalidSha("sha must be a 40-character hex string"))
		return
	}

	repo, err := h.openRequestRepo(owner, repoName)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NotFoundBody())
		return
	}
	defer repo.Close()

	blob, err := repo.GetBlob(sha)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NotFoundBody())
		return
	}

	writeJSON(w, http.StatusOK, githubapi.EncodeBlob(r, owner, repoName, sha, blob))
}

// handleGetTree implements spec.md §4.5's get-tree: recursive is active
// when the query param is present and non-empty.
func (h *handle) handleGetTree(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repoName := chi.URLParam(r, "repo")
	refOrSha := chi.URLParam(r, "refOrSha")
	recursive := r.URL.Query().Get("recursive") != ""

	repo, err := h.openRequestRepo(owner, repoName)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NotFoundBody())
		return
	}
	defer repo.Close()

	tree, err := repo.ResolveTree(refOrSha)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NotFoundBody())
		return
	}

	entries, err := repo.CollectTreeEntries(tree.SHA, "", recursive)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NotFoundBody())
		return
	}

	writeJSON(w, http.StatusOK, githubapi.EncodeTree(r, owner, repoName, tree.SHA, entries))
}

// handleGetContents implements spec.md §4.5's get-contents: ref defaults
// to defaultBranch when absent; leading slashes in path are stripped
// (tolerating multiples).
func (h *handle) handleGetContents(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repoName := chi.URLParam(r, "repo")
	path := normalizePath(chi.URLParam(r, "*"))
	ref := r.URL.Query().Get("ref")

	repo, err := h.openRequestRepo(owner, repoName)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.ErrorBody{Message: "No commit found for the ref " + ref})
		return
	}
	defer repo.Close()

	if ref == "" {
		ref, err = repo.DefaultBranch()
		if err != nil {
			writeJSON(w, http.StatusNotFound, githubapi.NoCommitForRefBody(ref))
			return
		}
	}

	commitSHA, err := repo.ResolveCommit(ref)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NoCommitForRefBody(ref))
		return
	}

	objType, sha, err := repo.ResolveObjectAtPath(commitSHA, path)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NoCommitForRefBody(ref))
		return
	}

	if objType == gitrepo.ObjectTree {
		entries, err := repo.CollectTreeEntries(sha, path, false)
		if err != nil {
			writeJSON(w, http.StatusNotFound, githubapi.NoCommitForRefBody(ref))
			return
		}
		writeJSON(w, http.StatusOK, githubapi.EncodeContentsDir(r, owner, repoName, entries))
		return
	}

	blob, err := repo.GetBlob(sha)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NoCommitForRefBody(ref))
		return
	}
	writeJSON(w, http.StatusOK, githubapi.EncodeContentsFile(r, owner, repoName, path, sha, blob))
}

// handleListCommits implements spec.md §4.5's list-commits: sha defaults
// to "master" (the explicit baseline pinning, see SPEC_FULL.md §17).
func (h *handle) handleListCommits(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repoName := chi.URLParam(r, "repo")

	sha := r.URL.Query().Get("sha")
	if sha == "" {
		sha = "master"
	}
	path := strings.TrimLeft(r.URL.Query().Get("path"), "/")

	repo, err := h.openRequestRepo(owner, repoName)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NotFoundBody())
		return
	}
	defer repo.Close()

	commits, err := repo.CommitLog(sha, path)
	if err != nil {
		writeJSON(w, http.StatusNotFound, githubapi.NotFoundBody())
		return
	}

	writeJSON(w, http.StatusOK, githubapi.EncodeCommitList(r, owner, repoName, commits))
}

// archiveLinkHandler implements the api/repos archive-link redirects
// (spec.md §4.5): 302 to the codeload route, defaulting ref to "master".
func (h *handle) archiveLinkHandler(kind string) http.HandlerFunc {
	format := "zip"
	if kind == "tarball" {
		format = "tar.gz"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		owner := chi.URLParam(r, "owner")
		repoName := chi.URLParam(r, "repo")
		ref := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if ref == "" {
			ref = "master"
		}
		loc := githubapi.ArchiveRedirectLocation(r, owner, repoName, format, ref)
		http.Redirect(w, r, loc, http.StatusFound)
	}
}

// archiveLinkLegacyHandler implements /:owner/:repo/archive/:ref.{zip,tar.gz}.
func (h *handle) archiveLinkLegacyHandler(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repoName := chi.URLParam(r, "repo")
	refAndExt := chi.URLParam(r, "refAndExt")

	var format, ref string
	switch {
	case strings.HasSuffix(refAndExt, ".tar.gz"):
		format, ref = "tar.gz", strings.TrimSuffix(refAndExt, ".tar.gz")
	case strings.HasSuffix(refAndExt, ".zip"):
		format, ref = "zip", strings.TrimSuffix(refAndExt, ".zip")
	default:
		http.NotFound(w, r)
		return
	}
	if ref == "" {
		ref = "master"
	}

	loc := githubapi.ArchiveRedirectLocation(r, owner, repoName, format, ref)
	http.Redirect(w, r, loc, http.StatusFound)
}
