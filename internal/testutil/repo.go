package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/localgit/localgit/internal/gitrepo"
)

// TestRepo is a builder for creating temporary git repositories with
// controlled commit history, tags, branches, and working-tree edits for
// tests (adapted from the pattern used across this module's e2e suite).
type TestRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
	n    int
}

// NewTestRepo creates and initializes a new non-bare git repository in a
// temporary directory.
func NewTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// NewTestRepoAt initializes a non-bare repository at a caller-chosen path,
// for tests that need control over the directory layout (e.g. exercising
// the resolver's owner/repo path convention) rather than an arbitrary
// t.TempDir() location.
func NewTestRepoAt(t testing.TB, dir string) *TestRepo {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo at %s: %v", dir, err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// NewBareTestRepo creates a bare repository, as a Smart HTTP transport
// push/clone target would use.
func NewBareTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, true)
	if err != nil {
		t.Fatalf("failed to init bare repo: %v", err)
	}

	return &TestRepo{t: t, path: dir, repo: repo, time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// Path returns the repository root directory.
func (r *TestRepo) Path() string { return r.path }

func (r *TestRepo) sig() *object.Signature {
	r.time = r.time.Add(time.Minute)
	return &object.Signature{Name: "Test User", Email: "test@example.com", When: r.time}
}

// WriteFile writes content to path within the working tree without staging
// or committing it, producing an "added" (untracked) or "modified"
// working-tree status depending on whether path already existed in HEAD.
func (r *TestRepo) WriteFile(path, content string) {
	r.t.Helper()
	full := filepath.Join(r.path, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("write file: %v", err)
	}
}

// RemoveFile deletes path from the working tree without staging the
// deletion, producing a "deleted" working-tree status.
func (r *TestRepo) RemoveFile(path string) {
	r.t.Helper()
	full := filepath.Join(r.path, filepath.FromSlash(path))
	if err := os.Remove(full); err != nil {
		r.t.Fatalf("remove file: %v", err)
	}
}

// AddCommit writes a file named after the commit index (ensuring every
// commit has changes), stages it, and commits. Returns the commit SHA.
func (r *TestRepo) AddCommit(message string) string {
	return r.AddCommitFile(message, fmt.Sprintf("file-%d.txt", r.n), message)
}

// AddCommitFile stages path=content and commits it with message. Returns
// the commit SHA.
func (r *TestRepo) AddCommitFile(message, path, content string) string {
	r.t.Helper()
	r.n++
	r.WriteFile(path, content)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add(path); err != nil {
		r.t.Fatalf("add: %v", err)
	}

	sig := r.sig()
	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("commit: %v", err)
	}
	return hash.String()
}

// CreateBranch creates a branch named name (which may contain "/") pointing
// at the current HEAD, without checking it out.
func (r *TestRepo) CreateBranch(name string) string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("head: %v", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), head.Hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("create branch %s: %v", name, err)
	}
	return head.Hash().String()
}

// Checkout switches HEAD (and the working tree) to the given branch.
func (r *TestRepo) Checkout(name string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name)}); err != nil {
		r.t.Fatalf("checkout %s: %v", name, err)
	}
}

// CreateTag creates a lightweight tag named name pointing at the current
// HEAD.
func (r *TestRepo) CreateTag(name string) string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("head: %v", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewTagReferenceName(name), head.Hash())
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("create tag %s: %v", name, err)
	}
	return head.Hash().String()
}

// CreateAnnotatedTag creates an annotated tag named name pointing at the
// current HEAD.
func (r *TestRepo) CreateAnnotatedTag(name, message string) string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("head: %v", err)
	}
	sig := r.sig()
	tagRef, err := r.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  sig,
		Message: message,
	})
	if err != nil {
		r.t.Fatalf("create annotated tag %s: %v", name, err)
	}
	return tagRef.Hash().String()
}

// HeadSHA returns the current HEAD commit SHA.
func (r *TestRepo) HeadSHA() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("head: %v", err)
	}
	return head.Hash().String()
}

// Open opens the repository through the production gitrepo package, the
// same way request handlers do.
func (r *TestRepo) Open(t testing.TB) gitrepo.Repository {
	t.Helper()
	repo, err := gitrepo.Open(r.path)
	if err != nil {
		t.Fatalf("gitrepo.Open: %v", err)
	}
	return repo
}
