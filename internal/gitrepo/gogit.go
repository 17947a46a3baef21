package gitrepo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	path    string
	workDir string
	bare    bool
}

// Open opens a git repository at the given path, which may be the working
// tree root, the .git directory itself, or (for a bare repository) the
// repository directory. A fresh handle is created per call; callers are
// expected to open one per request (spec.md §3, §9 "repository handle
// lifecycle" TODO notes a keyed cache as a future extension, not required
// by the baseline design).
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, wtErr := r.Worktree()
	if wtErr != nil {
		if errors.Is(wtErr, gogit.ErrIsBareRepository) {
			return &GoGitRepository{repo: r, path: path, bare: true}, nil
		}
		return nil, fmt.Errorf("getting worktree: %w", wtErr)
	}

	root := wt.Filesystem.Root()
	return &GoGitRepository{
		repo:    r,
		path:    filepath.Join(root, ".git"),
		workDir: root,
	}, nil
}

func (r *GoGitRepository) Path() string             { return r.path }
func (r *GoGitRepository) WorkingDirectory() string  { return r.workDir }
func (r *GoGitRepository) IsBare() bool              { return r.bare }
func (r *GoGitRepository) Close() error              { return nil }

func (r *GoGitRepository) CurrentBranch() (string, bool, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", false, fmt.Errorf("resolving HEAD: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "", true, nil
	}
	return ref.Name().Short(), false, nil
}

func (r *GoGitRepository) DefaultBranch() (string, error) {
	if _, err := r.repo.Reference(plumbing.NewBranchReferenceName("main"), true); err == nil {
		return "main", nil
	}
	if _, err := r.repo.Reference(plumbing.NewBranchReferenceName("master"), true); err == nil {
		return "master", nil
	}
	name, _, err := r.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("resolving default branch: %w", err)
	}
	return name, nil
}

func (r *GoGitRepository) ResolveRef(name string) (string, error) {
	// Branch first, then tag, mirroring the longest-match ordering used by
	// the ref/path parser (spec.md §4.3 treats branches and tags uniformly).
	if ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true); err == nil {
		return ref.Hash().String(), nil
	}
	if ref, err := r.repo.Reference(plumbing.NewTagReferenceName(name), true); err == nil {
		return r.peelToCommit(ref.Hash())
	}
	return "", newNotFound("ref", name)
}

var hexRunePattern = "0123456789abcdef"

func isFullSHA(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if strings.IndexRune(hexRunePattern, c) < 0 {
			return false
		}
	}
	return true
}

func isHexPrefix(s string) bool {
	if len(s) < 4 {
		return false
	}
	for _, c := range s {
		if strings.IndexRune(hexRunePattern, c) < 0 {
			return false
		}
	}
	return true
}

func (r *GoGitRepository) ExpandShortSHA(prefix string) (string, error) {
	if !isHexPrefix(prefix) {
		return "", newNotFound("sha", prefix)
	}
	iter, err := r.repo.Storer.IterEncodedObjects(plumbing.AnyObject)
	if err != nil {
		return "", fmt.Errorf("iterating objects: %w", err)
	}
	defer iter.Close()

	var match string
	ambiguous := false
	err = iter.ForEach(func(o plumbing.EncodedObject) error {
		h := o.Hash().String()
		if strings.HasPrefix(h, prefix) {
			if match != "" && match != h {
				ambiguous = true
			}
			match = h
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scanning objects for prefix %q: %w", prefix, err)
	}
	if match == "" || ambiguous {
		return "", newNotFound("sha", prefix)
	}
	return match, nil
}

func (r *GoGitRepository) ResolveCommit(refOrSha string) (string, error) {
	if isFullSHA(refOrSha) {
		return r.peelToCommit(plumbing.NewHash(refOrSha))
	}
	if sha, err := r.ResolveRef(refOrSha); err == nil {
		return sha, nil
	}
	full, err := r.ExpandShortSHA(refOrSha)
	if err != nil {
		return "", newNotFound("ref", refOrSha)
	}
	return r.peelToCommit(plumbing.NewHash(full))
}

// peelToCommit resolves hash to a commit SHA, chasing annotated tags.
func (r *GoGitRepository) peelToCommit(hash plumbing.Hash) (string, error) {
	obj, err := r.repo.Storer.EncodedObject(plumbing.AnyObject, hash)
	if err != nil {
		return "", newNotFound("object", hash.String())
	}
	switch obj.Type() {
	case plumbing.CommitObject:
		return hash.String(), nil
	case plumbing.TagObject:
		tag, err := object.DecodeTag(r.repo.Storer, obj)
		if err != nil {
			return "", fmt.Errorf("decoding tag %s: %w", hash, err)
		}
		return r.peelToCommit(tag.Target)
	default:
		return "", newNotFound("object", hash.String())
	}
}

func (r *GoGitRepository) IsCheckedOut(ref string) (bool, error) {
	if r.bare {
		return false, nil
	}
	head, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("resolving HEAD: %w", err)
	}
	target, err := r.ResolveCommit(ref)
	if err != nil {
		return false, err
	}
	return head.Hash().String() == target, nil
}

func (r *GoGitRepository) Status(path string) (WorkingTreeStatus, error) {
	if r.bare {
		return StatusAbsent, nil
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return StatusAbsent, fmt.Errorf("getting worktree: %w", err)
	}
	st, err := wt.Status()
	if err != nil {
		return StatusAbsent, fmt.Errorf("getting worktree status: %w", err)
	}
	fileStatus := st.File(path)
	code := fileStatus.Worktree
	if code == gogit.Unmodified {
		code = fileStatus.Staging
	}
	switch code {
	case gogit.Unmodified:
		return StatusUnmodified, nil
	case gogit.Added, gogit.Copied, gogit.Untracked:
		return StatusAdded, nil
	case gogit.Deleted:
		return StatusDeleted, nil
	case gogit.Modified, gogit.Renamed, gogit.UpdatedButUnmerged:
		return StatusModified, nil
	default:
		return StatusAbsent, nil
	}
}

func (r *GoGitRepository) ReadWorkingTreeFile(path string) ([]byte, error) {
	if r.bare {
		return nil, newNotFound("path", path)
	}
	full := filepath.Join(r.workDir, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newNotFound("path", path)
		}
		return nil, fmt.Errorf("reading working tree file %s: %w", path, err)
	}
	return data, nil
}

// ResolveBlob implements spec.md §4.4's resolveBlob algorithm.
func (r *GoGitRepository) ResolveBlob(ref, path string, includeUncommitted bool) (string, error) {
	commitSha, err := r.ResolveCommit(ref)
	if err != nil {
		return "", err
	}

	if !includeUncommitted {
		_, sha, err := r.ResolveObjectAtPath(commitSha, path)
		if err != nil {
			return "", err
		}
		return sha, nil
	}

	status, err := r.Status(path)
	if err != nil {
		return "", err
	}

	switch status {
	case StatusUnmodified:
		_, sha, err := r.ResolveObjectAtPath(commitSha, path)
		if err != nil {
			return "", err
		}
		return sha, nil
	case StatusAbsent, StatusDeleted:
		return "", newNotFound("path", path)
	case StatusAdded, StatusIgnored:
		data, err := r.ReadWorkingTreeFile(path)
		if err != nil {
			return "", newNotFound("path", path)
		}
		return hashBlobBytes(data), nil
	default: // Modified and anything else: read from disk.
		data, err := r.ReadWorkingTreeFile(path)
		if err != nil {
			return "", err
		}
		return hashBlobBytes(data), nil
	}
}

// hashBlobBytes computes the SHA-1 a real git blob object would have for
// data, using the canonical "blob <len>\0" header (spec.md §4.4).
func hashBlobBytes(data []byte) string {
	h := plumbing.ComputeHash(plumbing.BlobObject, data)
	return h.String()
}

func (r *GoGitRepository) GetRawContent(ref, path string, includeUncommitted bool) ([]byte, error) {
	commitSha, err := r.ResolveCommit(ref)
	if err != nil {
		return nil, err
	}
	if includeUncommitted {
		status, err := r.Status(path)
		if err != nil {
			return nil, err
		}
		switch status {
		case StatusAbsent, StatusDeleted:
			return nil, newNotFound("path", path)
		case StatusUnmodified:
			// fall through to committed read below
		default:
			return r.ReadWorkingTreeFile(path)
		}
	}
	_, sha, err := r.ResolveObjectAtPath(commitSha, path)
	if err != nil {
		return nil, err
	}
	return r.GetBlob(sha)
}

func (r *GoGitRepository) GetBlob(sha string) ([]byte, error) {
	blob, err := r.repo.BlobObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, newNotFound("sha", sha)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("opening blob %s: %w", sha, err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", sha, err)
	}
	return data, nil
}

func (r *GoGitRepository) GetObjectType(sha string) (ObjectType, error) {
	obj, err := r.repo.Storer.EncodedObject(plumbing.AnyObject, plumbing.NewHash(sha))
	if err != nil {
		return "", newNotFound("sha", sha)
	}
	switch obj.Type() {
	case plumbing.BlobObject:
		return ObjectBlob, nil
	case plumbing.TreeObject:
		return ObjectTree, nil
	case plumbing.CommitObject:
		return ObjectCommit, nil
	case plumbing.TagObject:
		return ObjectTag, nil
	default:
		return "", newNotFound("sha", sha)
	}
}

func (r *GoGitRepository) ResolveObjectAtPath(commitSha, path string) (ObjectType, string, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(commitSha))
	if err != nil {
		return "", "", newNotFound("object", commitSha)
	}
	tree, err := commit.Tree()
	if err != nil {
		return "", "", fmt.Errorf("loading tree for commit %s: %w", commitSha, err)
	}

	path = strings.Trim(path, "/")
	if path == "" {
		return ObjectTree, tree.Hash.String(), nil
	}

	entry, err := tree.FindEntry(path)
	if err != nil {
		return "", "", newNotFound("path", path)
	}

	switch {
	case entry.Mode == filemode.Dir:
		return ObjectTree, entry.Hash.String(), nil
	case entry.Mode == filemode.Submodule:
		return ObjectCommit, entry.Hash.String(), nil
	default:
		return ObjectBlob, entry.Hash.String(), nil
	}
}

func (r *GoGitRepository) ResolveTree(refOrSha string) (*Tree, error) {
	if isFullSHA(refOrSha) {
		obj, err := r.repo.Storer.EncodedObject(plumbing.AnyObject, plumbing.NewHash(refOrSha))
		if err == nil {
			switch obj.Type() {
			case plumbing.TreeObject:
				return r.readTree(plumbing.NewHash(refOrSha))
			case plumbing.CommitObject:
				commit, err := r.repo.CommitObject(plumbing.NewHash(refOrSha))
				if err != nil {
					return nil, newNotFound("object", refOrSha)
				}
				return r.readTree(commit.TreeHash)
			case plumbing.TagObject:
				tag, err := object.DecodeTag(r.repo.Storer, obj)
				if err != nil {
					return nil, fmt.Errorf("decoding tag %s: %w", refOrSha, err)
				}
				return r.ResolveTree(tag.Target.String())
			default:
				return nil, newNotFound("object", refOrSha)
			}
		}
	}

	commitSha, err := r.ResolveCommit(refOrSha)
	if err != nil {
		return nil, err
	}
	commit, err := r.repo.CommitObject(plumbing.NewHash(commitSha))
	if err != nil {
		return nil, newNotFound("object", commitSha)
	}
	return r.readTree(commit.TreeHash)
}

func (r *GoGitRepository) readTree(hash plumbing.Hash) (*Tree, error) {
	tree, err := r.repo.TreeObject(hash)
	if err != nil {
		return nil, newNotFound("object", hash.String())
	}
	out := &Tree{SHA: hash.String()}
	for _, e := range tree.Entries {
		out.Entries = append(out.Entries, treeEntryFrom(e))
	}
	return out, nil
}

func treeEntryFrom(e object.TreeEntry) TreeEntry {
	typ := ObjectBlob
	switch {
	case e.Mode == filemode.Dir:
		typ = ObjectTree
	case e.Mode == filemode.Submodule:
		typ = ObjectCommit
	}
	return TreeEntry{
		Name: e.Name,
		Mode: modeString(e.Mode),
		Type: typ,
		SHA:  e.Hash.String(),
	}
}

// modeString renders a filemode as the zero-padded 6-digit octal string
// GitHub's API uses (spec.md §4.5).
func modeString(m filemode.FileMode) string {
	return fmt.Sprintf("%06o", uint32(m))
}

func (r *GoGitRepository) GetCommit(sha string) (*Commit, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, newNotFound("object", sha)
	}
	commit := convertCommit(c)
	return &commit, nil
}

func convertCommit(c *object.Commit) Commit {
	parents := make([]string, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return Commit{
		SHA:     c.Hash.String(),
		TreeSHA: c.TreeHash.String(),
		Parents: parents,
		Author: Signature{
			Name:  c.Author.Name,
			Email: c.Author.Email,
			When:  c.Author.When,
		},
		Committer: Signature{
			Name:  c.Committer.Name,
			Email: c.Committer.Email,
			When:  c.Committer.When,
		},
		Message: c.Message,
	}
}

func (r *GoGitRepository) CommitLog(refOrSha, path string) ([]Commit, error) {
	commitSha, err := r.ResolveCommit(refOrSha)
	if err != nil {
		return nil, err
	}
	opts := &gogit.LogOptions{
		From:  plumbing.NewHash(commitSha),
		Order: gogit.LogOrderCommitterTime,
	}
	if path != "" {
		cleanPath := strings.Trim(path, "/")
		opts.PathFilter = func(p string) bool { return p == cleanPath }
	}
	iter, err := r.repo.Log(opts)
	if err != nil {
		return nil, fmt.Errorf("walking commit log from %s: %w", commitSha, err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, convertCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commit log: %w", err)
	}
	return commits, nil
}

func (r *GoGitRepository) CollectTreeEntries(treeSha, prefix string, deep bool) ([]TreeEntry, error) {
	tree, err := r.repo.TreeObject(plumbing.NewHash(treeSha))
	if err != nil {
		return nil, newNotFound("object", treeSha)
	}
	var out []TreeEntry
	for _, e := range tree.Entries {
		entry := treeEntryFrom(e)
		entry.Path = joinTreePath(prefix, e.Name)
		if entry.Type == ObjectBlob {
			if size, err := r.BlobSize(entry.SHA); err == nil {
				entry.Size = size
			}
		}
		out = append(out, entry)
		if deep && entry.Type == ObjectTree {
			children, err := r.CollectTreeEntries(e.Hash.String(), entry.Path, true)
			if err != nil {
				return nil, err
			}
			out = append(out, children...)
		}
	}
	return out, nil
}

func joinTreePath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func (r *GoGitRepository) Branches() ([]Branch, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	defer iter.Close()

	var branches []Branch
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, Branch{
			Name: strings.TrimPrefix(ref.Name().String(), localBranchPrefix),
			SHA:  ref.Hash().String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating branches: %w", err)
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

func (r *GoGitRepository) Tags() ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target, err := r.peelToCommit(ref.Hash())
		if err != nil {
			target = ref.Hash().String()
		}
		tags = append(tags, Tag{
			Name:      strings.TrimPrefix(ref.Name().String(), tagRefPrefix),
			TargetSHA: target,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// BlobSize returns the uncompressed content size of a blob without reading
// its full content. Called from CollectTreeEntries to populate TreeEntry.Size for
// blob entries (spec.md §4.5 get-tree/get-contents).
func (r *GoGitRepository) BlobSize(sha string) (int64, error) {
	blob, err := r.repo.BlobObject(plumbing.NewHash(sha))
	if err != nil {
		return 0, newNotFound("sha", sha)
	}
	return blob.Size, nil
}
