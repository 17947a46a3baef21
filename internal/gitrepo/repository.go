package gitrepo

// Repository provides read access to an on-disk git repository, covering
// both the committed object database and (for non-bare repositories) the
// uncommitted working tree. This is the key abstraction point for testing
// and for swapping the backing implementation.
type Repository interface {
	// Path returns the path to the .git directory (or the repository root
	// itself, for a bare repository).
	Path() string

	// WorkingDirectory returns the working tree root, or "" for a bare
	// repository.
	WorkingDirectory() string

	// IsBare reports whether the repository has no working tree.
	IsBare() bool

	// CurrentBranch returns the short name of HEAD if it is symbolic, and
	// whether HEAD is detached.
	CurrentBranch() (name string, detached bool, err error)

	// DefaultBranch returns "main" if present, else "master" if present,
	// else the current branch (spec.md §4.4, §9).
	DefaultBranch() (string, error)

	// ResolveRef resolves a branch or tag name to a commit SHA.
	// Returns a *NotFoundError if no such ref exists.
	ResolveRef(name string) (string, error)

	// ExpandShortSHA expands a shortened hex prefix (length >= 4) to a full
	// 40-hex object SHA; the match may be an object of any type, not only a
	// commit. Returns a *NotFoundError if no object matches, or
	// if more than one object matches (ambiguous prefixes are treated as
	// not found rather than guessed, per spec.md §9).
	ExpandShortSHA(prefix string) (string, error)

	// ResolveCommit resolves a ref name or (full or shortened) SHA to a
	// full commit SHA: try full-SHA syntax, then ref lookup, then
	// shortened-SHA expansion.
	ResolveCommit(refOrSha string) (string, error)

	// IsCheckedOut reports whether ref resolves to the same commit as HEAD.
	IsCheckedOut(ref string) (bool, error)

	// Status reports the working-tree status of path relative to the
	// repository root. For a bare repository it always returns
	// StatusAbsent.
	Status(path string) (WorkingTreeStatus, error)

	// ReadWorkingTreeFile reads the raw bytes of path from the working
	// tree (not the object database).
	ReadWorkingTreeFile(path string) ([]byte, error)

	// ResolveBlob resolves the blob SHA for path as of ref. When
	// includeUncommitted is true and the ref is currently checked out,
	// per-path working tree status decides whether the committed or
	// working-tree content is used, per spec.md §4.4.
	ResolveBlob(ref, path string, includeUncommitted bool) (sha string, err error)

	// GetRawContent resolves and reads the raw bytes of a blob, per
	// ResolveBlob's semantics.
	GetRawContent(ref, path string, includeUncommitted bool) ([]byte, error)

	// GetBlob reads a blob's raw bytes by SHA directly from the object
	// database.
	GetBlob(sha string) ([]byte, error)

	// BlobSize returns the byte length of a blob without reading its content.
	BlobSize(sha string) (int64, error)

	// GetObjectType reports the type of the object identified by sha.
	GetObjectType(sha string) (ObjectType, error)

	// ResolveObjectAtPath traverses the tree of commitSha to path and
	// returns the type (blob or tree) and SHA of what it finds.
	ResolveObjectAtPath(commitSha, path string) (objType ObjectType, sha string, err error)

	// ResolveTree resolves refOrSha to a tree: a full SHA is read directly
	// (chasing commit->tree and annotated-tag->(commit|tree) pointers);
	// anything else is resolved as a ref/short-sha to a commit and its
	// tree is returned.
	ResolveTree(refOrSha string) (*Tree, error)

	// CommitLog returns commits reachable from refOrSha in reverse
	// chronological order. If path is non-empty, the list is filtered to
	// commits where the blob at path changed relative to the
	// chronologically previous commit (spec.md §4.4).
	CommitLog(refOrSha, path string) ([]Commit, error)

	// CollectTreeEntries depth-first enumerates the entries of the tree
	// identified by treeSha. If deep is true, subtrees are recursed into
	// and their entries are flattened with "/"-joined paths under prefix.
	CollectTreeEntries(treeSha, prefix string, deep bool) ([]TreeEntry, error)

	// Branches lists local branches.
	Branches() ([]Branch, error)

	// Tags lists tags, peeled to their target commit.
	Tags() ([]Tag, error)

	// GetCommit reads a commit object by SHA.
	GetCommit(sha string) (*Commit, error)

	// Close releases any resources held by the repository handle.
	Close() error
}
