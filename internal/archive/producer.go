package archive

import (
	"context"
	"fmt"
	"io"

	"github.com/localgit/localgit/internal/gitrepo"
)

// Producer streams archives for a resolved (repo, ref, format), serving
// from an on-disk cache when the ref names a committed, non-checked-out
// commit, and building fresh (uncached) archives for the currently
// checked-out ref, since that content can change between requests.
type Producer struct {
	cache *Cache
}

// NewProducer builds a Producer backed by a cache directory (created if
// missing).
func NewProducer(cacheDir string) (*Producer, error) {
	cache, err := NewCache(cacheDir)
	if err != nil {
		return nil, err
	}
	return &Producer{cache: cache}, nil
}

// Result describes the archive Stream produced, for Content-Disposition and
// logging.
type Result struct {
	Filename string
	CommitSHA string
}

// Stream resolves ref against repo, then writes the archive for format to
// dst, consulting and populating the on-disk cache for committed refs
// (spec.md §4.7).
func (p *Producer) Stream(ctx context.Context, dst io.Writer, repo gitrepo.Repository, owner, repoName, ref string, format Format) (Result, error) {
	serveUncommitted, err := repo.IsCheckedOut(ref)
	if err != nil {
		return Result{}, err
	}

	commitSHA, err := repo.ResolveCommit(ref)
	if err != nil {
		return Result{}, err
	}

	var key string
	if serveUncommitted {
		key = fmt.Sprintf("%s-%s-SNAPSHOT", owner, repoName)
	} else {
		key = fmt.Sprintf("%s-%s-%s", owner, repoName, commitSHA)
	}
	result := Result{Filename: key + "." + format.Extension(), CommitSHA: commitSHA}

	if !serveUncommitted {
		if f, ok, err := p.cache.Open(key, format); err != nil {
			return result, err
		} else if ok {
			defer f.Close()
			_, err := io.Copy(dst, f)
			return result, err
		}
	}

	if serveUncommitted {
		return result, p.buildWorkTree(ctx, dst, repo.WorkingDirectory(), format)
	}
	return result, p.buildAndCache(ctx, dst, repo, key, commitSHA, format)
}

func (p *Producer) buildWorkTree(ctx context.Context, dst io.Writer, repoPath string, format Format) error {
	switch format {
	case FormatZip:
		return writeZipFromWorkTree(ctx, dst, repoPath)
	default:
		return writeTarGzFromWorkTree(ctx, dst, repoPath)
	}
}

func (p *Producer) buildAndCache(ctx context.Context, dst io.Writer, repo gitrepo.Repository, key, commitSHA string, format Format) error {
	tree, err := repo.ResolveTree(commitSHA)
	if err != nil {
		return err
	}
	entries, err := repo.CollectTreeEntries(tree.SHA, "", true)
	if err != nil {
		return err
	}

	staged, err := p.cache.Writer(key, format)
	if err != nil {
		return err
	}

	mw := io.MultiWriter(staged, dst)
	var buildErr error
	switch format {
	case FormatZip:
		buildErr = writeZipFromTree(ctx, mw, repo, entries)
	default:
		buildErr = writeTarGzFromTree(ctx, mw, repo, entries)
	}

	if buildErr != nil {
		staged.Abort()
		return buildErr
	}
	return staged.Commit()
}
