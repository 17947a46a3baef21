package archive

import (
	"archive/tar"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kflate "github.com/klauspost/compress/flate"
	kgzip "github.com/klauspost/compress/gzip"
	kzip "github.com/klauspost/compress/zip"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// rootGitignore reads and parses only repoPath/.gitignore (spec.md §4.7's
// explicit baseline: "the baseline implementation applies only the root's
// .gitignore; subdirectory .gitignore honoring is optional").
func rootGitignore(repoPath string) gitignore.Matcher {
	data, err := os.ReadFile(filepath.Join(repoPath, ".gitignore"))
	if err != nil {
		return gitignore.NewMatcher(nil)
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return gitignore.NewMatcher(patterns)
}

func walkWorkingTree(repoPath string, matcher gitignore.Matcher, visit func(relPath string, isDir bool, d fs.DirEntry) error) error {
	return filepath.WalkDir(repoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == repoPath {
			return nil
		}

		rel, err := filepath.Rel(repoPath, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if rel == ".git" || strings.HasPrefix(rel, ".git/") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		segments := strings.Split(rel, "/")
		if matcher.Match(segments, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		return visit(rel, d.IsDir(), d)
	})
}

// writeZipFromWorkTree streams a zip archive of the working directory,
// honoring the root .gitignore and always excluding .git/ (spec.md §4.7
// step 5's uncommitted branch).
func writeZipFromWorkTree(ctx context.Context, dst io.Writer, repoPath string) error {
	zw := kzip.NewWriter(dst)
	zw.RegisterCompressor(kzip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return kflate.NewWriter(w, kflate.BestCompression)
	})
	matcher := rootGitignore(repoPath)

	err := walkWorkingTree(repoPath, matcher, func(rel string, isDir bool, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if isDir {
			_, err := zw.Create(rel + "/")
			return err
		}
		w, err := zw.Create(rel)
		if err != nil {
			return err
		}
		f, err := os.Open(filepath.Join(repoPath, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		return err
	}
	return zw.Close()
}

// writeTarGzFromWorkTree is writeZipFromWorkTree's tar.gz counterpart.
func writeTarGzFromWorkTree(ctx context.Context, dst io.Writer, repoPath string) error {
	gz, err := kgzip.NewWriterLevel(dst, kgzip.BestCompression)
	if err != nil {
		return err
	}
	tw := tar.NewWriter(gz)
	matcher := rootGitignore(repoPath)

	walkErr := walkWorkingTree(repoPath, matcher, func(rel string, isDir bool, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if isDir {
			return tw.WriteHeader(&tar.Header{Name: rel + "/", Typeflag: tar.TypeDir, Mode: 0o755})
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		f, err := os.Open(filepath.Join(repoPath, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		defer f.Close()

		mode := int64(0o644)
		if info.Mode()&0o100 != 0 {
			mode = 0o755
		}
		if err := tw.WriteHeader(&tar.Header{Name: rel, Typeflag: tar.TypeReg, Size: info.Size(), Mode: mode}); err != nil {
			return err
		}
		_, err = io.Copy(tw, f)
		return err
	})
	if walkErr != nil {
		return walkErr
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
