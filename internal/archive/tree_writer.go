package archive

import (
	"archive/tar"
	"context"
	"io"
	"strings"

	kzip "github.com/klauspost/compress/zip"
	kflate "github.com/klauspost/compress/flate"
	kgzip "github.com/klauspost/compress/gzip"

	"github.com/localgit/localgit/internal/gitrepo"
)

// writeZipFromTree streams a zip archive of a resolved commit's tree,
// reading blob bytes from the Git object database. Entries are emitted in
// the depth-first order gitrepo.CollectTreeEntries already produces (spec.md
// §4.7 step 5's "Append in depth-first order").
func writeZipFromTree(ctx context.Context, dst io.Writer, repo gitrepo.Repository, entries []gitrepo.TreeEntry) error {
	zw := kzip.NewWriter(dst)
	zw.RegisterCompressor(kzip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return kflate.NewWriter(w, kflate.BestCompression)
	})

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch e.Type {
		case gitrepo.ObjectTree:
			if _, err := zw.Create(e.Path + "/"); err != nil {
				return err
			}
		case gitrepo.ObjectCommit:
			// submodule gitlink: emit a placeholder directory, content is
			// out of scope (no nested repository to read from).
			if _, err := zw.Create(e.Path + "/"); err != nil {
				return err
			}
		default:
			w, err := zw.Create(e.Path)
			if err != nil {
				return err
			}
			blob, err := repo.GetBlob(e.SHA)
			if err != nil {
				return err
			}
			if _, err := w.Write(blob); err != nil {
				return err
			}
		}
	}

	return zw.Close()
}

// writeTarGzFromTree is writeZipFromTree's tar.gz counterpart.
func writeTarGzFromTree(ctx context.Context, dst io.Writer, repo gitrepo.Repository, entries []gitrepo.TreeEntry) error {
	gz, err := kgzip.NewWriterLevel(dst, kgzip.BestCompression)
	if err != nil {
		return err
	}
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch e.Type {
		case gitrepo.ObjectTree, gitrepo.ObjectCommit:
			hdr := &tar.Header{Name: e.Path + "/", Typeflag: tar.TypeDir, Mode: 0o755}
			if err := tw.WriteHeader(hdr); err != nil {
				return err
			}
		default:
			blob, err := repo.GetBlob(e.SHA)
			if err != nil {
				return err
			}
			mode := int64(0o644)
			if strings.HasPrefix(e.Mode, "1007") {
				mode = 0o755
			}
			hdr := &tar.Header{Name: e.Path, Typeflag: tar.TypeReg, Size: int64(len(blob)), Mode: mode}
			if err := tw.WriteHeader(hdr); err != nil {
				return err
			}
			if _, err := tw.Write(blob); err != nil {
				return err
			}
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
