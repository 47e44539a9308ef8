package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
)

// Local returns a filesystem addressing absolute host paths.
func Local() billy.Filesystem {
	return osfs.New("/")
}

// CopyTree recursively copies src on srcFS to dst on dstFS.
// dst is created if missing and existing files below it are overwritten.
// File modes and symbolic links are preserved.
func CopyTree(srcFS billy.Filesystem, src string, dstFS billy.Filesystem, dst string) error {
	if err := dstFS.MkdirAll(dst, domain.DirPerm); err != nil {
		return copyErr(err, src, dst)
	}

	err := util.Walk(srcFS, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := dstFS.Join(dst, rel)

		switch {
		case info.IsDir():
			return dstFS.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.Mode()&os.ModeSymlink != 0:
			link, err := srcFS.Readlink(path)
			if err != nil {
				return err
			}
			_ = dstFS.Remove(target)
			return dstFS.Symlink(link, target)
		default:
			return copyFile(srcFS, path, dstFS, target, info.Mode().Perm())
		}
	})
	if err != nil {
		return copyErr(err, src, dst)
	}

	return nil
}

// CopyDir copies a host directory to another host path.
func CopyDir(src, dst string) error {
	local := Local()
	return CopyTree(local, src, local, dst)
}

func copyFile(srcFS billy.Filesystem, src string, dstFS billy.Filesystem, dst string, perm os.FileMode) error {
	in, err := srcFS.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	out, err := dstFS.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

func copyErr(err error, src, dst string) error {
	wrapped := zerr.With(fmt.Errorf("%w: %w", domain.ErrCopyFailed, err), "src", src)
	return zerr.With(wrapped, "dst", dst)
}
