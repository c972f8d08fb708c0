package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// errNotDirectory is returned when the copy destination is not a directory.
	errNotDirectory = errors.New("not a directory")
	// ErrSameFile is returned when the copy would overwrite its own source.
	ErrSameFile = errors.New("source and destination are the same file")
)

// CopyToDir copies the regular file src into the existing directory dstDir,
// keeping its file name and permission bits and overwriting a file of the same name.
// It returns the path of the written copy. A missing src yields an error matching os.ErrNotExist;
// copying a file onto itself yields ErrSameFile and leaves it untouched.
func CopyToDir(src, dstDir string) (string, error) {
	src = filepath.Clean(src)

	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", src, err)
	}

	if !srcInfo.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", src)
	}

	dirInfo, err := os.Stat(dstDir)
	if err != nil {
		return "", fmt.Errorf("stat destination: %w", err)
	}

	if !dirInfo.IsDir() {
		return "", fmt.Errorf("destination %s: %w", dstDir, errNotDirectory)
	}

	dst := filepath.Join(dstDir, filepath.Base(src))

	// Truncating dst would otherwise empty src before it is read.
	dstInfo, err := os.Stat(dst)
	if err == nil && os.SameFile(srcInfo, dstInfo) {
		return "", fmt.Errorf("copy %s to %s: %w", src, dstDir, ErrSameFile)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", src, err)
	}

	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()

		return "", fmt.Errorf("copy %s: %w", src, err)
	}

	if err = out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dst, err)
	}

	return dst, nil
}
