package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// DefaultFileMode is applied to produced archives.
const DefaultFileMode os.FileMode = 0o644

var (
	// errUnsupportedEntry is returned for sockets, devices and other non-regular files.
	errUnsupportedEntry = errors.New("unsupported file type")
	// errSymlinkLoop is returned for a directory link pointing back at one of its parents.
	errSymlinkLoop = errors.New("symbolic link loop")
)

// Stats summarises a written archive.
type Stats struct {
	// Files is the number of regular file entries.
	Files int
	// Dirs is the number of directory entries.
	Dirs int
	// Bytes is the total uncompressed size of file entries.
	Bytes int64
}

// Entries returns the total number of entries written.
func (s *Stats) Entries() int {
	return s.Files + s.Dirs
}

type options struct {
	level int
}

// Option configures archive writing.
type Option func(*options)

// WithCompressionLevel sets the deflate level used for file entries.
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.level = level
	}
}

// ValidateLevel reports whether level is a deflate level accepted by the compressor.
func ValidateLevel(level int) error {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return fmt.Errorf("compression level %d out of range [%d, %d]", level, flate.HuffmanOnly, flate.BestCompression)
	}

	return nil
}

// Build archives every file and directory below srcDir into dstPath,
// following links to files and directories.
// The archive is written next to dstPath and renamed over it once complete,
// so an existing archive is replaced as a whole and never merged into.
func Build(ctx context.Context, srcDir, dstPath string, opts ...Option) (*Stats, error) {
	cfg := &options{level: flate.DefaultCompression}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := ValidateLevel(cfg.level); err != nil {
		return nil, err
	}

	info, err := os.Stat(srcDir)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", srcDir)
	}

	// A linked source directory is archived through its target.
	if srcDir, err = filepath.EvalSymlinks(srcDir); err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dstPath), "."+filepath.Base(dstPath)+"-*")
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	tmpName := tmp.Name()

	stats, err := write(ctx, tmp, srcDir, cfg.level)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close archive: %w", closeErr)
	}

	if err != nil {
		// Best-effort cleanup.
		_ = os.Remove(tmpName)

		return nil, err
	}

	if err = os.Chmod(tmpName, DefaultFileMode); err != nil {
		_ = os.Remove(tmpName)

		return nil, fmt.Errorf("chmod archive: %w", err)
	}

	if err = os.Rename(tmpName, dstPath); err != nil {
		_ = os.Remove(tmpName)

		return nil, fmt.Errorf("replace archive: %w", err)
	}

	return stats, nil
}

func write(ctx context.Context, out io.Writer, srcDir string, level int) (*Stats, error) {
	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	stats := new(Stats)

	if err := walk(ctx, zw, srcDir, "", map[string]struct{}{srcDir: {}}, stats); err != nil {
		// The partial archive is discarded by the caller.
		_ = zw.Close()

		return nil, fmt.Errorf("walk %s: %w", srcDir, err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return stats, nil
}

// walk archives the children of dir under the name prefix, descending into
// linked directories as well. ancestors holds the resolved paths of the
// directories on the current branch so a link back to one of them is an error.
func walk(ctx context.Context, zw *zip.Writer, dir, prefix string, ancestors map[string]struct{}, stats *Stats) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())
		name := prefix + entry.Name()

		isDir, err := addEntry(zw, path, name, stats)
		if err != nil {
			return err
		}

		if !isDir {
			continue
		}

		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return err
		}

		if _, seen := ancestors[resolved]; seen {
			return fmt.Errorf("%s: %w", name, errSymlinkLoop)
		}

		ancestors[resolved] = struct{}{}

		if err = walk(ctx, zw, path, name+"/", ancestors, stats); err != nil {
			return err
		}

		delete(ancestors, resolved)
	}

	return nil
}

// addEntry writes one filesystem object under name and reports whether it is a directory.
// A symbolic link is stored as the object it points to.
func addEntry(zw *zip.Writer, path, name string, stats *Stats) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return false, fmt.Errorf("header for %s: %w", name, err)
	}

	switch {
	case info.IsDir():
		header.Name = name + "/"
		header.Method = zip.Store
		header.UncompressedSize64 = 0

		if _, err = zw.CreateHeader(header); err != nil {
			return false, fmt.Errorf("add %s: %w", header.Name, err)
		}

		stats.Dirs++

		return true, nil
	case info.Mode().IsRegular():
		header.Name = name
		header.Method = zip.Deflate
	default:
		return false, fmt.Errorf("%s: %w", name, errUnsupportedEntry)
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return false, fmt.Errorf("add %s: %w", name, err)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return false, err
	}

	defer func() {
		_ = file.Close()
	}()

	written, err := io.Copy(w, file)
	if err != nil {
		return false, fmt.Errorf("compress %s: %w", name, err)
	}

	stats.Files++
	stats.Bytes += written

	return false, nil
}
