package archive

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/zeebo/blake3"
)

// Entry is one record of an archive listing.
type Entry struct {
	// Name is the slash-separated path; directories end with "/".
	Name string
	// Size is the uncompressed size, zero for directories.
	Size uint64
}

// IsDir reports whether the entry is a directory record.
func (e Entry) IsDir() bool {
	return strings.HasSuffix(e.Name, "/")
}

// Listing describes the contents of an archive file.
type Listing struct {
	// Entries are sorted by name.
	Entries []Entry
	// Size is the size of the archive file itself.
	Size int64
	// Digest is a BLAKE3 fingerprint over entry names and contents.
	// It does not depend on entry order, timestamps or compression.
	Digest string
}

// Names returns entry names in sorted order.
func (l *Listing) Names() []string {
	names := make([]string, 0, len(l.Entries))
	for _, entry := range l.Entries {
		names = append(names, entry.Name)
	}

	return names
}

// Inspect reads the archive at path and returns its listing.
func Inspect(path string) (*Listing, error) {
	reader, err := zip.OpenReader(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	files := append([]*zip.File(nil), reader.File...)
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	listing := &Listing{
		Entries: make([]Entry, 0, len(files)),
		Size:    info.Size(),
	}

	hasher := blake3.New()

	for _, file := range files {
		listing.Entries = append(listing.Entries, Entry{
			Name: file.Name,
			Size: file.UncompressedSize64,
		})

		if err = digestEntry(hasher, file); err != nil {
			return nil, err
		}
	}

	listing.Digest = hex.EncodeToString(hasher.Sum(nil))

	return listing, nil
}

// digestEntry feeds a length-prefixed name and body into w.
func digestEntry(w io.Writer, file *zip.File) error {
	var prefix [8]byte

	binary.LittleEndian.PutUint64(prefix[:], uint64(len(file.Name)))

	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}

	if _, err := io.WriteString(w, file.Name); err != nil {
		return err
	}

	binary.LittleEndian.PutUint64(prefix[:], file.UncompressedSize64)

	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}

	if strings.HasSuffix(file.Name, "/") {
		return nil
	}

	body, err := file.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", file.Name, err)
	}

	defer func() {
		_ = body.Close()
	}()

	if _, err = io.Copy(w, body); err != nil {
		return fmt.Errorf("read entry %s: %w", file.Name, err)
	}

	return nil
}
