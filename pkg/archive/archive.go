// Package archive provides reading functionality for zip-based 3MF packages.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
)

// ErrNotZip is returned when the data does not carry a zip signature
// or the zip directory cannot be read.
var ErrNotZip = errors.New("not a zip archive")

// ErrEntryNotFound is returned by Read for an unknown entry name.
var ErrEntryNotFound = errors.New("entry not found")

// Archive represents an opened package.
type Archive struct {
	reader  *zip.Reader
	closer  io.Closer
	names   []string
	entries map[string]*zip.File
}

// Entry describes a file stored in the archive.
type Entry struct {
	Name             string
	CompressedSize   uint64
	UncompressedSize uint64
	Method           uint16
}

// Open opens a package file from disk.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	head := make([]byte, 262)
	n, _ := io.ReadFull(file, head)
	if !filetype.Is(head[:n], "zip") {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotZip)
	}

	zr, err := zip.NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %v", ErrNotZip, err)
	}

	archive := newArchive(zr)
	archive.closer = file
	return archive, nil
}

// OpenBytes opens a package held in memory.
func OpenBytes(data []byte) (*Archive, error) {
	if !filetype.Is(data, "zip") {
		return nil, ErrNotZip
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotZip, err)
	}
	return newArchive(zr), nil
}

func newArchive(zr *zip.Reader) *Archive {
	a := &Archive{
		reader:  zr,
		entries: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := normalizePath(f.Name)
		if _, dup := a.entries[name]; dup {
			continue
		}
		a.entries[name] = f
		a.names = append(a.names, name)
	}
	return a
}

// Close closes the underlying file, if any.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// List returns all entry names in archive directory order.
func (a *Archive) List() []string {
	result := make([]string, len(a.names))
	copy(result, a.names)
	return result
}

// Stat returns size information for an entry.
func (a *Archive) Stat(name string) (Entry, bool) {
	f, ok := a.entries[normalizePath(name)]
	if !ok {
		return Entry{}, false
	}
	return Entry{
		Name:             normalizePath(f.Name),
		CompressedSize:   f.CompressedSize64,
		UncompressedSize: f.UncompressedSize64,
		Method:           f.Method,
	}, true
}

// Find returns the first entry, in archive order, accepted by match.
func (a *Archive) Find(match func(name string) bool) (string, bool) {
	for _, name := range a.names {
		if match(name) {
			return name, true
		}
	}
	return "", false
}

// Read reads and decompresses an entry.
func (a *Archive) Read(name string) ([]byte, error) {
	f, ok := a.entries[normalizePath(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(path, "/")
}
