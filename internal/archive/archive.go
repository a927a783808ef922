// Package archive verifies compressed tar archives produced by a backup run.
package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Format identifies the compression of a tar archive.
type Format string

const (
	FormatTarGzip Format = "tar.gz"
	FormatTarZstd Format = "tar.zst"
)

// ErrUnsupportedFormat is returned for files whose name does not match a
// known archive suffix.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

// Pattern matches every archive name Inspect understands.
const Pattern = "*.{tar.gz,tgz,tar.zst}"

const (
	sampleMembers = 5
	sampleBytes   = 1024
)

// Info describes an inspected archive.
type Info struct {
	Path    string
	Format  Format
	Size    int64
	Files   int
	Members int
}

// DetectFormat maps a file name to its archive format.
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return FormatTarGzip, nil
	case strings.HasSuffix(name, ".tar.zst"):
		return FormatTarZstd, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

// Find returns the archives directly inside dir, sorted by name.
func Find(dir string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, Pattern))
	if err != nil {
		return nil, fmt.Errorf("searching archives in %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Inspect walks the member list of the archive at path, reads a sample from
// the first regular files and drains the stream so the compression trailer
// is verified. Any read error means the archive is corrupt.
func Inspect(path string) (*Info, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}

	stream, closeStream, err := decompress(format, f)
	if err != nil {
		return nil, err
	}
	defer closeStream()

	info := &Info{Path: path, Format: format, Size: st.Size()}
	tr := tar.NewReader(stream)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading member %d: %w", info.Members+1, err)
		}
		info.Members++
		if !hdr.FileInfo().Mode().IsRegular() {
			continue
		}
		info.Files++
		if info.Files <= sampleMembers {
			if _, err := io.CopyN(io.Discard, tr, sampleBytes); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("reading %s: %w", hdr.Name, err)
			}
		}
	}

	if _, err := io.Copy(io.Discard, stream); err != nil {
		return nil, fmt.Errorf("verifying stream: %w", err)
	}
	return info, nil
}

func decompress(format Format, r io.Reader) (io.Reader, func(), error) {
	switch format {
	case FormatTarGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return zr, func() { zr.Close() }, nil //nolint:errcheck
	case FormatTarZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return zr, zr.Close, nil
	}
	return nil, nil, ErrUnsupportedFormat
}
