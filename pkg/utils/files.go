package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// ErrTooLarge is returned by LoadFile when the (decompressed)
// file is larger than the given limit.
var ErrTooLarge = errors.New("file too large")

// LoadFile loads the given file and performs decompression if necessary,
// based on the extension of the file. Archives (.zip, .7z) yield their
// first file. At most limit bytes are accepted.
func LoadFile(filename string, limit int64) ([]byte, error) {
	// open the file
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var decoder io.Reader
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		decoder = gz
	case ".xz":
		decoder, err = xz.NewReader(f)
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		decoder = zr
	case ".lz4":
		decoder = lz4.NewReader(f)
	case ".zip", ".7z":
		// archives need random access, so read the archive
		// into memory first
		data, err := readLimited(f, archiveLimit(limit))
		if err != nil {
			return nil, err
		}
		decoder, err = openArchive(ext, data)
		if err != nil {
			return nil, err
		}
	default:
		decoder = f
	}
	if err != nil {
		return nil, err
	}

	return readLimited(decoder, limit)
}

// archiveLimit bounds the size of a compressed archive, which
// is allowed some slack over the limit of its contents.
func archiveLimit(limit int64) int64 {
	return limit + limit/2 + 64*1024
}

// readLimited reads r to the end, failing with ErrTooLarge if it
// holds more than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

// openArchive opens the first file in the archive.
func openArchive(ext string, data []byte) (io.Reader, error) {
	switch ext {
	case ".zip":
		zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(zipReader.File) == 0 {
			return nil, errors.New("zip: archive is empty")
		}
		return zipReader.File[0].Open()
	default:
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, errors.New("7z: archive is empty")
		}
		return r.File[0].Open()
	}
}
