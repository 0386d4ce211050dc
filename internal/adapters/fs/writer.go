// Package fs provides filesystem adapters backed by afero.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/fpdgen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileWriter = (*Writer)(nil)

// Writer writes generated files, leaving files whose content is unchanged untouched.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a new Writer on fs.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// WriteFile creates the parent directories of path and writes data to it. Existing files
// with the same content are not rewritten, so their modification time is preserved.
func (w *Writer) WriteFile(path string, data []byte) (bool, error) {
	same, err := w.sameContent(path, data)
	if err != nil {
		return false, err
	}
	if same {
		return false, nil
	}

	if err := w.fs.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(path))
	}
	if err := afero.WriteFile(w.fs, path, data, domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return true, nil
}

// ComputeFileHash computes the XXHash of a file's content.
func (w *Writer) ComputeFileHash(path string) (uint64, error) {
	f, err := w.fs.Open(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

func (w *Writer) sameContent(path string, data []byte) (bool, error) {
	info, err := w.fs.Stat(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	if info.IsDir() {
		return false, zerr.With(zerr.New("path is a directory"), "path", path)
	}
	if info.Size() != int64(len(data)) {
		return false, nil
	}

	existing, err := w.ComputeFileHash(path)
	if err != nil {
		return false, err
	}
	return existing == xxhash.Sum64(data), nil
}
