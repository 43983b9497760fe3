package cashbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadBook opens and decodes the journal at path. A missing file yields an
// empty Book created with opts.
func LoadBook(path string, opts ...Option) (*Book, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBook(opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", path, err)
	}
	defer f.Close()

	b, err := DecodeBook(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", path, err)
	}
	return b, nil
}

// SaveBook writes the journal of b to path. The file is first written next
// to path then renamed, so that a failure never leaves a truncated journal.
func SaveBook(path string, b *Book) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for book %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error opening book file %q for writing: %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := EncodeBook(tmp, b); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing book file %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error replacing book file %q: %w", path, err)
	}
	return nil
}

// FileStore keeps a Book in the journal file at Path.
type FileStore struct {
	Path    string
	Options []Option // Options are applied to every Book loaded.
}

// Load reads the Book from the journal, see LoadBook.
func (s FileStore) Load() (*Book, error) { return LoadBook(s.Path, s.Options...) }

// Save writes b to the journal, see SaveBook.
func (s FileStore) Save(b *Book) error { return SaveBook(s.Path, b) }
