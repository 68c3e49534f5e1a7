package commands

//go:generate mockgen -destination=mock/mock.go -package=mockcommands -source=store.go

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/KirkDiggler/charsheet/internal/character"
	charerr "github.com/KirkDiggler/charsheet/internal/errors"
)

// Store finds, reads and writes .char files
type Store interface {
	// Load reads the character stored under ref
	Load(ref string) (*character.Character, error)

	// Save writes the character under ref and returns the path written
	Save(c *character.Character, ref string) (string, error)

	// Exists reports whether a character is stored under ref
	Exists(ref string) (bool, error)

	// List returns the paths of every stored character, sorted
	List() ([]string, error)
}

// FileStore keeps characters as .char files in one directory
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path resolves ref against the store directory and appends the extension when missing
func (s *FileStore) Path(ref string) string {
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(s.dir, ref)
	}
	return character.FileName(ref)
}

// Load reads the character stored under ref
func (s *FileStore) Load(ref string) (*character.Character, error) {
	return character.Load(s.Path(ref))
}

// Save writes the character under ref
func (s *FileStore) Save(c *character.Character, ref string) (string, error) {
	if c == nil {
		return "", charerr.InvalidArgument("character cannot be nil")
	}
	return c.Save(s.Path(ref))
}

// Exists reports whether the .char file for ref is present
func (s *FileStore) Exists(ref string) (bool, error) {
	path := s.Path(ref)
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, charerr.Wrapf(err, "failed to stat %s", path).WithMeta("file", path)
}

// List returns the paths of every .char file in the store directory
func (s *FileStore) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*"+character.Extension))
	if err != nil {
		return nil, charerr.Wrapf(err, "failed to list %s", s.dir)
	}
	sort.Strings(paths)
	return paths, nil
}
