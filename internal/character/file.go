package character

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	charerr "github.com/KirkDiggler/charsheet/internal/errors"
)

// Extension is the file extension of saved characters
const Extension = ".char"

// FileName returns the file name a character with the given name is saved under
func FileName(name string) string {
	if strings.HasSuffix(name, Extension) {
		return name
	}
	return name + Extension
}

// Save writes the encoded character to filename, defaulting to the character's name.
// The extension is appended when missing. It returns the path written.
func (c *Character) Save(filename string) (path string, err error) {
	if filename == "" {
		filename = c.Name()
	}
	if filename == "" {
		return "", charerr.InvalidArgument("character has no name to save under")
	}
	path = FileName(filename)

	f, err := os.Create(path)
	if err != nil {
		return "", charerr.Wrapf(err, "failed to create %s", path).WithMeta("file", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = charerr.Wrapf(closeErr, "failed to close %s", path).WithMeta("file", path)
		}
	}()

	if _, err = c.WriteTo(f); err != nil {
		return "", charerr.Wrapf(err, "failed to write %s", path).WithMeta("file", path)
	}

	return path, nil
}

// Save writes the character to a file named after it
func Save(c *Character) (string, error) {
	if c == nil {
		return "", charerr.InvalidArgument("character cannot be nil")
	}
	return c.Save("")
}

// Load reads a character from a .char file
func Load(path string) (*Character, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, charerr.WrapWithCode(err, charerr.CodeNotFound, "character file not found").
				WithMeta("file", path)
		}
		return nil, charerr.Wrapf(err, "failed to open %s", path).WithMeta("file", path)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, charerr.Wrapf(err, "failed to load %s", path).WithMeta("file", path)
	}
	return c, nil
}
