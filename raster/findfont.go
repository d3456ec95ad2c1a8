package raster

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinFontName names the embedded Go Regular font.
const BuiltinFontName = "goregular"

// FontSource is raw font file data and where it was found.
type FontSource struct {
	// Name is the name the font was requested by.
	Name string

	// Path is the file the data was read from, empty for the embedded font.
	Path string

	// Data is the font file contents.
	Data []byte
}

// FindFont resolves name to font data. An empty name or BuiltinFontName
// returns the embedded Go Regular font. A name that is an existing file is
// read directly. Anything else is searched for among the system fonts by
// file name, with or without extension.
func FindFont(name string) (*FontSource, error) {
	if name == "" || strings.EqualFold(name, BuiltinFontName) {
		return &FontSource{Name: BuiltinFontName, Data: goregular.TTF}, nil
	}

	path := name
	if _, err := os.Stat(name); err != nil {
		found, ferr := findfont.Find(name)
		if ferr != nil || found == "" {
			return nil, fmt.Errorf("%w: %q", ErrFontNotFound, name)
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrFontNotFound, name)
		}
		return nil, fmt.Errorf("raster: read font %q: %w", path, err)
	}
	return &FontSource{Name: name, Path: path, Data: data}, nil
}

// SystemFonts lists the base names of the font files installed on the system,
// sorted and without duplicates.
func SystemFonts() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range findfont.List() {
		base := filepath.Base(p)
		if !seen[base] {
			seen[base] = true
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names
}
