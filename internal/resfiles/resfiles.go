// Package resfiles locates the family of files around a simulator
// case: the DATA deck, the binary summary files and the optional zone
// map. Sibling files are resolved lazily so a missing UNSMRY only
// errors when summary data is actually requested.
package resfiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/berland/res2df/internal/deck"
	"github.com/berland/res2df/internal/zonemap"
)

// File resolution errors.
var (
	ErrMissingFile = errors.New("file not found for case")
)

// ResdataFiles is the access point for everything belonging to one
// simulator case.
type ResdataFiles struct {
	base string

	mu     sync.Mutex
	parsed *deck.Deck
}

// New builds a ResdataFiles from a DATA file path or a case basename.
// The .DATA extension is optional.
func New(path string) *ResdataFiles {
	base := path
	if ext := filepath.Ext(path); strings.EqualFold(ext, ".DATA") {
		base = strings.TrimSuffix(path, ext)
	}

	return &ResdataFiles{base: base}
}

// Base returns the case path without extension.
func (r *ResdataFiles) Base() string {
	return r.base
}

// DataPath returns the path to the DATA file.
func (r *ResdataFiles) DataPath() string {
	return r.base + ".DATA"
}

// SmspecPath returns the path to the summary header file, erroring
// when it does not exist.
func (r *ResdataFiles) SmspecPath() (string, error) {
	return r.existing(r.base + ".SMSPEC")
}

// UnsmryPath returns the path to the unified summary data file,
// erroring when it does not exist.
func (r *ResdataFiles) UnsmryPath() (string, error) {
	return r.existing(r.base + ".UNSMRY")
}

func (r *ResdataFiles) existing(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissingFile, path)
	}

	return path, nil
}

// Deck parses the DATA file with includes resolved. The parse result
// is cached.
func (r *ResdataFiles) Deck() (*deck.Deck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.parsed != nil {
		return r.parsed, nil
	}

	path, err := r.existing(r.DataPath())
	if err != nil {
		return nil, err
	}

	parsed, err := deck.ParseFile(path)
	if err != nil {
		return nil, err
	}

	r.parsed = parsed

	return parsed, nil
}

// ZoneMap loads the default zone file next to the DATA file. Returns
// nil without error when no zone file exists.
func (r *ResdataFiles) ZoneMap() (zonemap.ZoneMap, error) {
	return zonemap.LoadDefault(r.DataPath())
}

// Sibling builds a ResdataFiles for another case referenced from this
// one, e.g. a restart parent. Relative references resolve against
// this case's directory.
func (r *ResdataFiles) Sibling(ref string) *ResdataFiles {
	if filepath.IsAbs(ref) {
		return New(ref)
	}

	return New(filepath.Join(filepath.Dir(r.base), ref))
}
