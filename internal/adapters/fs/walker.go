// Package fs provides file system adapters for discovering sources and managing compiled classes.
package fs

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git": true,
	".jj":  true,
}

var errStopped = errors.New("walk stopped")

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Entry is a file found by the Walker.
type Entry struct {
	// Rel is the slash-separated path relative to the walked root.
	Rel string
	fs.DirEntry
}

// WalkFiles yields every file below root.
// Folders in excludes are relative to root and skipped with everything they contain.
// The walk stops at the first error, which is yielded last.
func (w *Walker) WalkFiles(root string, excludes []string) iter.Seq2[Entry, error] {
	skip := make(map[string]bool, len(excludes))
	for _, ex := range excludes {
		skip[filepath.ToSlash(filepath.Clean(ex))] = true
	}

	return func(yield func(Entry, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if rel != "." && (skippedDirs[d.Name()] || skip[rel]) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(Entry{Rel: rel, DirEntry: d}, nil) {
				return errStopped
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopped) {
			yield(Entry{}, err)
		}
	}
}

// IsWithin reports whether the slash-separated relative path lies in one of the folders.
func IsWithin(rel string, folders []string) bool {
	for _, f := range folders {
		f = filepath.ToSlash(filepath.Clean(f))
		if rel == f || strings.HasPrefix(rel, f+"/") {
			return true
		}
	}
	return false
}
