package domain

import (
	"path"
	"strings"
	"time"
)

// SourceFile is a compilation unit discovered in the project folder.
type SourceFile struct {
	// Path is the slash-separated path relative to the project root. It identifies the unit.
	Path string
	// AbsPath is the location of the file on disk.
	AbsPath string
	// ModTime is the modification timestamp observed during this run.
	ModTime time.Time
}

// SimpleName returns the file name without its extension.
func (s SourceFile) SimpleName() string {
	return SimpleName(s.Path)
}

// SimpleName returns the base name of a slash-separated path without its extension.
func SimpleName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
