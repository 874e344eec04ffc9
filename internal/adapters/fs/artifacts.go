package fs

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*ArtifactStore)(nil)

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	packageDecl  = regexp.MustCompile(`(?m)^\s*package\s+([\p{L}_$][\p{L}\p{N}_$]*(?:\s*\.\s*[\p{L}_$][\p{L}\p{N}_$]*)*)\s*;`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// ArtifactStore implements ports.ArtifactStore for class files in the output folder.
type ArtifactStore struct{}

// NewArtifactStore creates a new ArtifactStore.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{}
}

// Locate returns outputFolder/<package path>/<Name>.class for the unit.
// The package comes from the unit's package declaration; units without one compile into the output folder itself.
func (a *ArtifactStore) Locate(unit domain.SourceFile, outputFolder string) (string, error) {
	//nolint:gosec // path comes from the source scan
	data, err := os.ReadFile(unit.AbsPath)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", unit.Path)
	}

	dir := filepath.ToSlash(filepath.Clean(outputFolder))
	if pkg := PackageOf(data); pkg != "" {
		dir = path.Join(dir, strings.ReplaceAll(pkg, ".", "/"))
	}
	return path.Join(dir, unit.SimpleName()+domain.ClassExtension), nil
}

// PackageOf returns the dotted package name declared in a source file, or "" if there is none.
func PackageOf(src []byte) string {
	text := blockComment.ReplaceAll(src, nil)
	text = lineComment.ReplaceAll(text, nil)
	m := packageDecl.FindSubmatch(text)
	if m == nil {
		return ""
	}
	return whitespace.ReplaceAllString(string(m[1]), "")
}

// Exists reports whether the artifact at the project-relative path is present.
func (a *ArtifactStore) Exists(root, artifact string) bool {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(artifact)))
	return err == nil && !info.IsDir()
}

// Remove deletes the class file and the Name$*.class files of its nested classes.
func (a *ArtifactStore) Remove(root, artifact string) error {
	primary := filepath.Join(root, filepath.FromSlash(artifact))
	base := strings.TrimSuffix(filepath.Base(primary), domain.ClassExtension)

	nested, err := filepath.Glob(filepath.Join(filepath.Dir(primary), escapeGlob(base)+"$*"+domain.ClassExtension))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactRemoveFailed.Error()), "artifact", artifact)
	}

	var errs error
	for _, p := range append([]string{primary}, nested...) {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrArtifactRemoveFailed.Error()), "path", p))
		}
	}
	return errs
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `\`, `\\`)
	return r.Replace(s)
}
