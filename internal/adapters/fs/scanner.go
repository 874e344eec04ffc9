package fs

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceScanner = (*Scanner)(nil)

// Scanner implements ports.SourceScanner on top of the Walker.
type Scanner struct {
	walker *Walker
}

// NewScanner creates a new Scanner.
func NewScanner(walker *Walker) *Scanner {
	return &Scanner{walker: walker}
}

// Scan returns every file below root that matches one of the patterns, sorted by path.
func (s *Scanner) Scan(root string, patterns, excludes []string) ([]domain.SourceFile, error) {
	compiled := make([]*Pattern, 0, len(patterns))
	for _, raw := range patterns {
		p, err := CompilePattern(raw)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, p)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceScanFailed.Error()), "root", root)
	}

	var files []domain.SourceFile
	for entry, err := range s.walker.WalkFiles(absRoot, excludes) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceScanFailed.Error()), "root", root)
		}
		if !slices.ContainsFunc(compiled, func(p *Pattern) bool { return p.Match(entry.Rel) }) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceScanFailed.Error()), "path", entry.Rel)
		}
		files = append(files, domain.SourceFile{
			Path:    entry.Rel,
			AbsPath: filepath.Join(absRoot, filepath.FromSlash(entry.Rel)),
			ModTime: info.ModTime(),
		})
	}

	slices.SortFunc(files, func(a, b domain.SourceFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}
