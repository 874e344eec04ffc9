// Package depscan estimates the references between compilation units.
package depscan

import (
	"os"
	"slices"
	"unicode"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyExtractor = (*Extractor)(nil)

// Extractor finds references by matching identifier tokens against unit names.
//
// A unit references another unit when the other unit's simple name appears as
// a whole word anywhere in its text, comments and string literals included.
// The result over-approximates the real dependencies.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements ports.DependencyExtractor.
func (e *Extractor) Extract(unit domain.SourceFile, all []domain.SourceFile) ([]string, error) {
	data, err := os.ReadFile(unit.AbsPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", unit.Path)
	}

	words := Identifiers(data)

	var deps []string
	for _, other := range all {
		if other.Path == unit.Path {
			continue
		}
		if _, ok := words[other.SimpleName()]; ok {
			deps = append(deps, other.Path)
		}
	}
	slices.Sort(deps)
	return slices.Compact(deps), nil
}

// Identifiers returns the set of identifier words in src.
// Identifiers are runs of letters, digits, '_' and '$'.
func Identifiers(src []byte) map[string]struct{} {
	words := make(map[string]struct{})
	text := string(src)
	start := -1
	for i, r := range text {
		if isIdentRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words[text[start:i]] = struct{}{}
			start = -1
		}
	}
	if start >= 0 {
		words[text[start:]] = struct{}{}
	}
	return words
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}
