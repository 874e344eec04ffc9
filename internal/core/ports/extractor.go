package ports

import "go.trai.ch/kiln/internal/core/domain"

// DependencyExtractor estimates which compilation units a unit references.
//
//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type DependencyExtractor interface {
	// Extract returns the sorted relative paths of the units in all that unit references.
	// The unit itself is never part of the result.
	Extract(unit domain.SourceFile, all []domain.SourceFile) ([]string, error)
}
