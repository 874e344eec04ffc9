package ports

import "go.trai.ch/kiln/internal/core/domain"

// SourceScanner defines the interface for discovering compilation units.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type SourceScanner interface {
	// Scan returns every file below root matching one of the patterns, sorted by path.
	// Folders listed in excludes (relative to root) are skipped entirely.
	Scan(root string, patterns, excludes []string) ([]domain.SourceFile, error)
}
