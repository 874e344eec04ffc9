package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// PackageRepository defines the interface for reading the external package repository.
//
//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type PackageRepository interface {
	// Dependencies returns the packages the given package declares.
	// A package without a manifest has no dependencies.
	Dependencies(ctx context.Context, coord domain.PackageCoordinate) ([]domain.PackageCoordinate, error)

	// Artifact returns the location of the compiled artifact of the given package.
	// A missing publisher, project, version or artifact is reported as the matching not-found error.
	Artifact(coord domain.PackageCoordinate) (string, error)
}

// RepositoryOpener opens the package repository rooted at a folder.
type RepositoryOpener interface {
	// Open returns the repository stored below root.
	Open(root string) PackageRepository
}
