package ports

import "go.trai.ch/kiln/internal/core/domain"

// ArtifactStore defines the interface for locating and removing compiled classes.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifacts.go -destination=mocks/mock_artifacts.go -package=mocks
type ArtifactStore interface {
	// Locate returns the project-relative path of the primary class the unit compiles to.
	Locate(unit domain.SourceFile, outputFolder string) (string, error)

	// Exists reports whether the artifact at the project-relative path is present.
	Exists(root, artifact string) bool

	// Remove deletes the artifact and the nested classes compiled next to it.
	// A missing artifact is not an error.
	Remove(root, artifact string) error
}
