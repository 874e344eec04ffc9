// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/kiln/internal/core/domain"

// ManifestLoader defines the interface for loading the project manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads project.json or project.yaml from the given project folder.
	// Malformed optional fields fall back to their defaults.
	Load(root string) (*domain.Manifest, error)
}
