// Package repository reads external packages from a folder-based artifact repository.
//
// A package lives in <root>/<publisher>/<project>/<version>/ and holds the compiled
// <project>.jar next to an optional project.json or project.yaml declaring its own dependencies.
package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.PackageRepository = (*Repository)(nil)
	_ ports.RepositoryOpener  = (*Opener)(nil)
)

// ManifestReader reads a manifest from a folder without requiring a java block.
type ManifestReader interface {
	Read(dir string) (*domain.Manifest, error)
}

// Opener implements ports.RepositoryOpener.
type Opener struct {
	manifests ManifestReader
}

// NewOpener creates a new Opener reading package manifests with the given reader.
func NewOpener(manifests ManifestReader) *Opener {
	return &Opener{manifests: manifests}
}

// Open returns the repository stored below root.
func (o *Opener) Open(root string) ports.PackageRepository {
	return NewRepository(root, o.manifests)
}

// Repository implements ports.PackageRepository on the file system.
// Package manifests are read once per repository.
type Repository struct {
	root      string
	manifests ManifestReader
	mu        sync.Mutex
	deps      map[domain.PackageCoordinate][]domain.PackageCoordinate
}

// NewRepository creates a new Repository rooted at root.
func NewRepository(root string, manifests ManifestReader) *Repository {
	return &Repository{
		root:      root,
		manifests: manifests,
		deps:      make(map[domain.PackageCoordinate][]domain.PackageCoordinate),
	}
}

// Dependencies returns the packages the given package declares in its manifest.
// A package without a manifest, including one missing from the repository, has none.
func (r *Repository) Dependencies(ctx context.Context, coord domain.PackageCoordinate) ([]domain.PackageCoordinate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	deps, ok := r.deps[coord]
	r.mu.Unlock()
	if ok {
		return deps, nil
	}

	dir := r.versionDir(coord)
	if hasManifest(dir) {
		m, err := r.manifests.Read(dir)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryReadFailed.Error()), "package", coord.String())
		}
		if m.Java != nil {
			deps = m.Java.Dependencies
		}
	}

	r.mu.Lock()
	r.deps[coord] = deps
	r.mu.Unlock()
	return deps, nil
}

// Artifact walks publisher, project and version folders down to the compiled artifact.
// The first missing level is reported together with the folder it was expected in.
func (r *Repository) Artifact(coord domain.PackageCoordinate) (string, error) {
	publisherDir := filepath.Join(r.root, coord.Publisher.String())
	if err := r.expectDir(publisherDir); err != nil {
		return "", r.notFound(err, domain.ErrPublisherNotFound, "publisher", coord.Publisher.String(), r.root)
	}

	projectDir := filepath.Join(publisherDir, coord.Project.String())
	if err := r.expectDir(projectDir); err != nil {
		return "", r.notFound(err, domain.ErrProjectNotFound, "project", coord.Project.String(), publisherDir)
	}

	versionDir := filepath.Join(projectDir, coord.Version.String())
	if err := r.expectDir(versionDir); err != nil {
		return "", r.notFound(err, domain.ErrVersionNotFound, "version", coord.Version.String(), projectDir)
	}

	artifact := filepath.Join(versionDir, coord.Project.String()+domain.PackageArtifactExtension)
	info, err := os.Stat(artifact)
	if err != nil || info.IsDir() {
		if err == nil {
			err = os.ErrNotExist
		}
		return "", r.notFound(err, domain.ErrArtifactNotFound, "artifact", filepath.Base(artifact), versionDir)
	}
	return artifact, nil
}

func (r *Repository) versionDir(coord domain.PackageCoordinate) string {
	return filepath.Join(r.root, coord.Publisher.String(), coord.Project.String(), coord.Version.String())
}

func hasManifest(dir string) bool {
	for _, name := range []string{domain.ManifestFileName, domain.ManifestYAMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func (r *Repository) expectDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return os.ErrNotExist
	}
	return nil
}

// notFound reports a missing level. Failures other than absence are read errors.
func (r *Repository) notFound(cause, sentinel error, level, name, container string) error {
	if !errors.Is(cause, os.ErrNotExist) {
		return zerr.With(zerr.Wrap(cause, domain.ErrRepositoryReadFailed.Error()), level, name)
	}
	err := zerr.With(sentinel, level, name)
	return zerr.With(err, "container", container)
}
