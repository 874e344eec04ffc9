package domain

import (
	"cmp"
	"fmt"
)

// PackageCoordinate identifies one version of an external package.
type PackageCoordinate struct {
	Publisher InternedString `json:"publisher" yaml:"publisher"`
	Project   InternedString `json:"project" yaml:"project"`
	Version   InternedString `json:"version" yaml:"version"`
}

// PackageKey identifies a package regardless of its version.
type PackageKey struct {
	Publisher InternedString
	Project   InternedString
}

// NewPackageCoordinate creates a coordinate from its raw parts.
func NewPackageCoordinate(publisher, project, version string) PackageCoordinate {
	return PackageCoordinate{
		Publisher: NewInternedString(publisher),
		Project:   NewInternedString(project),
		Version:   NewInternedString(version),
	}
}

// Package returns the version-less identity of the coordinate.
func (c PackageCoordinate) Package() PackageKey {
	return PackageKey{Publisher: c.Publisher, Project: c.Project}
}

// String renders the coordinate as publisher/project@version.
func (c PackageCoordinate) String() string {
	return fmt.Sprintf("%s/%s@%s", c.Publisher, c.Project, c.Version)
}

// Compare orders coordinates by publisher, project and version.
func (c PackageCoordinate) Compare(other PackageCoordinate) int {
	return cmp.Or(
		cmp.Compare(c.Publisher.String(), other.Publisher.String()),
		cmp.Compare(c.Project.String(), other.Project.String()),
		cmp.Compare(c.Version.String(), other.Version.String()),
	)
}

// String renders the key as publisher/project.
func (k PackageKey) String() string {
	return fmt.Sprintf("%s/%s", k.Publisher, k.Project)
}

// Classpath is an ordered list of artifact locations handed to the toolchain.
// The project's own output folder comes first.
type Classpath []string
