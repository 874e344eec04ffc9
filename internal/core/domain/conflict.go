package domain

import (
	"strings"
)

// PackageConflict is one coordinate of a package reached in more than one version.
type PackageConflict struct {
	Coordinate PackageCoordinate
	// Chain lists the packages that pulled Coordinate in, starting at a declared dependency.
	// It is empty when the project declares Coordinate itself.
	Chain []PackageCoordinate
}

// String renders the coordinate with its provenance.
func (c PackageConflict) String() string {
	if len(c.Chain) == 0 {
		return c.Coordinate.String() + " (declared by this project)"
	}
	names := make([]string, len(c.Chain))
	for i, coord := range c.Chain {
		names[i] = coord.String()
	}
	return c.Coordinate.String() + " (pulled in by " + strings.Join(names, " -> ") + ")"
}

// PackageConflictError reports every conflicting coordinate of a dependency closure.
type PackageConflictError struct {
	// Conflicts are sorted by coordinate.
	Conflicts []PackageConflict
}

// Error implements the error interface.
func (e *PackageConflictError) Error() string {
	var b strings.Builder
	b.WriteString(ErrPackageConflict.Error())
	b.WriteString(":")
	for _, c := range e.Conflicts {
		b.WriteString("\n  ")
		b.WriteString(c.String())
	}
	return b.String()
}

// Unwrap returns the conflict sentinel.
func (e *PackageConflictError) Unwrap() error {
	return ErrPackageConflict
}
