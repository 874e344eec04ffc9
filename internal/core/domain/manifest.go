package domain

import (
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Manifest is the project description read from project.json or project.yaml.
type Manifest struct {
	Publisher string
	Project   string
	Version   string
	Java      *JavaConfig
}

// JavaConfig holds the java block of a manifest with defaults applied.
type JavaConfig struct {
	// Version is the target language version, for example "17" or "1.8".
	Version string
	// OutputFolder is relative to the project root.
	OutputFolder string
	// SourceFiles are the include patterns for compilation units.
	SourceFiles []string
	// MaximumErrors is handed to the toolchain when positive.
	MaximumErrors int
	// MaximumWarnings is handed to the toolchain when positive.
	MaximumWarnings int
	// BootClasspath is the runtime library used for legacy targets.
	BootClasspath string
	// Dependencies are the declared external packages.
	Dependencies []PackageCoordinate
}

// Coordinate returns the coordinate the project itself is published under.
func (m *Manifest) Coordinate() PackageCoordinate {
	return NewPackageCoordinate(m.Publisher, m.Project, m.Version)
}

// Snapshot returns the part of the configuration whose change invalidates the build cache.
func (c *JavaConfig) Snapshot() *ManifestSnapshot {
	return &ManifestSnapshot{
		JavaVersion:  c.Version,
		Dependencies: slices.Clone(c.Dependencies),
	}
}

// IsLegacyTarget reports whether the target version predates the module system
// and still accepts a boot classpath.
func (c *JavaConfig) IsLegacyTarget() bool {
	switch c.Version {
	case "1.5", "1.6", "1.7", "1.8", "5", "6", "7", "8":
		return true
	default:
		return false
	}
}

// ManifestSnapshot is the manifest state recorded in the build cache.
type ManifestSnapshot struct {
	JavaVersion  string              `json:"javaVersion,omitzero"`
	Dependencies []PackageCoordinate `json:"dependencies,omitzero"`
}

// Equal reports whether two snapshots describe the same configuration.
func (s *ManifestSnapshot) Equal(other *ManifestSnapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.JavaVersion == other.JavaVersion && slices.Equal(s.Dependencies, other.Dependencies)
}

// Fingerprint returns a stable digest of the snapshot for log output.
func (s *ManifestSnapshot) Fingerprint() string {
	if s == nil {
		return ""
	}
	d := xxhash.New()
	_, _ = d.WriteString(s.JavaVersion)
	for _, dep := range s.Dependencies {
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(dep.String())
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// Clone returns a deep copy of the snapshot.
func (s *ManifestSnapshot) Clone() *ManifestSnapshot {
	if s == nil {
		return nil
	}
	return &ManifestSnapshot{JavaVersion: s.JavaVersion, Dependencies: slices.Clone(s.Dependencies)}
}
