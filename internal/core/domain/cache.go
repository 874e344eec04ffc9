package domain

import (
	"maps"
	"slices"
	"time"
)

// SourceRecord is the cached state of one compilation unit.
type SourceRecord struct {
	// Path is the key of the record inside BuildCache.SourceFiles.
	Path string `json:"-"`
	// LastModified is unset when the unit must be compiled on the next run.
	LastModified time.Time `json:"lastModified,omitzero"`
	// Dependencies lists project-relative paths this unit is believed to reference.
	Dependencies []string `json:"dependencies,omitzero"`
	// Issues are the diagnostics from the most recent compile of this unit.
	Issues []Diagnostic `json:"issues,omitzero"`
	// OutputPath is the project-relative location of the primary compiled class.
	OutputPath string `json:"outputPath,omitzero"`
}

// HasErrors reports whether the stored diagnostics contain an error.
func (r *SourceRecord) HasErrors() bool {
	return HasErrors(r.Issues)
}

// BuildCache is the persisted state of the previous build.
type BuildCache struct {
	ToolchainVersion string                   `json:"toolchainVersion,omitzero"`
	Manifest         *ManifestSnapshot        `json:"manifest,omitzero"`
	SourceFiles      map[string]*SourceRecord `json:"sourceFiles,omitzero"`
}

// NewBuildCache creates an empty cache stamped with the given toolchain and manifest state.
func NewBuildCache(toolchainVersion string, snapshot *ManifestSnapshot) *BuildCache {
	return &BuildCache{
		ToolchainVersion: toolchainVersion,
		Manifest:         snapshot,
		SourceFiles:      make(map[string]*SourceRecord),
	}
}

// Lookup returns the record stored for path. A nil cache holds no records.
func (c *BuildCache) Lookup(path string) (*SourceRecord, bool) {
	if c == nil {
		return nil, false
	}
	rec, ok := c.SourceFiles[path]
	return rec, ok
}

// Upsert stores rec under its path, replacing any previous record.
func (c *BuildCache) Upsert(rec *SourceRecord) {
	if c.SourceFiles == nil {
		c.SourceFiles = make(map[string]*SourceRecord)
	}
	c.SourceFiles[rec.Path] = rec
}

// Remove deletes the record stored for path.
func (c *BuildCache) Remove(path string) {
	delete(c.SourceFiles, path)
}

// Paths returns the sorted keys of every stored record.
func (c *BuildCache) Paths() []string {
	return slices.Sorted(maps.Keys(c.SourceFiles))
}

// Matches reports whether the cache was produced by the given toolchain and configuration.
func (c *BuildCache) Matches(toolchainVersion string, snapshot *ManifestSnapshot) bool {
	return c.ToolchainVersion == toolchainVersion && c.Manifest.Equal(snapshot)
}

// Normalize fills record paths from their map keys after decoding.
func (c *BuildCache) Normalize() {
	if c.SourceFiles == nil {
		c.SourceFiles = make(map[string]*SourceRecord)
	}
	for path, rec := range c.SourceFiles {
		if rec == nil {
			delete(c.SourceFiles, path)
			continue
		}
		rec.Path = path
	}
}
