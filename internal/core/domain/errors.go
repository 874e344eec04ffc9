package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrManifestNotFound is returned when no project manifest exists in the project folder.
	ErrManifestNotFound = zerr.New("could not find project manifest")

	// ErrManifestReadFailed is returned when the project manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read project manifest")

	// ErrManifestParseFailed is reported when the project manifest is not a valid document.
	ErrManifestParseFailed = zerr.New("failed to parse project manifest")

	// ErrMissingLanguageConfig is returned when the manifest has no java configuration block.
	ErrMissingLanguageConfig = zerr.New("project manifest has no java configuration")

	// ErrNoSourceFiles is returned when no source file matches the configured patterns.
	ErrNoSourceFiles = zerr.New("no source files matched the configured patterns")

	// ErrInvalidPattern is returned when a source file pattern cannot be compiled.
	ErrInvalidPattern = zerr.New("invalid source file pattern")

	// ErrSourceScanFailed is returned when the project folder cannot be enumerated.
	ErrSourceScanFailed = zerr.New("failed to enumerate source files")

	// ErrSourceReadFailed is returned when a source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read source file")

	// ErrPackageConflict is returned when the dependency closure holds more than one
	// version of the same package.
	ErrPackageConflict = zerr.New("conflicting versions of external packages")

	// ErrPublisherNotFound is returned when a publisher folder is missing from the repository.
	ErrPublisherNotFound = zerr.New("publisher folder not found")

	// ErrProjectNotFound is returned when a project folder is missing from its publisher folder.
	ErrProjectNotFound = zerr.New("project folder not found")

	// ErrVersionNotFound is returned when a version folder is missing from its project folder.
	ErrVersionNotFound = zerr.New("version folder not found")

	// ErrArtifactNotFound is returned when a version folder holds no compiled artifact.
	ErrArtifactNotFound = zerr.New("compiled artifact not found")

	// ErrRepositoryReadFailed is returned when the package repository cannot be read.
	ErrRepositoryReadFailed = zerr.New("failed to read package repository")

	// ErrToolchainVersion is returned when the toolchain does not report a version.
	ErrToolchainVersion = zerr.New("failed to determine toolchain version")

	// ErrToolchainInvocation is returned when the toolchain cannot be started or fails
	// without reporting any diagnostic.
	ErrToolchainInvocation = zerr.New("toolchain invocation failed")

	// ErrCacheReadFailed is returned when the build cache exists but cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read build cache")

	// ErrCacheMarshalFailed is returned when the build cache cannot be serialized.
	ErrCacheMarshalFailed = zerr.New("failed to marshal build cache")

	// ErrCacheWriteFailed is returned when the build cache cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write build cache")

	// ErrArtifactRemoveFailed is returned when a stale compiled artifact cannot be deleted.
	ErrArtifactRemoveFailed = zerr.New("failed to remove compiled artifact")

	// ErrInvalidWarningsMode is returned when the warnings flag holds an unknown value.
	ErrInvalidWarningsMode = zerr.New("invalid warnings mode, expected 'show', 'error' or 'hide'")

	// ErrUnsafeOutputFolder is returned when clean would remove a folder outside the project.
	ErrUnsafeOutputFolder = zerr.New("output folder must be a folder inside the project")

	// ErrWatchFailed is returned when the project folder cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch project folder")

	// ErrProgressViewFailed is returned when the live progress view cannot run.
	ErrProgressViewFailed = zerr.New("failed to run progress view")
)

// CompilationFailedError reports that the toolchain produced error diagnostics.
// The CLI uses Errors as its exit code.
type CompilationFailedError struct {
	Errors int
}

// Error implements the error interface.
func (e *CompilationFailedError) Error() string {
	return fmt.Sprintf("compilation failed with %d error(s)", e.Errors)
}
