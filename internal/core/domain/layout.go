package domain

import (
	"os"
	"path/filepath"
)

const (
	// ManifestFileName is the name of the JSON project manifest.
	ManifestFileName = "project.json"

	// ManifestYAMLFileName is the name of the YAML project manifest.
	ManifestYAMLFileName = "project.yaml"

	// CacheFileName is the name of the build cache inside the output folder.
	CacheFileName = "build.json"

	// DefaultOutputFolder is the folder compiled classes are written to.
	DefaultOutputFolder = "outputs"

	// SourceExtension is the file extension of compilation units.
	SourceExtension = ".java"

	// DefaultSourcePattern matches every compilation unit below the project folder.
	DefaultSourcePattern = "**/*" + SourceExtension

	// ClassExtension is the file extension of compiled classes.
	ClassExtension = ".class"

	// PackageArtifactExtension is the extension of compiled artifacts in the package repository.
	PackageArtifactExtension = ".jar"

	// KilnDirName is the name of the per-user kiln folder.
	KilnDirName = ".kiln"

	// PackagesDirName is the name of the package repository inside the kiln folder.
	PackagesDirName = "packages"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CachePath returns the location of the build cache for a project.
func CachePath(root, outputFolder string) string {
	return filepath.Join(root, outputFolder, CacheFileName)
}

// DefaultRepositoryPath returns the default package repository root.
// It joins the user's home folder, .kiln and packages.
func DefaultRepositoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(KilnDirName, PackagesDirName)
	}
	return filepath.Join(home, KilnDirName, PackagesDirName)
}
