package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/config"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm))
}

func TestLoader_Load_JSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	writeFile(t, dir, domain.ManifestFileName, `{
		"publisher": "acme",
		"project": "app",
		"version": "1.2.0",
		"java": {
			"version": 17,
			"outputFolder": "build/classes",
			"sourceFiles": ["src/**/*.java", "gen/*.java"],
			"maximumErrors": 50,
			"maximumWarnings": 10,
			"dependencies": [{"publisher": "acme", "project": "util", "version": "2.0"}]
		}
	}`)

	m, err := config.NewLoader(mockLogger).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "acme", m.Publisher)
	assert.Equal(t, "app", m.Project)
	assert.Equal(t, "acme/app@1.2.0", m.Coordinate().String())
	require.NotNil(t, m.Java)
	assert.Equal(t, "17", m.Java.Version)
	assert.Equal(t, "build/classes", m.Java.OutputFolder)
	assert.Equal(t, []string{"src/**/*.java", "gen/*.java"}, m.Java.SourceFiles)
	assert.Equal(t, 50, m.Java.MaximumErrors)
	assert.Equal(t, 10, m.Java.MaximumWarnings)
	assert.Equal(t, []domain.PackageCoordinate{domain.NewPackageCoordinate("acme", "util", "2.0")}, m.Java.Dependencies)
}

func TestLoader_Load_YAML(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	writeFile(t, dir, domain.ManifestYAMLFileName, `
publisher: acme
project: legacy
version: 0.1
java:
  version: 1.8
  bootClasspath: /opt/jdk8/jre/lib/rt.jar
  dependencies:
    - publisher: acme
      project: util
      version: 1
`)

	m, err := config.NewLoader(mockLogger).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "0.1", m.Version)
	assert.Equal(t, "1.8", m.Java.Version)
	assert.True(t, m.Java.IsLegacyTarget())
	assert.Equal(t, "/opt/jdk8/jre/lib/rt.jar", m.Java.BootClasspath)
	assert.Equal(t, domain.DefaultOutputFolder, m.Java.OutputFolder)
	assert.Equal(t, []string{domain.DefaultSourcePattern}, m.Java.SourceFiles)
	assert.Equal(t, []domain.PackageCoordinate{domain.NewPackageCoordinate("acme", "util", "1")}, m.Java.Dependencies)
}

func TestLoader_Load_JSONTakesPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	writeFile(t, dir, domain.ManifestFileName, `{"project": "from-json", "java": {}}`)
	writeFile(t, dir, domain.ManifestYAMLFileName, "project: from-yaml\njava: {}\n")

	m, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-json", m.Project)
}

func TestLoader_Load_MalformedFieldsFallBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	// version, outputFolder, sourceFiles, maximumErrors, one dependency
	mockLogger.EXPECT().Warn(gomock.Any()).Times(5)

	dir := t.TempDir()
	writeFile(t, dir, domain.ManifestFileName, `{
		"java": {
			"version": ["17"],
			"outputFolder": "../outside",
			"sourceFiles": 42,
			"maximumErrors": -3,
			"maximumWarnings": 7,
			"dependencies": [{"publisher": "acme", "project": "util"}, {"publisher": "acme", "project": "web", "version": "3"}]
		}
	}`)

	m, err := config.NewLoader(mockLogger).Load(dir)
	require.NoError(t, err)

	assert.Empty(t, m.Java.Version)
	assert.Equal(t, domain.DefaultOutputFolder, m.Java.OutputFolder)
	assert.Equal(t, []string{domain.DefaultSourcePattern}, m.Java.SourceFiles)
	assert.Zero(t, m.Java.MaximumErrors)
	assert.Equal(t, 7, m.Java.MaximumWarnings)
	assert.Equal(t, []domain.PackageCoordinate{domain.NewPackageCoordinate("acme", "web", "3")}, m.Java.Dependencies)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, dir string)
		errContains string
	}{
		{
			name:        "missing manifest",
			setup:       func(*testing.T, string) {},
			errContains: domain.ErrManifestNotFound.Error(),
		},
		{
			name: "missing java block",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				writeFile(t, dir, domain.ManifestFileName, `{"project": "app"}`)
			},
			errContains: domain.ErrMissingLanguageConfig.Error(),
		},
		{
			name: "invalid json",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				writeFile(t, dir, domain.ManifestFileName, `{"project": `)
			},
			errContains: domain.ErrManifestParseFailed.Error(),
		},
		{
			name: "invalid yaml",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				writeFile(t, dir, domain.ManifestYAMLFileName, "java: [unclosed\n")
			},
			errContains: domain.ErrManifestParseFailed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)
			mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

			dir := t.TempDir()
			tt.setup(t, dir)

			_, err := config.NewLoader(mockLogger).Load(dir)
			require.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestLoader_Read_WithoutJava(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	writeFile(t, dir, domain.ManifestFileName, `{"publisher": "acme", "project": "util", "version": "1.0"}`)

	m, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Read(dir)
	require.NoError(t, err)
	assert.Nil(t, m.Java)
	assert.Equal(t, "util", m.Project)
}
