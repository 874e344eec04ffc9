package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/store"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func sampleCache() *domain.BuildCache {
	c := domain.NewBuildCache("javac 21.0.2", &domain.ManifestSnapshot{JavaVersion: "21"})
	c.Upsert(&domain.SourceRecord{
		Path:         "src/A.java",
		LastModified: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Dependencies: []string{"src/B.java"},
		OutputPath:   "outputs/A.class",
	})
	c.Upsert(&domain.SourceRecord{
		Path: "src/B.java",
		Issues: []domain.Diagnostic{
			{Path: "src/B.java", Line: 2, Column: 1, Severity: domain.SeverityWarning, Message: "unchecked"},
		},
	})
	return c
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	path := filepath.Join(t.TempDir(), "outputs", domain.CacheFileName)

	s := store.NewStore(mocks.NewMockLogger(ctrl))
	require.NoError(t, s.Save(path, sampleCache()))

	loaded, err := store.NewStore(mocks.NewMockLogger(ctrl)).Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "javac 21.0.2", loaded.ToolchainVersion)
	assert.Equal(t, []string{"src/A.java", "src/B.java"}, loaded.Paths())

	rec, ok := loaded.Lookup("src/A.java")
	require.True(t, ok)
	assert.Equal(t, "src/A.java", rec.Path)
	assert.Equal(t, []string{"src/B.java"}, rec.Dependencies)
	assert.Equal(t, "outputs/A.class", rec.OutputPath)

	rec, _ = loaded.Lookup("src/B.java")
	assert.True(t, rec.LastModified.IsZero())
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, domain.SeverityWarning, rec.Issues[0].Severity)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_Load_Missing(t *testing.T) {
	ctrl := gomock.NewController(t)

	cache, err := store.NewStore(mocks.NewMockLogger(ctrl)).Load(filepath.Join(t.TempDir(), "build.json"))
	require.NoError(t, err)
	assert.Nil(t, cache)
}

func TestStore_Load_Malformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	path := filepath.Join(t.TempDir(), "build.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sourceFiles": [`), domain.FilePerm))

	cache, err := store.NewStore(mockLogger).Load(path)
	require.NoError(t, err)
	assert.Nil(t, cache)
}

func TestStore_Save_SkipsIdenticalContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	path := filepath.Join(t.TempDir(), "build.json")

	s := store.NewStore(mocks.NewMockLogger(ctrl))
	require.NoError(t, s.Save(path, sampleCache()))

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, old, old))

	loaded, err := s.Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(path, loaded))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "identical cache must not be rewritten")

	loaded.Remove("src/B.java")
	require.NoError(t, s.Save(path, loaded))

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.ModTime().Equal(old))
}

func TestStore_Save_Unwritable(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "outputs")
	require.NoError(t, os.WriteFile(blocker, nil, domain.FilePerm))

	err := store.NewStore(mocks.NewMockLogger(ctrl)).Save(filepath.Join(blocker, "build.json"), sampleCache())
	require.ErrorContains(t, err, domain.ErrCacheWriteFailed.Error())
}
