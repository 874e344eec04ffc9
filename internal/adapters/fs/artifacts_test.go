package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestPackageOf(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"simple", "package com.acme.app;\n\nclass A {}", "com.acme.app"},
		{"after comments", "/* package wrong.one; */\n// package wrong.two;\npackage right . here ;", "right.here"},
		{"annotated", "@Deprecated\npackage legacy;", "legacy"},
		{"default package", "class A {}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fs.PackageOf([]byte(tt.src)))
		})
	}
}

func TestArtifactStore_Locate(t *testing.T) {
	root := t.TempDir()
	store := fs.NewArtifactStore()

	withPkg := domain.SourceFile{Path: "src/B.java", AbsPath: touch(t, root, "src/B.java", "package a.b;\nclass B {}")}
	loc, err := store.Locate(withPkg, "outputs")
	require.NoError(t, err)
	assert.Equal(t, "outputs/a/b/B.class", loc)

	noPkg := domain.SourceFile{Path: "Main.java", AbsPath: touch(t, root, "Main.java", "class Main {}")}
	loc, err = store.Locate(noPkg, "build/classes/")
	require.NoError(t, err)
	assert.Equal(t, "build/classes/Main.class", loc)

	_, err = store.Locate(domain.SourceFile{Path: "Gone.java", AbsPath: filepath.Join(root, "Gone.java")}, "outputs")
	require.ErrorContains(t, err, domain.ErrSourceReadFailed.Error())
}

func TestArtifactStore_ExistsAndRemove(t *testing.T) {
	root := t.TempDir()
	store := fs.NewArtifactStore()

	touch(t, root, "outputs/a/B.class", "")
	touch(t, root, "outputs/a/B$Inner.class", "")
	touch(t, root, "outputs/a/B$1.class", "")
	touch(t, root, "outputs/a/Bar.class", "")

	assert.True(t, store.Exists(root, "outputs/a/B.class"))
	assert.False(t, store.Exists(root, "outputs/a/C.class"))
	assert.False(t, store.Exists(root, "outputs/a"))

	require.NoError(t, store.Remove(root, "outputs/a/B.class"))

	entries, err := os.ReadDir(filepath.Join(root, "outputs", "a"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Bar.class", entries[0].Name())

	require.NoError(t, store.Remove(root, "outputs/a/B.class"), "removing a missing artifact is not an error")
}
