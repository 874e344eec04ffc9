package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestBuildCache_LookupUpsertRemove(t *testing.T) {
	c := domain.NewBuildCache("javac 21", nil)

	_, ok := c.Lookup("a/B.java")
	assert.False(t, ok)

	c.Upsert(&domain.SourceRecord{Path: "a/B.java", Dependencies: []string{"a/C.java"}})
	c.Upsert(&domain.SourceRecord{Path: "a/A.java"})

	rec, ok := c.Lookup("a/B.java")
	require.True(t, ok)
	assert.Equal(t, []string{"a/C.java"}, rec.Dependencies)
	assert.Equal(t, []string{"a/A.java", "a/B.java"}, c.Paths())

	c.Upsert(&domain.SourceRecord{Path: "a/B.java"})
	rec, _ = c.Lookup("a/B.java")
	assert.Empty(t, rec.Dependencies)

	c.Remove("a/B.java")
	_, ok = c.Lookup("a/B.java")
	assert.False(t, ok)
	assert.Equal(t, []string{"a/A.java"}, c.Paths())
}

func TestBuildCache_Matches(t *testing.T) {
	snap := &domain.ManifestSnapshot{
		JavaVersion:  "17",
		Dependencies: []domain.PackageCoordinate{domain.NewPackageCoordinate("p", "x", "1")},
	}
	c := domain.NewBuildCache("javac 17.0.1", snap)

	tests := []struct {
		name      string
		toolchain string
		snapshot  *domain.ManifestSnapshot
		want      bool
	}{
		{"identical", "javac 17.0.1", snap.Clone(), true},
		{"toolchain changed", "javac 21.0.2", snap.Clone(), false},
		{"version changed", "javac 17.0.1", &domain.ManifestSnapshot{JavaVersion: "21", Dependencies: snap.Dependencies}, false},
		{"dependency changed", "javac 17.0.1", &domain.ManifestSnapshot{
			JavaVersion:  "17",
			Dependencies: []domain.PackageCoordinate{domain.NewPackageCoordinate("p", "x", "2")},
		}, false},
		{"snapshot missing", "javac 17.0.1", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Matches(tt.toolchain, tt.snapshot))
		})
	}
}

func TestBuildCache_JSONLayout(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	c := domain.NewBuildCache("javac 21.0.2", &domain.ManifestSnapshot{
		JavaVersion:  "17",
		Dependencies: []domain.PackageCoordinate{domain.NewPackageCoordinate("p", "x", "1")},
	})
	c.Upsert(&domain.SourceRecord{
		Path:         "sources/a/B.java",
		LastModified: ts,
		Dependencies: []string{"sources/a/C.java"},
		Issues: []domain.Diagnostic{
			{Path: "sources/a/B.java", Line: 3, Column: 5, Severity: domain.SeverityError, Message: "bad"},
		},
		OutputPath: "outputs/a/B.class",
	})
	c.Upsert(&domain.SourceRecord{Path: "sources/a/C.java"})

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"toolchainVersion": "javac 21.0.2",
		"manifest": {"javaVersion": "17", "dependencies": [{"publisher": "p", "project": "x", "version": "1"}]},
		"sourceFiles": {
			"sources/a/B.java": {
				"lastModified": "2026-01-02T03:04:05.000000006Z",
				"dependencies": ["sources/a/C.java"],
				"issues": [{"sourceFilePath": "sources/a/B.java", "lineNumber": 3, "columnNumber": 5, "type": "Error", "message": "bad"}],
				"outputPath": "outputs/a/B.class"
			},
			"sources/a/C.java": {}
		}
	}`, string(data))

	var decoded domain.BuildCache
	require.NoError(t, json.Unmarshal(data, &decoded))
	decoded.Normalize()

	rec, ok := decoded.Lookup("sources/a/B.java")
	require.True(t, ok)
	assert.Equal(t, "sources/a/B.java", rec.Path)
	assert.True(t, rec.LastModified.Equal(ts))
	assert.True(t, rec.HasErrors())
	assert.True(t, decoded.Matches("javac 21.0.2", c.Manifest))

	empty, ok := decoded.Lookup("sources/a/C.java")
	require.True(t, ok)
	assert.True(t, empty.LastModified.IsZero())
	assert.Nil(t, empty.Dependencies)
}

func TestBuildCache_NormalizeDropsNullRecords(t *testing.T) {
	var c domain.BuildCache
	require.NoError(t, json.Unmarshal([]byte(`{"sourceFiles": {"A.java": null, "B.java": {}}}`), &c))
	c.Normalize()

	assert.Equal(t, []string{"B.java"}, c.Paths())
}
