package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestJavaConfig_Snapshot(t *testing.T) {
	cfg := &domain.JavaConfig{
		Version:      "17",
		Dependencies: []domain.PackageCoordinate{domain.NewPackageCoordinate("p", "x", "1")},
	}

	snap := cfg.Snapshot()
	assert.True(t, snap.Equal(cfg.Snapshot()))
	assert.Equal(t, snap.Fingerprint(), cfg.Snapshot().Fingerprint())

	cfg.Dependencies[0] = domain.NewPackageCoordinate("p", "x", "2")
	assert.False(t, snap.Equal(cfg.Snapshot()))
	assert.NotEqual(t, snap.Fingerprint(), cfg.Snapshot().Fingerprint())
}

func TestJavaConfig_IsLegacyTarget(t *testing.T) {
	for version, want := range map[string]bool{"1.5": true, "1.8": true, "8": true, "9": false, "17": false, "": false} {
		cfg := &domain.JavaConfig{Version: version}
		assert.Equal(t, want, cfg.IsLegacyTarget(), version)
	}
}

func TestSimpleName(t *testing.T) {
	assert.Equal(t, "B", domain.SimpleName("a/B.java"))
	assert.Equal(t, "Main", domain.SourceFile{Path: "Main.java"}.SimpleName())
}
