package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/orchestrator"
	"go.trai.ch/kiln/internal/engine/packages"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	loader    *mocks.MockManifestLoader
	toolchain *mocks.MockToolchain
	scanner   *mocks.MockSourceScanner
	store     *mocks.MockBuildCacheStore
	artifacts *mocks.MockArtifactStore
	extractor *mocks.MockDependencyExtractor
	opener    *mocks.MockRepositoryOpener
	repo      *mocks.MockPackageRepository
	logger    *mocks.MockLogger
}

func newProvider(t *testing.T) (*testMocks, ComponentProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &testMocks{
		loader:    mocks.NewMockManifestLoader(ctrl),
		toolchain: mocks.NewMockToolchain(ctrl),
		scanner:   mocks.NewMockSourceScanner(ctrl),
		store:     mocks.NewMockBuildCacheStore(ctrl),
		artifacts: mocks.NewMockArtifactStore(ctrl),
		extractor: mocks.NewMockDependencyExtractor(ctrl),
		opener:    mocks.NewMockRepositoryOpener(ctrl),
		repo:      mocks.NewMockPackageRepository(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	orch := orchestrator.New(
		m.toolchain,
		m.scanner,
		m.store,
		m.artifacts,
		m.extractor,
		packages.NewResolver(),
		telemetry.NewNoOp(),
		m.logger,
	)
	application := app.New(m.loader, orch, m.opener, mocks.NewMockWatcher(ctrl), m.logger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:       application,
			Logger:    m.logger,
			Telemetry: telemetry.NewNoOp(),
		}, func() {}, nil
	}
	return m, provider
}

// expectCompile sets up one build whose toolchain run prints output.
func (m *testMocks) expectCompile(root, output string, exitCode int) {
	unit := domain.SourceFile{
		Path:    "A.java",
		AbsPath: filepath.Join(root, "A.java"),
		ModTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	m.loader.EXPECT().Load(root).Return(&domain.Manifest{
		Publisher: "pub",
		Project:   "app",
		Version:   "1",
		Java: &domain.JavaConfig{
			Version:      "17",
			OutputFolder: "outputs",
			SourceFiles:  []string{"**/*.java"},
		},
	}, nil)
	m.opener.EXPECT().Open(gomock.Any()).Return(m.repo)
	m.toolchain.EXPECT().Version(gomock.Any()).Return("javac 17", nil)
	m.scanner.EXPECT().Scan(root, gomock.Any(), gomock.Any()).Return([]domain.SourceFile{unit}, nil)
	m.store.EXPECT().Load(gomock.Any()).Return(nil, nil)
	m.toolchain.EXPECT().Compile(gomock.Any(), gomock.Any()).
		Return(&domain.CompileResult{ExitCode: exitCode, Output: output}, nil)
	m.extractor.EXPECT().Extract(unit, gomock.Any()).Return(nil, nil)
	m.artifacts.EXPECT().Locate(unit, "outputs").Return("outputs/A.class", nil)
	m.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
}

// TestRun_Version verifies that the run function returns 0 when the command succeeds.
func TestRun_Version(t *testing.T) {
	_, provider := newProvider(t)

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_BuildSucceeds verifies that a clean build exits with 0.
func TestRun_BuildSucceeds(t *testing.T) {
	root := t.TempDir()
	m, provider := newProvider(t)
	m.expectCompile(root, "", 0)
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	exitCode := run(context.Background(), []string{"build", "--folder", root}, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_ExitCodeIsErrorCount verifies that the exit code equals the number of compilation errors.
func TestRun_ExitCodeIsErrorCount(t *testing.T) {
	root := t.TempDir()
	m, provider := newProvider(t)
	m.expectCompile(root, "A.java:1: error: one\nA.java:2: error: two\n2 errors\n", 1)
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	var logged []string
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		logged = append(logged, err.Error())
	}).Times(2)

	exitCode := run(context.Background(), []string{"build", "-f", root}, new(bytes.Buffer), provider)
	assert.Equal(t, 2, exitCode)
	assert.Len(t, logged, 2, "only the diagnostics are logged as errors")
}

// TestRun_FatalError verifies that run returns 1 and logs when the build cannot run.
func TestRun_FatalError(t *testing.T) {
	root := t.TempDir()
	m, provider := newProvider(t)
	m.loader.EXPECT().Load(root).Return(nil, domain.ErrManifestNotFound)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrManifestNotFound.Error())
	})

	exitCode := run(context.Background(), []string{"build", "--folder", root}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_InvalidWarningsMode verifies that flag validation errors are fatal.
func TestRun_InvalidWarningsMode(t *testing.T) {
	m, provider := newProvider(t)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.True(t, strings.Contains(err.Error(), domain.ErrInvalidWarningsMode.Error()))
	})

	exitCode := run(context.Background(), []string{"build", "--warnings", "loud"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
