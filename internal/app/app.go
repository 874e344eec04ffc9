// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/kiln/internal/adapters/watcher" //nolint:depguard // Debouncing is part of the watch loop
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader       ports.ManifestLoader
	orchestrator *orchestrator.Orchestrator
	repositories ports.RepositoryOpener
	watcher      ports.Watcher
	logger       ports.Logger
	progress     ports.ProgressView
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	orch *orchestrator.Orchestrator,
	repositories ports.RepositoryOpener,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		loader:       loader,
		orchestrator: orch,
		repositories: repositories,
		watcher:      w,
		logger:       log,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow sets how long watch mode waits for a burst of changes to settle.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// WithProgressView sets the live view used by builds run with Progress.
func (a *App) WithProgressView(p ports.ProgressView) *App {
	a.progress = p
	return a
}

// BuildOptions configuration for the Build and Watch methods.
type BuildOptions struct {
	// Folder is the project folder. It defaults to the working directory.
	Folder     string
	Warnings   domain.WarningsMode
	UseCache   bool
	Verbose    bool
	Repository string
	// Progress shows the build phases live while the build runs.
	Progress bool
}

// Build runs one incremental build of the project and reports its diagnostics.
// A build with error diagnostics returns a *domain.CompilationFailedError.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*domain.BuildResult, error) {
	a.applyVerbosity(opts.Verbose)

	root, manifest, err := a.loadProject(opts.Folder)
	if err != nil {
		return nil, err
	}

	repoRoot := opts.Repository
	if repoRoot == "" {
		repoRoot = domain.DefaultRepositoryPath()
	}

	a.logger.Debug(fmt.Sprintf("building %s in %s", manifest.Coordinate(), root))
	buildOpts := orchestrator.Options{
		Root:       root,
		Java:       manifest.Java,
		Repository: a.repositories.Open(repoRoot),
		UseCache:   opts.UseCache,
		Warnings:   opts.Warnings,
	}

	var result *domain.BuildResult
	if opts.Progress && a.progress != nil {
		err = a.progress.Run(ctx, func(ctx context.Context, telemetry ports.Telemetry) error {
			buildOpts.Telemetry = telemetry
			var buildErr error
			result, buildErr = a.orchestrator.Build(ctx, buildOpts)
			return buildErr
		})
	} else {
		result, err = a.orchestrator.Build(ctx, buildOpts)
	}
	if err != nil {
		return nil, err
	}

	a.report(result, opts.Warnings)

	if result.ErrorCount > 0 {
		return result, &domain.CompilationFailedError{Errors: result.ErrorCount}
	}
	return result, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Folder string
}

// Clean removes the output folder of the project, compiled classes and build cache included.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	root, manifest, err := a.loadProject(opts.Folder)
	if err != nil {
		return err
	}

	out := filepath.Clean(manifest.Java.OutputFolder)
	if !filepath.IsLocal(out) || out == "." {
		return zerr.With(domain.ErrUnsafeOutputFolder, "output_folder", manifest.Java.OutputFolder)
	}

	a.logger.Info(fmt.Sprintf("removing %s...", out))
	if err := os.RemoveAll(filepath.Join(root, out)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactRemoveFailed.Error()), "path", out)
	}
	a.logger.Info(fmt.Sprintf("removed %s", out))
	return nil
}

// Watch builds the project, then rebuilds it after every burst of source or
// manifest changes until ctx is done. Builds never overlap; changes made
// during a build trigger one more build afterwards.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	a.applyVerbosity(opts.Verbose)

	root, manifest, err := a.loadProject(opts.Folder)
	if err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, root, []string{manifest.Java.OutputFolder}); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		a.logger.Debug(fmt.Sprintf("changed: %s", strings.Join(paths, ", ")))
		select {
		case trigger <- struct{}{}:
		default:
		}
	})

	go func() {
		for event := range a.watcher.Events() {
			if isWatched(event.Path) {
				debouncer.Add(event.Path)
			}
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s for changes", root))
	a.watchedBuild(ctx, opts)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			a.watchedBuild(ctx, opts)
		}
	}
}

// watchedBuild runs a build whose failure must not end watch mode.
func (a *App) watchedBuild(ctx context.Context, opts BuildOptions) {
	_, err := a.Build(ctx, opts)
	if err == nil || ctx.Err() != nil {
		return
	}
	var failed *domain.CompilationFailedError
	if !errors.As(err, &failed) {
		a.logger.Error(err)
	}
}

func isWatched(path string) bool {
	name := filepath.Base(path)
	return filepath.Ext(name) == domain.SourceExtension ||
		name == domain.ManifestFileName ||
		name == domain.ManifestYAMLFileName
}

func (a *App) applyVerbosity(verbose bool) {
	if !verbose {
		return
	}
	if setter, ok := a.logger.(ports.LevelSetter); ok {
		setter.SetLevel(domain.LogLevelDebug)
	}
}

func (a *App) loadProject(folder string) (string, *domain.Manifest, error) {
	if folder == "" {
		folder = "."
	}
	root, err := filepath.Abs(folder)
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", folder)
	}
	manifest, err := a.loader.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, manifest, nil
}

// report logs every surfaced diagnostic and a summary of the build.
func (a *App) report(result *domain.BuildResult, mode domain.WarningsMode) {
	for _, path := range slices.Sorted(maps.Keys(result.Statuses)) {
		a.logger.Debug(fmt.Sprintf("%-10s %s", result.Statuses[path], path))
	}

	firstResurfaced := len(result.Diagnostics) - result.Resurfaced
	for i, d := range result.Diagnostics {
		line := d.String()
		if i >= firstResurfaced {
			line += " (from a previous build)"
		}
		switch {
		case d.IsError():
			a.logger.Error(errors.New(line))
		case mode != domain.WarningsHide:
			a.logger.Warn(line)
		}
	}

	if len(result.Recompiled) == 0 && len(result.Deleted) == 0 {
		a.logger.Info("up to date")
	} else {
		a.logger.Info(fmt.Sprintf(
			"compiled %d of %d unit(s), removed %d",
			len(result.Recompiled), len(result.Statuses)-len(result.Deleted), len(result.Deleted),
		))
	}

	if result.ErrorCount > 0 || (result.WarningCount > 0 && mode != domain.WarningsHide) {
		a.logger.Info(fmt.Sprintf("%d error(s), %d warning(s)", result.ErrorCount, result.WarningCount))
	}
}
