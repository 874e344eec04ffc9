// Package orchestrator implements the incremental build of a project.
package orchestrator

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/diagnostics"
	"go.trai.ch/kiln/internal/engine/packages"
	"go.trai.ch/zerr"
)

const (
	resolveVertex = "resolve packages"
	compileVertex = "compile"
)

// Options configures one build.
type Options struct {
	// Root is the absolute project folder.
	Root string
	// Java is the java block of the project manifest.
	Java *domain.JavaConfig
	// Repository holds the external packages the project depends on.
	Repository ports.PackageRepository
	// UseCache set to false ignores the previous build cache.
	UseCache bool
	Warnings domain.WarningsMode
	// Telemetry replaces the orchestrator's recorder for this build when set.
	Telemetry ports.Telemetry
}

// Orchestrator runs incremental builds.
type Orchestrator struct {
	toolchain ports.Toolchain
	scanner   ports.SourceScanner
	store     ports.BuildCacheStore
	artifacts ports.ArtifactStore
	extractor ports.DependencyExtractor
	resolver  *packages.Resolver
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Orchestrator.
func New(
	toolchain ports.Toolchain,
	scanner ports.SourceScanner,
	store ports.BuildCacheStore,
	artifacts ports.ArtifactStore,
	extractor ports.DependencyExtractor,
	resolver *packages.Resolver,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		toolchain: toolchain,
		scanner:   scanner,
		store:     store,
		artifacts: artifacts,
		extractor: extractor,
		resolver:  resolver,
		telemetry: telemetry,
		logger:    logger,
	}
}

// run holds the state of a single build.
type run struct {
	opts   Options
	units  []domain.SourceFile
	prev   *domain.BuildCache
	next   *domain.BuildCache
	plan   *plan
	result *domain.BuildResult
	// failed is set when the toolchain failed without reporting a diagnostic.
	failed bool
	byPath map[string][]domain.Diagnostic
}

// Build compiles every unit that changed since the previous build.
//
// Compilation errors are not returned as an error; they are counted in the
// result. An error is returned only when the build could not run at all.
func (o *Orchestrator) Build(ctx context.Context, opts Options) (*domain.BuildResult, error) {
	java := opts.Java
	if java == nil {
		return nil, zerr.With(domain.ErrMissingLanguageConfig, "path", opts.Root)
	}

	version, err := o.toolchain.Version(ctx)
	if err != nil {
		return nil, err
	}

	units, err := o.scanner.Scan(opts.Root, java.SourceFiles, []string{java.OutputFolder})
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, zerr.With(domain.ErrNoSourceFiles, "patterns", strings.Join(java.SourceFiles, ", "))
	}

	classpath, err := o.resolve(ctx, opts)
	if err != nil {
		return nil, err
	}

	r := &run{
		opts:   opts,
		units:  units,
		next:   domain.NewBuildCache(version, java.Snapshot()),
		result: &domain.BuildResult{},
	}
	r.prev, r.result.FullRebuild = o.loadCache(opts, version)

	r.plan = classify(units, r.prev, r.result.FullRebuild)
	r.plan.propagate(r.prev)
	o.sweepArtifacts(r)

	r.result.Statuses = r.plan.statuses
	r.result.Deleted = slices.Clone(r.plan.deleted)
	o.removeDeleted(r)

	sources := r.plan.sources(units)
	for _, unit := range sources {
		r.result.Recompiled = append(r.result.Recompiled, unit.Path)
	}

	if err := o.compile(ctx, r, sources, classpath); err != nil {
		return nil, err
	}
	o.record(r, sources)

	if len(sources) > 0 || len(r.plan.deleted) > 0 || r.result.FullRebuild {
		if err := o.store.Save(domain.CachePath(opts.Root, java.OutputFolder), r.next); err != nil {
			return nil, err
		}
		r.result.CacheWritten = true
	}

	r.result.ErrorCount, r.result.WarningCount = domain.CountBySeverity(r.result.Diagnostics)
	return r.result, nil
}

func (o *Orchestrator) resolve(ctx context.Context, opts Options) (domain.Classpath, error) {
	vctx, vertex := o.recorder(opts).Record(ctx, resolveVertex)
	classpath, err := o.resolver.Classpath(vctx, opts.Repository, opts.Java.Dependencies, opts.Java.OutputFolder)
	if err == nil {
		vertex.Log(domain.LogLevelDebug, "classpath: "+strings.Join(classpath, ", "))
	}
	vertex.Complete(err)
	if err != nil {
		return nil, err
	}
	return classpath, nil
}

func (o *Orchestrator) recorder(opts Options) ports.Telemetry {
	if opts.Telemetry != nil {
		return opts.Telemetry
	}
	return o.telemetry
}

// loadCache returns the previous cache, or nil when it is disabled, missing
// or unreadable, and whether every unit must be recompiled.
func (o *Orchestrator) loadCache(opts Options, version string) (*domain.BuildCache, bool) {
	if !opts.UseCache {
		return nil, true
	}

	prev, err := o.store.Load(domain.CachePath(opts.Root, opts.Java.OutputFolder))
	if err != nil {
		o.logger.Warn(fmt.Sprintf("ignoring build cache: %v", err))
		return nil, true
	}
	if prev == nil {
		return nil, true
	}

	snapshot := opts.Java.Snapshot()
	if !prev.Matches(version, snapshot) {
		o.logger.Debug(fmt.Sprintf(
			"build cache invalidated: toolchain %q, manifest %s (cached: toolchain %q, manifest %s)",
			version, snapshot.Fingerprint(), prev.ToolchainVersion, prev.Manifest.Fingerprint(),
		))
		return prev, true
	}
	return prev, false
}

// sweepArtifacts schedules unchanged units whose compiled class is missing.
func (o *Orchestrator) sweepArtifacts(r *run) {
	for _, unit := range r.units {
		if r.plan.statuses[unit.Path] != domain.StatusUnchanged || r.plan.recompile[unit.Path] {
			continue
		}
		artifact := o.artifactOf(r, unit)
		if artifact == "" || !o.artifacts.Exists(r.opts.Root, artifact) {
			r.plan.recompile[unit.Path] = true
		}
	}
}

// artifactOf returns the recorded artifact of an unchanged unit, locating it when it was never recorded.
func (o *Orchestrator) artifactOf(r *run, unit domain.SourceFile) string {
	if rec, ok := r.prev.Lookup(unit.Path); ok && rec.OutputPath != "" {
		return rec.OutputPath
	}
	artifact, err := o.artifacts.Locate(unit, r.opts.Java.OutputFolder)
	if err != nil {
		o.logger.Warn(fmt.Sprintf("cannot locate compiled class of %s: %v", unit.Path, err))
		return ""
	}
	return artifact
}

// removeDeleted removes the compiled classes of units that no longer exist.
func (o *Orchestrator) removeDeleted(r *run) {
	for _, path := range r.plan.deleted {
		rec, _ := r.prev.Lookup(path)
		if rec == nil || rec.OutputPath == "" {
			continue
		}
		if err := o.artifacts.Remove(r.opts.Root, rec.OutputPath); err != nil {
			o.logger.Warn(fmt.Sprintf("cannot remove compiled classes of %s: %v", path, err))
			continue
		}
		o.logger.Debug("removed " + rec.OutputPath)
	}
}

// compile invokes the toolchain once for sources and attributes the diagnostics by path.
func (o *Orchestrator) compile(ctx context.Context, r *run, sources []domain.SourceFile, classpath domain.Classpath) error {
	vctx, vertex := o.recorder(r.opts).Record(ctx, compileVertex)
	if len(sources) == 0 {
		vertex.Cached()
		vertex.Complete(nil)
		return nil
	}

	java := r.opts.Java
	req := &domain.CompileRequest{
		Root:          r.opts.Root,
		OutputFolder:  java.OutputFolder,
		Sources:       make([]string, 0, len(sources)),
		Classpath:     classpath,
		JavaVersion:   java.Version,
		BootClasspath: java.BootClasspath,
		MaxErrors:     java.MaximumErrors,
		MaxWarnings:   java.MaximumWarnings,
		Warnings:      r.opts.Warnings,
		Output:        vertex.Stdout(),
	}
	for _, unit := range sources {
		req.Sources = append(req.Sources, unit.AbsPath)
	}

	res, err := o.toolchain.Compile(vctx, req)
	if err != nil {
		vertex.Complete(err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.failed = true
		r.result.Diagnostics = append(r.result.Diagnostics, domain.ToolchainFailure(err.Error()))
		return nil
	}

	diags := diagnostics.Parse(res.Output, r.opts.Root, r.opts.Warnings)
	if res.ExitCode != 0 {
		vertex.Complete(zerr.With(domain.ErrToolchainInvocation, "exit_code", res.ExitCode))
	} else {
		vertex.Complete(nil)
	}

	if res.ExitCode != 0 && !domain.HasErrors(diags) {
		r.failed = true
		diags = append(diags, domain.ToolchainFailure(fmt.Sprintf("exit code %d", res.ExitCode)))
	}

	r.byPath = make(map[string][]domain.Diagnostic)
	for _, d := range diags {
		r.byPath[d.Path] = append(r.byPath[d.Path], d)
	}
	r.result.Diagnostics = append(r.result.Diagnostics, diags...)
	return nil
}

// record fills the next cache with fresh records for compiled units and
// carries the records of every other unit over, re-surfacing their diagnostics.
func (o *Orchestrator) record(r *run, sources []domain.SourceFile) {
	for _, unit := range sources {
		deps, err := o.extractor.Extract(unit, r.units)
		if err != nil {
			o.logger.Warn(fmt.Sprintf("cannot scan references of %s: %v", unit.Path, err))
		}
		if deps == nil {
			deps = []string{}
		}

		artifact, err := o.artifacts.Locate(unit, r.opts.Java.OutputFolder)
		if err != nil {
			o.logger.Warn(fmt.Sprintf("cannot locate compiled class of %s: %v", unit.Path, err))
		}

		rec := &domain.SourceRecord{
			Path:         unit.Path,
			Dependencies: deps,
			Issues:       slices.Clone(r.byPath[unit.Path]),
			OutputPath:   artifact,
		}
		if rec.Issues == nil {
			rec.Issues = []domain.Diagnostic{}
		}
		// Units of a failed invocation are retried on the next build.
		if !r.failed {
			rec.LastModified = unit.ModTime
		}
		r.next.Upsert(rec)
	}

	for _, unit := range r.units {
		if r.plan.recompile[unit.Path] {
			continue
		}
		rec, ok := r.prev.Lookup(unit.Path)
		if !ok {
			continue
		}
		r.next.Upsert(rec)
		r.result.Diagnostics = append(r.result.Diagnostics, rec.Issues...)
		r.result.Resurfaced += len(rec.Issues)
	}
}
