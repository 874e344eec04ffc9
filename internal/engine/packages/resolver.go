// Package packages resolves the external packages a project depends on.
package packages

import (
	"context"
	"runtime"
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Resolved is a package of the transitive closure together with its provenance.
type Resolved struct {
	Coordinate domain.PackageCoordinate
	// Chain lists the packages that pulled Coordinate in, starting at a declared dependency.
	Chain []domain.PackageCoordinate
}

// Resolver walks the dependency closure of a project through a package repository.
type Resolver struct {
	limit int
}

// NewResolver creates a Resolver that runs one repository lookup per CPU at a time.
func NewResolver() *Resolver {
	return &Resolver{limit: runtime.NumCPU()}
}

// Closure returns the transitive closure of declared in breadth-first order.
//
// Every coordinate appears once, with the chain it was first reached through.
// Lookups of one level run concurrently; the result order does not depend on
// their scheduling.
func (r *Resolver) Closure(
	ctx context.Context,
	repo ports.PackageRepository,
	declared []domain.PackageCoordinate,
) ([]Resolved, error) {
	seen := make(map[domain.PackageCoordinate]bool, len(declared))
	var closure []Resolved
	var level []Resolved

	for _, coord := range declared {
		if seen[coord] {
			continue
		}
		seen[coord] = true
		level = append(level, Resolved{Coordinate: coord})
	}

	for len(level) > 0 {
		closure = append(closure, level...)

		deps, err := r.lookupLevel(ctx, repo, level)
		if err != nil {
			return nil, err
		}

		var next []Resolved
		for i, parent := range level {
			chain := append(slices.Clone(parent.Chain), parent.Coordinate)
			for _, dep := range deps[i] {
				if seen[dep] {
					continue
				}
				seen[dep] = true
				next = append(next, Resolved{Coordinate: dep, Chain: chain})
			}
		}
		level = next
	}

	return closure, nil
}

func (r *Resolver) lookupLevel(
	ctx context.Context,
	repo ports.PackageRepository,
	level []Resolved,
) ([][]domain.PackageCoordinate, error) {
	deps := make([][]domain.PackageCoordinate, len(level))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.limit, 1))
	for i, node := range level {
		g.Go(func() error {
			found, err := repo.Dependencies(gctx, node.Coordinate)
			if err != nil {
				return err
			}
			deps[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return deps, nil
}

// Conflicts groups the closure by package and reports every package reached
// in more than one version. The result is nil when there is no conflict.
func Conflicts(closure []Resolved) *domain.PackageConflictError {
	versions := make(map[domain.PackageKey]int)
	for _, node := range closure {
		versions[node.Coordinate.Package()]++
	}

	var conflicts []domain.PackageConflict
	for _, node := range closure {
		if versions[node.Coordinate.Package()] > 1 {
			conflicts = append(conflicts, domain.PackageConflict{
				Coordinate: node.Coordinate,
				Chain:      node.Chain,
			})
		}
	}
	if len(conflicts) == 0 {
		return nil
	}

	slices.SortFunc(conflicts, func(a, b domain.PackageConflict) int {
		return a.Coordinate.Compare(b.Coordinate)
	})
	return &domain.PackageConflictError{Conflicts: conflicts}
}

// Classpath resolves the dependency closure of declared into the classpath
// handed to the toolchain: outputFolder first, then one artifact per package
// in traversal order.
func (r *Resolver) Classpath(
	ctx context.Context,
	repo ports.PackageRepository,
	declared []domain.PackageCoordinate,
	outputFolder string,
) (domain.Classpath, error) {
	closure, err := r.Closure(ctx, repo, declared)
	if err != nil {
		return nil, err
	}
	if conflict := Conflicts(closure); conflict != nil {
		return nil, conflict
	}

	classpath := make(domain.Classpath, 0, len(closure)+1)
	classpath = append(classpath, outputFolder)
	for _, node := range closure {
		artifact, err := repo.Artifact(node.Coordinate)
		if err != nil {
			return nil, err
		}
		classpath = append(classpath, artifact)
	}
	return classpath, nil
}
