package orchestrator

import (
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
)

// plan is the classification of every unit and the resulting recompile set.
type plan struct {
	full      bool
	statuses  map[string]domain.UnitStatus
	recompile map[string]bool
	deleted   []string
}

// classify compares the current units with the previous cache.
// With full set every current unit is treated as new. prev may be nil.
func classify(units []domain.SourceFile, prev *domain.BuildCache, full bool) *plan {
	p := &plan{
		full:      full,
		statuses:  make(map[string]domain.UnitStatus, len(units)),
		recompile: make(map[string]bool),
	}

	current := make(map[string]bool, len(units))
	for _, unit := range units {
		current[unit.Path] = true

		status := domain.StatusNew
		if !full {
			status = statusOf(unit, prev)
		}
		p.statuses[unit.Path] = status
		if status.NeedsCompile() {
			p.recompile[unit.Path] = true
		}
	}

	if prev != nil {
		for _, path := range prev.Paths() {
			if !current[path] {
				p.statuses[path] = domain.StatusDeleted
				p.deleted = append(p.deleted, path)
			}
		}
	}

	return p
}

func statusOf(unit domain.SourceFile, prev *domain.BuildCache) domain.UnitStatus {
	rec, ok := prev.Lookup(unit.Path)
	switch {
	case !ok || rec.LastModified.IsZero():
		return domain.StatusNew
	case !rec.LastModified.Equal(unit.ModTime):
		return domain.StatusModified
	case rec.HasErrors():
		return domain.StatusHasErrors
	default:
		return domain.StatusUnchanged
	}
}

// propagate moves unchanged units whose cached dependencies name a recompiled
// or deleted unit into the recompile set, until a full pass adds nothing.
func (p *plan) propagate(prev *domain.BuildCache) {
	if prev == nil {
		return
	}

	stale := make(map[string]bool, len(p.recompile)+len(p.deleted))
	for path := range p.recompile {
		stale[path] = true
	}
	for _, path := range p.deleted {
		stale[path] = true
	}

	for changed := true; changed; {
		changed = false
		for _, path := range p.unchanged() {
			rec, ok := prev.Lookup(path)
			if !ok {
				continue
			}
			if slices.ContainsFunc(rec.Dependencies, func(dep string) bool { return stale[dep] }) {
				p.recompile[path] = true
				stale[path] = true
				changed = true
			}
		}
	}
}

// unchanged returns the sorted units that are unchanged and not yet scheduled.
func (p *plan) unchanged() []string {
	var paths []string
	for path, status := range p.statuses {
		if status == domain.StatusUnchanged && !p.recompile[path] {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)
	return paths
}

// sources returns the units to compile in scan order.
func (p *plan) sources(units []domain.SourceFile) []domain.SourceFile {
	var out []domain.SourceFile
	for _, unit := range units {
		if p.recompile[unit.Path] {
			out = append(out, unit)
		}
	}
	return out
}
