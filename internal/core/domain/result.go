package domain

// BuildResult summarizes one incremental build.
type BuildResult struct {
	// FullRebuild is set when the cache was missing or invalidated.
	FullRebuild bool
	// Statuses maps every current and deleted unit to its initial classification.
	Statuses map[string]UnitStatus
	// Recompiled lists the units handed to the toolchain, sorted.
	Recompiled []string
	// Deleted lists the units removed since the previous build, sorted.
	Deleted []string
	// Diagnostics holds every surfaced diagnostic, fresh and re-surfaced.
	Diagnostics []Diagnostic
	// Resurfaced is the number of diagnostics carried over from previous builds.
	Resurfaced   int
	ErrorCount   int
	WarningCount int
	// CacheWritten reports whether the cache file was saved.
	CacheWritten bool
}

// Succeeded reports whether the build surfaced no error diagnostics.
func (r *BuildResult) Succeeded() bool {
	return r.ErrorCount == 0
}
