package domain

// UnitStatus is the classification of a compilation unit at the start of a build.
type UnitStatus int

const (
	// StatusUnchanged means the unit matches its cached record.
	StatusUnchanged UnitStatus = iota
	// StatusNew means the unit has no usable record.
	StatusNew
	// StatusModified means the unit's timestamp differs from its record.
	StatusModified
	// StatusHasErrors means the unit is unchanged but failed to compile last time.
	StatusHasErrors
	// StatusDeleted means the unit is cached but no longer part of the source set.
	StatusDeleted
)

// String returns the name of the status.
func (s UnitStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusHasErrors:
		return "has-errors"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// NeedsCompile reports whether the status alone puts a unit in the recompile set.
func (s UnitStatus) NeedsCompile() bool {
	return s == StatusNew || s == StatusModified || s == StatusHasErrors
}
