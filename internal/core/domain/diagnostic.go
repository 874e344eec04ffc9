package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Severity classifies a diagnostic reported by the toolchain.
type Severity string

const (
	// SeverityError marks a diagnostic that fails the build.
	SeverityError Severity = "Error"
	// SeverityWarning marks an informational diagnostic.
	SeverityWarning Severity = "Warning"
)

// Diagnostic is a single structured compiler message.
type Diagnostic struct {
	Path     string   `json:"sourceFilePath"`
	Line     int      `json:"lineNumber"`
	Column   int      `json:"columnNumber,omitzero"`
	Severity Severity `json:"type"`
	Message  string   `json:"message"`
}

// IsError reports whether the diagnostic has error severity.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// String formats the diagnostic the way compilers print them.
// The column is left out when it is unknown.
func (d Diagnostic) String() string {
	keyword := strings.ToLower(string(d.Severity))
	if d.Path == "" {
		return fmt.Sprintf("%s: %s", keyword, d.Message)
	}
	if d.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", d.Path, d.Line, d.Column, keyword, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s: %s", d.Path, d.Line, keyword, d.Message)
}

// ToolchainFailure is the diagnostic reported when the toolchain fails
// without producing a diagnostic of its own. It belongs to no unit.
func ToolchainFailure(detail string) Diagnostic {
	msg := "ToolchainInvocationFailure"
	if detail != "" {
		msg += ": " + detail
	}
	return Diagnostic{Severity: SeverityError, Message: msg}
}

// HasErrors reports whether any of the diagnostics has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.IsError() {
			return true
		}
	}
	return false
}

// CountBySeverity returns the number of errors and warnings in diags.
func CountBySeverity(diags []Diagnostic) (errs, warnings int) {
	for _, d := range diags {
		if d.IsError() {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}

// WarningsMode controls how toolchain warnings are treated.
type WarningsMode string

const (
	// WarningsShow reports warnings without failing the build.
	WarningsShow WarningsMode = "show"
	// WarningsError treats every diagnostic as an error.
	WarningsError WarningsMode = "error"
	// WarningsHide asks the toolchain to suppress warnings.
	WarningsHide WarningsMode = "hide"
)

// ParseWarningsMode converts a flag value into a WarningsMode.
func ParseWarningsMode(s string) (WarningsMode, error) {
	switch m := WarningsMode(strings.ToLower(strings.TrimSpace(s))); m {
	case WarningsShow, WarningsError, WarningsHide:
		return m, nil
	case "":
		return WarningsShow, nil
	default:
		return "", zerr.With(ErrInvalidWarningsMode, "value", s)
	}
}
