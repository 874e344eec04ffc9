// Package diagnostics turns free-form compiler output into structured diagnostics.
package diagnostics

import (
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
)

const caret = '^'

// Parse extracts the diagnostics from the combined toolchain output.
//
// The output holds groups of a header line ("path:line:keyword: message"),
// the offending source line and a caret line marking the column. Lines that
// do not parse as a header are discarded, together with the source and caret
// lines that follow a rejected header. Paths are reported relative to root
// when they lie inside it.
func Parse(output, root string, mode domain.WarningsMode) []domain.Diagnostic {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")

	var diags []domain.Diagnostic
	for i := 0; i < len(lines); i++ {
		diag, ok := parseHeader(lines[i])
		if !ok {
			if i+2 < len(lines) {
				if _, caretFollows := caretColumn(lines[i+2]); caretFollows {
					i += 2
				}
			}
			continue
		}

		if i+2 < len(lines) {
			if col, ok := caretColumn(lines[i+2]); ok {
				diag.Column = col
				i += 2
			}
		}

		diag.Path = normalizePath(diag.Path, root)
		if mode == domain.WarningsError {
			diag.Severity = domain.SeverityError
		}
		diags = append(diags, diag)
	}
	return diags
}

// parseHeader splits a header line on its first two colons, then the remainder
// on its next colon into the severity keyword and the message.
func parseHeader(line string) (domain.Diagnostic, bool) {
	path, rest, ok := strings.Cut(line, ":")
	if !ok || strings.TrimSpace(path) == "" {
		return domain.Diagnostic{}, false
	}
	lineText, remainder, ok := strings.Cut(rest, ":")
	if !ok {
		return domain.Diagnostic{}, false
	}
	lineNo, err := strconv.Atoi(strings.TrimSpace(lineText))
	if err != nil || lineNo <= 0 {
		return domain.Diagnostic{}, false
	}
	keyword, message, ok := strings.Cut(remainder, ":")
	if !ok {
		return domain.Diagnostic{}, false
	}

	severity := domain.SeverityWarning
	if strings.EqualFold(strings.TrimSpace(keyword), "error") {
		severity = domain.SeverityError
	}

	return domain.Diagnostic{
		Path:     strings.TrimSpace(path),
		Line:     lineNo,
		Severity: severity,
		Message:  strings.TrimSpace(message),
	}, true
}

// caretColumn returns the 1-based position of the caret on a line holding
// nothing but indentation and the caret.
func caretColumn(line string) (int, bool) {
	idx := strings.IndexRune(line, caret)
	if idx < 0 || strings.TrimSpace(line) != string(caret) {
		return 0, false
	}
	return idx + 1, true
}

func normalizePath(p, root string) string {
	p = filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(p) && root != "" {
		if rel, err := filepath.Rel(root, p); err == nil && filepath.IsLocal(rel) {
			p = rel
		}
	}
	return filepath.ToSlash(p)
}
