package fs

import (
	"path"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// Pattern matches slash-separated relative paths. A "**" segment matches any
// number of folders, every other segment follows path.Match.
type Pattern struct {
	raw      string
	segments []string
}

// CompilePattern validates and compiles a source file pattern.
func CompilePattern(raw string) (*Pattern, error) {
	clean := strings.TrimPrefix(path.Clean(strings.ReplaceAll(raw, "\\", "/")), "./")
	if clean == "" || clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return nil, zerr.With(domain.ErrInvalidPattern, "pattern", raw)
	}

	segments := strings.Split(clean, "/")
	for _, seg := range segments {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidPattern.Error()), "pattern", raw)
		}
	}
	return &Pattern{raw: raw, segments: segments}, nil
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether the relative path matches the pattern.
func (p *Pattern) Match(rel string) bool {
	return matchSegments(p.segments, strings.Split(rel, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
