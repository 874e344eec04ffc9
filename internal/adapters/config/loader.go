// Package config loads kiln project manifests.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader for project.json and project.yaml files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the manifest of the project in root. The java block is required.
func (l *Loader) Load(root string) (*domain.Manifest, error) {
	m, err := l.Read(root)
	if err != nil {
		return nil, err
	}
	if m.Java == nil {
		return nil, zerr.With(domain.ErrMissingLanguageConfig, "path", root)
	}
	return m, nil
}

// Read reads the manifest in dir without requiring a java block.
// project.json takes precedence over project.yaml.
func (l *Loader) Read(dir string) (*domain.Manifest, error) {
	for _, name := range []string{domain.ManifestFileName, domain.ManifestYAMLFileName} {
		p := filepath.Join(dir, name)
		data, err := os.ReadFile(p) //nolint:gosec // path is provided by user
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", p)
		}
		return l.Parse(p, data)
	}
	return nil, zerr.With(domain.ErrManifestNotFound, "path", dir)
}

// Parse decodes a manifest document. The format is chosen from the file extension of name.
func (l *Loader) Parse(name string, data []byte) (*domain.Manifest, error) {
	var doc document
	var err error
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", name)
	}

	f := fields{name: name, logger: l.Logger}
	m := &domain.Manifest{
		Publisher: f.scalar(doc, keyPublisher, ""),
		Project:   f.scalar(doc, keyProject, ""),
		Version:   f.scalar(doc, keyVersion, ""),
	}

	raw, ok := doc[keyJava]
	if !ok || raw == nil {
		return m, nil
	}
	java, ok := raw.(map[string]any)
	if !ok {
		f.warn(keyJava, raw, "expected an object")
		return m, nil
	}
	m.Java = f.java(java)
	return m, nil
}

// fields reads typed values from a decoded document, warning about and
// replacing every value of the wrong type.
type fields struct {
	name   string
	logger ports.Logger
}

func (f fields) warn(key string, value any, reason string) {
	if f.logger == nil {
		return
	}
	f.logger.Warn(fmt.Sprintf("%s: ignoring %s=%v: %s", f.name, key, value, reason))
}

func (f fields) java(doc map[string]any) *domain.JavaConfig {
	return &domain.JavaConfig{
		Version:         f.scalar(doc, keyVersion, ""),
		OutputFolder:    f.folder(doc, keyOutputFolder, domain.DefaultOutputFolder),
		SourceFiles:     f.patterns(doc, keySourceFiles, []string{domain.DefaultSourcePattern}),
		MaximumErrors:   f.count(doc, keyMaximumErrors),
		MaximumWarnings: f.count(doc, keyMaximumWarnings),
		BootClasspath:   f.scalar(doc, keyBootClasspath, ""),
		Dependencies:    f.dependencies(doc, "java."+keyDependencies),
	}
}

// scalar reads a string. Numbers are accepted and formatted without trailing zeros,
// so a YAML version of 1.8 or a JSON version of 17 read as "1.8" and "17".
func (f fields) scalar(doc map[string]any, key, def string) string {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		f.warn(key, raw, "expected a string or number")
		return def
	}
}

// folder reads a project-relative folder that must stay inside the project.
func (f fields) folder(doc map[string]any, key, def string) string {
	v := f.scalar(doc, key, def)
	if v == "" {
		return def
	}
	clean := path.Clean(filepath.ToSlash(v))
	if path.IsAbs(clean) || filepath.IsAbs(v) || clean == ".." || strings.HasPrefix(clean, "../") || clean == "." {
		f.warn(key, doc[key], "expected a folder inside the project")
		return def
	}
	return clean
}

func (f fields) patterns(doc map[string]any, key string, def []string) []string {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return def
		}
		return []string{strings.TrimSpace(v)}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok || strings.TrimSpace(s) == "" {
				f.warn(key, item, "expected a pattern string")
				continue
			}
			out = append(out, strings.TrimSpace(s))
		}
		if len(out) == 0 {
			return def
		}
		return out
	default:
		f.warn(key, raw, "expected a pattern or a list of patterns")
		return def
	}
}

// count reads a non-negative integer limit. Zero means unlimited.
func (f fields) count(doc map[string]any, key string) int {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return 0
	}
	switch v := raw.(type) {
	case int:
		if v >= 0 {
			return v
		}
	case float64:
		if v >= 0 && v == math.Trunc(v) && v <= math.MaxInt32 {
			return int(v)
		}
	}
	f.warn(key, raw, "expected a non-negative integer")
	return 0
}

func (f fields) dependencies(doc map[string]any, key string) []domain.PackageCoordinate {
	raw, ok := doc[keyDependencies]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		f.warn(key, raw, "expected a list")
		return nil
	}

	deps := make([]domain.PackageCoordinate, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			f.warn(key, item, "expected an object with publisher, project and version")
			continue
		}
		publisher := f.scalar(entry, keyPublisher, "")
		project := f.scalar(entry, keyProject, "")
		version := f.scalar(entry, keyVersion, "")
		if publisher == "" || project == "" || version == "" {
			f.warn(key, item, "publisher, project and version are required")
			continue
		}
		deps = append(deps, domain.NewPackageCoordinate(publisher, project, version))
	}
	return deps
}
