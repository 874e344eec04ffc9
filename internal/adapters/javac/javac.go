// Package javac invokes the Java compiler as an external process.
package javac

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*Javac)(nil)

// DefaultBinary is the compiler looked up on PATH when JAVA_HOME does not provide one.
const DefaultBinary = "javac"

// Javac implements ports.Toolchain using os/exec.
type Javac struct {
	logger ports.Logger
	binary string
	env    []string
}

// Option configures a Javac.
type Option func(*Javac)

// WithBinary uses the given compiler executable instead of resolving one.
func WithBinary(path string) Option {
	return func(j *Javac) {
		j.binary = path
	}
}

// WithEnv replaces the environment the compiler is resolved in and run with.
func WithEnv(env []string) Option {
	return func(j *Javac) {
		j.env = env
	}
}

// New creates a new Javac.
func New(logger ports.Logger, opts ...Option) *Javac {
	j := &Javac{
		logger: logger,
		env:    os.Environ(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Version runs "javac -version" and returns its first line, for example "javac 21.0.2".
func (j *Javac) Version(ctx context.Context) (string, error) {
	executable, err := j.executable()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrToolchainVersion.Error())
	}

	cmd := exec.CommandContext(ctx, executable, "-version") //nolint:gosec // resolved compiler binary
	cmd.Env = j.env
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrToolchainVersion.Error()), "binary", executable)
	}

	for line := range strings.Lines(string(out)) {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", zerr.With(domain.ErrToolchainVersion, "binary", executable)
}

// Compile runs the compiler once for every source in the request.
// The combined output is buffered and streamed to req.Output when set.
func (j *Javac) Compile(ctx context.Context, req *domain.CompileRequest) (*domain.CompileResult, error) {
	executable, err := j.executable()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrToolchainInvocation.Error())
	}

	if err := os.MkdirAll(filepath.Join(req.Root, req.OutputFolder), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrToolchainInvocation.Error()), "output_folder", req.OutputFolder)
	}

	args := Arguments(req)
	j.logger.Debug(DefaultBinary + " " + strings.Join(args, " "))

	var buf bytes.Buffer
	var out io.Writer = &buf
	if req.Output != nil {
		out = io.MultiWriter(&buf, req.Output)
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // arguments are built from the manifest
	cmd.Dir = req.Root
	cmd.Env = j.env
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &domain.CompileResult{ExitCode: exitErr.ExitCode(), Output: buf.String()}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrToolchainInvocation.Error()), "binary", executable)
	}
	return &domain.CompileResult{Output: buf.String()}, nil
}

// Arguments builds the compiler command line for a request.
func Arguments(req *domain.CompileRequest) []string {
	args := []string{"-d", req.OutputFolder}

	if req.JavaVersion != "" {
		cfg := domain.JavaConfig{Version: req.JavaVersion}
		if cfg.IsLegacyTarget() {
			args = append(args, "-source", req.JavaVersion, "-target", req.JavaVersion)
			if req.BootClasspath != "" {
				args = append(args, "-bootclasspath", req.BootClasspath)
			}
		} else {
			args = append(args, "--release", req.JavaVersion)
		}
	}

	if len(req.Classpath) > 0 {
		args = append(args, "-classpath", strings.Join(req.Classpath, string(os.PathListSeparator)))
	}
	if req.MaxErrors > 0 {
		args = append(args, "-Xmaxerrs", strconv.Itoa(req.MaxErrors))
	}
	if req.MaxWarnings > 0 {
		args = append(args, "-Xmaxwarns", strconv.Itoa(req.MaxWarnings))
	}
	if req.Warnings == domain.WarningsHide {
		args = append(args, "-nowarn")
	}

	return append(args, req.Sources...)
}

// executable resolves the compiler: an explicit binary, then JAVA_HOME/bin, then PATH.
func (j *Javac) executable() (string, error) {
	if j.binary != "" {
		return j.binary, nil
	}
	if home := lookupEnv(j.env, "JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", DefaultBinary)
		if findExecutable(candidate) == nil {
			return candidate, nil
		}
	}
	return lookPath(DefaultBinary, j.env)
}

func lookupEnv(env []string, key string) string {
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok && k == key {
			return v
		}
	}
	return ""
}

// lookPath searches for an executable in the directories named by the PATH of env.
func lookPath(file string, env []string) (string, error) {
	path := lookupEnv(env, "PATH")
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
