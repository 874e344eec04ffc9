package javac_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/javac"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeJavac writes an executable shell script standing in for the compiler.
func fakeJavac(t *testing.T, script string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "javac")
	//nolint:gosec // test script must be executable
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+script), 0o755))
	return p
}

func newJavac(t *testing.T, script string) *javac.Javac {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return javac.New(mockLogger, javac.WithBinary(fakeJavac(t, script)))
}

func TestArguments(t *testing.T) {
	tests := []struct {
		name string
		req  domain.CompileRequest
		want []string
	}{
		{
			name: "modern target",
			req: domain.CompileRequest{
				OutputFolder: "outputs",
				JavaVersion:  "17",
				Classpath:    domain.Classpath{"outputs", "/repo/acme/util/1.0/util.jar"},
				Sources:      []string{"/p/A.java", "/p/B.java"},
			},
			want: []string{
				"-d", "outputs", "--release", "17",
				"-classpath", "outputs" + string(os.PathListSeparator) + "/repo/acme/util/1.0/util.jar",
				"/p/A.java", "/p/B.java",
			},
		},
		{
			name: "legacy target with boot classpath and limits",
			req: domain.CompileRequest{
				OutputFolder:  "out",
				JavaVersion:   "1.8",
				BootClasspath: "/jdk8/rt.jar",
				Classpath:     domain.Classpath{"out"},
				MaxErrors:     5,
				MaxWarnings:   7,
				Warnings:      domain.WarningsHide,
				Sources:       []string{"A.java"},
			},
			want: []string{
				"-d", "out", "-source", "1.8", "-target", "1.8", "-bootclasspath", "/jdk8/rt.jar",
				"-classpath", "out", "-Xmaxerrs", "5", "-Xmaxwarns", "7", "-nowarn", "A.java",
			},
		},
		{
			name: "boot classpath ignored for modern target",
			req: domain.CompileRequest{
				OutputFolder:  "out",
				JavaVersion:   "11",
				BootClasspath: "/jdk8/rt.jar",
				Warnings:      domain.WarningsError,
				Sources:       []string{"A.java"},
			},
			want: []string{"-d", "out", "--release", "11", "A.java"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, javac.Arguments(&tt.req))
		})
	}
}

func TestJavac_Version(t *testing.T) {
	j := newJavac(t, "echo 'javac 21.0.2' >&2\n")

	v, err := j.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "javac 21.0.2", v)
}

func TestJavac_Version_Failure(t *testing.T) {
	j := newJavac(t, "exit 3\n")

	_, err := j.Version(context.Background())
	require.ErrorContains(t, err, domain.ErrToolchainVersion.Error())
}

func TestJavac_Compile(t *testing.T) {
	j := newJavac(t, `echo "$@"
echo "A.java:1: error: boom" >&2
exit 1
`)
	root := t.TempDir()
	var streamed bytes.Buffer

	res, err := j.Compile(context.Background(), &domain.CompileRequest{
		Root:         root,
		OutputFolder: "outputs",
		Sources:      []string{"A.java"},
		Output:       &streamed,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Output, "-d outputs A.java")
	assert.Contains(t, res.Output, "A.java:1: error: boom")
	assert.Equal(t, res.Output, streamed.String())
	assert.DirExists(t, filepath.Join(root, "outputs"))
}

func TestJavac_Compile_Success(t *testing.T) {
	j := newJavac(t, "exit 0\n")

	res, err := j.Compile(context.Background(), &domain.CompileRequest{Root: t.TempDir(), OutputFolder: "outputs"})
	require.NoError(t, err)
	assert.Zero(t, res.ExitCode)
	assert.Empty(t, res.Output)
}

func TestJavac_MissingBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	j := javac.New(mocks.NewMockLogger(ctrl), javac.WithEnv([]string{"PATH=" + t.TempDir()}))

	_, err := j.Compile(context.Background(), &domain.CompileRequest{Root: t.TempDir(), OutputFolder: "outputs"})
	require.ErrorContains(t, err, domain.ErrToolchainInvocation.Error())

	_, err = j.Version(context.Background())
	require.ErrorContains(t, err, domain.ErrToolchainVersion.Error())
}

func TestJavac_JavaHome(t *testing.T) {
	ctrl := gomock.NewController(t)
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "bin"), domain.DirPerm))
	//nolint:gosec // test script must be executable
	require.NoError(t, os.WriteFile(filepath.Join(home, "bin", "javac"), []byte("#!/bin/sh\necho 'javac 11.0.1'\n"), 0o755))

	j := javac.New(mocks.NewMockLogger(ctrl), javac.WithEnv([]string{"JAVA_HOME=" + home, "PATH=/usr/bin:/bin"}))

	v, err := j.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "javac 11.0.1", v)
}
