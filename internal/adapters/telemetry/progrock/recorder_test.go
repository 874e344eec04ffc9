package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/telemetry/progrock"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestRecorder_Phases(t *testing.T) {
	recorder := progrock.New()
	require.NotNil(t, recorder)
	ctx := context.Background()

	_, resolve := recorder.Record(ctx, "resolve packages")
	resolve.Log(domain.LogLevelDebug, "3 packages")
	resolve.Complete(nil)

	_, compile := recorder.Record(ctx, "compile")
	_, err := compile.Stdout().Write([]byte("A.java:1: warning: deprecated\n"))
	require.NoError(t, err)
	_, err = compile.Stderr().Write([]byte("1 warning\n"))
	require.NoError(t, err)
	compile.Complete(errors.New("compilation failed"))

	_, skipped := recorder.Record(ctx, "compile")
	skipped.Cached()
	skipped.Complete(nil)

	assert.NoError(t, recorder.Close())
}
