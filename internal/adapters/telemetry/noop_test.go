package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestNoOp(t *testing.T) {
	tel := telemetry.NewNoOp()
	ctx := context.Background()

	gotCtx, v := tel.Record(ctx, "compile")
	assert.Equal(t, ctx, gotCtx)

	n, err := v.Stdout().Write([]byte("output"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	v.Log(domain.LogLevelInfo, "ignored")
	v.Cached()
	v.Complete(nil)
	require.NoError(t, tel.Close())
}
