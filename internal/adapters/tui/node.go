package tui

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the progress view node.
const NodeID graft.ID = "adapter.tui"

func init() {
	graft.Register(graft.Node[ports.ProgressView]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProgressView, error) {
			return New(os.Stderr), nil
		},
	})
}
