package depscan

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the dependency extractor Graft node.
const NodeID graft.ID = "engine.depscan"

func init() {
	graft.Register(graft.Node[ports.DependencyExtractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DependencyExtractor, error) {
			return NewExtractor(), nil
		},
	})
}
