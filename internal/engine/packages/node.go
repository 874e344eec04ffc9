package packages

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the package resolver Graft node.
const NodeID graft.ID = "engine.packages"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Resolver, error) {
			return NewResolver(), nil
		},
	})
}
