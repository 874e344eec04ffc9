package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// Toolchain defines the interface for invoking the external compiler.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Version returns the version stamp of the compiler, for example "javac 21.0.2".
	Version(ctx context.Context) (string, error)

	// Compile runs the compiler once for every source in the request.
	//
	// A non-zero exit code is not an error; it is reported in the result.
	// An error is returned only when the compiler could not be run.
	Compile(ctx context.Context, req *domain.CompileRequest) (*domain.CompileResult, error)
}
