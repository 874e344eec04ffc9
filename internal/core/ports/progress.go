package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks

// ProgressView shows the phases of a build live while it runs.
type ProgressView interface {
	// Run calls build with a Telemetry whose phases are displayed until build
	// returns. The context handed to build is cancelled if the user quits the view.
	Run(ctx context.Context, build func(context.Context, Telemetry) error) error
}
