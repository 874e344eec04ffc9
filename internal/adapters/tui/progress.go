package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	telemetry "go.trai.ch/kiln/internal/adapters/telemetry/progrock"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.ProgressView = (*Progress)(nil)

// Progress runs builds under a live view of their phases.
type Progress struct {
	out  io.Writer
	opts []tea.ProgramOption
}

// New creates a Progress rendering to out. opts are passed on to every program.
func New(out io.Writer, opts ...tea.ProgramOption) *Progress {
	return &Progress{out: out, opts: opts}
}

// Run shows the phases build records until it returns. Quitting the view
// cancels the context of build.
func (p *Progress) Run(ctx context.Context, build func(context.Context, ports.Telemetry) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	feed := telemetry.NewFeed()
	recorder := telemetry.NewRecorder(feed)
	model := NewModel(feed)

	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(p.out)}, p.opts...)
	program := tea.NewProgram(model, opts...)

	var viewErr error
	var g errgroup.Group

	g.Go(func() error {
		_, viewErr = program.Run()
		if model.Interrupted {
			cancel()
		}
		return nil
	})

	g.Go(func() error {
		defer func() {
			_ = recorder.Close()
		}()
		return build(ctx, recorder)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if viewErr != nil && ctx.Err() == nil {
		return zerr.Wrap(viewErr, domain.ErrProgressViewFailed.Error())
	}
	return nil
}
