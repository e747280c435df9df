package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charliek/tracehelper/internal/controller"
)

// Run starts the TUI application. In-flight requests are cancelled when it exits.
func Run(ctx context.Context, ctrl *controller.Controller, exporter *controller.Exporter, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, ctrl, exporter, opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(model, progOpts...)

	_, err := p.Run()
	return err
}
