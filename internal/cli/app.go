package cli

import (
	"log/slog"

	"github.com/charliek/tracehelper/internal/client"
	"github.com/charliek/tracehelper/internal/clipboard"
	"github.com/charliek/tracehelper/internal/config"
	"github.com/charliek/tracehelper/internal/controller"
)

// app wires the service client, controller and exporter for one command run
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *client.Client
	ctrl     *controller.Controller
	exporter *controller.Exporter
}

// newApp builds the components from cfg. Downloads are written to dir and
// fallback stages text when the system clipboard is unavailable.
func newApp(cfg *config.Config, dir string, logger *slog.Logger, fallback controller.FallbackSurface) *app {
	c := client.NewClient(cfg.Service.Address, cfg.RequestTimeout(), logger)
	ctrl := controller.New(c, logger)
	exporter := controller.NewExporter(controller.ExporterConfig{
		Source:     ctrl,
		Clipboard:  clipboard.System{},
		Fallback:   fallback,
		Downloader: c,
		Dir:        dir,
		Logger:     logger,
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		client:   c,
		ctrl:     ctrl,
		exporter: exporter,
	}
}
