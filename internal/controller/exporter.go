package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charliek/tracehelper/internal/clipboard"
	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/domain"
)

// ArtifactSource provides the query to export
type ArtifactSource interface {
	Artifact() (string, bool)
}

// Clipboard is the primary copy path
type Clipboard interface {
	Available() bool
	WriteAll(text string) error
}

// FallbackSurface stages text on a temporary surface for a manual copy
type FallbackSurface interface {
	Stage(text string) (clipboard.Staged, error)
}

// Downloader fetches the downloadable form of a query
type Downloader interface {
	Download(ctx context.Context, query string) ([]byte, error)
}

// ExporterConfig holds the collaborators of an Exporter.
// Clipboard and Fallback may be nil when the capability is absent.
type ExporterConfig struct {
	Source     ArtifactSource
	Clipboard  Clipboard
	Fallback   FallbackSurface
	Downloader Downloader
	Dir        string
	Logger     *slog.Logger
}

// Exporter copies and downloads the last successful query.
// It only reads the artifact and never starts a submission.
type Exporter struct {
	source     ArtifactSource
	clipboard  Clipboard
	fallback   FallbackSurface
	downloader Downloader
	dir        string
	logger     *slog.Logger
}

// NewExporter creates an exporter
func NewExporter(cfg ExporterConfig) *Exporter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	dir := cfg.Dir
	if dir == "" {
		dir = constants.DefaultDownloadDir
	}
	return &Exporter{
		source:     cfg.Source,
		clipboard:  cfg.Clipboard,
		fallback:   cfg.Fallback,
		downloader: cfg.Downloader,
		dir:        dir,
		logger:     logger,
	}
}

// For returns a copy of the exporter reading from source
func (e *Exporter) For(source ArtifactSource) *Exporter {
	cp := *e
	cp.source = source
	return &cp
}

// DownloadPath returns where Download writes the query
func (e *Exporter) DownloadPath() string {
	return filepath.Join(e.dir, constants.DownloadFileName)
}

// Copy copies the artifact, trying the system clipboard first and the
// fallback surface when the clipboard is unavailable or fails.
func (e *Exporter) Copy() domain.Notification {
	text, ok := e.source.Artifact()
	if !ok {
		return domain.Failure(domain.MsgNoQueryToCopy)
	}

	if e.clipboard != nil && e.clipboard.Available() {
		err := e.clipboard.WriteAll(text)
		if err == nil {
			return domain.Success(domain.MsgCopied)
		}
		e.logger.Debug("clipboard write failed, using fallback", "error", err)
	}

	if err := e.fallbackCopy(text); err != nil {
		e.logger.Debug("fallback copy failed", "error", err)
		return domain.Failure(domain.MsgCopyFailed)
	}
	return domain.Success(domain.MsgCopied)
}

// fallbackCopy stages text, copies it and releases the surface on every
// exit path, including a panic inside Copy.
func (e *Exporter) fallbackCopy(text string) (err error) {
	if e.fallback == nil {
		return domain.ErrCopyUnsupported
	}

	staged, err := e.fallback.Stage(text)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrCopyUnsupported, r)
		}
		if relErr := staged.Release(); relErr != nil {
			e.logger.Debug("releasing copy surface", "error", relErr)
		}
	}()

	return staged.Copy()
}

// Download fetches the artifact from the service and saves it under the
// fixed download name. Without an artifact nothing is requested.
func (e *Exporter) Download(ctx context.Context) domain.Notification {
	query, ok := e.source.Artifact()
	if !ok {
		return domain.Failure(domain.MsgNoQueryToDownload)
	}

	if err := e.download(ctx, query); err != nil {
		e.logger.Info("download failed", "error", err)
		return domain.Failure(domain.MsgDownloadFailed + err.Error())
	}
	return domain.Success(domain.MsgDownloaded)
}

func (e *Exporter) download(ctx context.Context, query string) error {
	if e.downloader == nil {
		return fmt.Errorf("no download endpoint configured")
	}

	data, err := e.downloader.Download(ctx, query)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}
	path := e.DownloadPath()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	e.logger.Info("query downloaded", "path", path, "bytes", len(data))
	return nil
}
