// Package controller implements the submission/result state machine: input
// selection, the request lifecycle, result rendering and artifact export.
//
// A Controller is driven from a single event loop and is not safe for
// concurrent use. Only Execute may run off the loop; it does not touch
// controller state.
package controller

import (
	"context"
	"io"
	"log/slog"

	"github.com/charliek/tracehelper/internal/api"
	"github.com/charliek/tracehelper/internal/domain"
)

// Service is the remote analysis service
type Service interface {
	Process(ctx context.Context, source domain.LogSource, opts domain.SubmissionOptions) (*api.ProcessResponse, error)
}

// Submission is a request that has been started but not yet sent
type Submission struct {
	ID      uint64
	Source  domain.LogSource
	Options domain.SubmissionOptions
}

// Outcome is the result of executing a Submission
type Outcome struct {
	ID       uint64
	Response *api.ProcessResponse
	Err      error
}

// Controller owns the request state, the rendered panels and the last
// successful query.
type Controller struct {
	service Service
	logger  *slog.Logger

	state  domain.RequestState
	busy   bool
	lastID uint64

	panels   Panels
	artifact string
}

// New creates a controller in the Idle state
func New(service Service, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		service: service,
		logger:  logger,
		state:   domain.Idle(),
	}
}

// State returns the current request state
func (c *Controller) State() domain.RequestState {
	return c.state
}

// Busy reports whether a submission is outstanding.
// While busy the submit control is disabled and the spinner shown.
func (c *Controller) Busy() bool {
	return c.busy
}

// Begin starts a submission. Both panels are hidden and the controller is
// marked busy before anything is sent. Returns ErrSubmissionPending while a
// previous submission is outstanding.
func (c *Controller) Begin(source domain.LogSource, opts domain.SubmissionOptions) (Submission, error) {
	if c.busy {
		return Submission{}, domain.ErrSubmissionPending
	}

	c.panels.hide()
	c.lastID++
	c.state = domain.Pending(c.lastID)
	c.busy = true

	c.logger.Info("submission started",
		"request_id", c.lastID,
		"source", source.Kind().String())

	return Submission{ID: c.lastID, Source: source, Options: opts}, nil
}

// Execute sends the submission to the service. It issues exactly one call
// and never mutates the controller, so it can run inside a background command.
func (c *Controller) Execute(ctx context.Context, sub Submission) Outcome {
	resp, err := c.service.Process(ctx, sub.Source, sub.Options)
	return Outcome{ID: sub.ID, Response: resp, Err: err}
}

// Complete applies an outcome. The busy flag is cleared before the result
// or error panel is rendered. Outcomes of superseded submissions are
// discarded and reported as not applied.
func (c *Controller) Complete(o Outcome) (domain.RequestState, bool) {
	if o.ID != c.lastID || !c.busy {
		c.logger.Debug("discarding stale response", "request_id", o.ID, "current", c.lastID)
		return c.state, false
	}

	c.busy = false

	switch {
	case o.Err != nil:
		c.state = domain.Failed(o.ID, domain.NetworkErrorMessage(o.Err))
		c.logger.Info("submission failed", "request_id", o.ID, "error", o.Err)
	case o.Response == nil:
		c.state = domain.Failed(o.ID, domain.NetworkErrorMessage(domain.ErrMalformedResponse))
	case o.Response.Success:
		c.state = domain.Succeeded(o.ID, o.Response.ToResult())
		c.logger.Info("submission succeeded", "request_id", o.ID, "count", o.Response.Count)
	default:
		c.state = domain.Failed(o.ID, o.Response.Error)
		c.logger.Info("service rejected submission", "request_id", o.ID, "error", o.Response.Error)
	}

	c.Render(c.state)
	return c.state, true
}

// Submit runs a whole submission inline
func (c *Controller) Submit(ctx context.Context, source domain.LogSource, opts domain.SubmissionOptions) (domain.RequestState, error) {
	sub, err := c.Begin(source, opts)
	if err != nil {
		return c.state, err
	}
	state, _ := c.Complete(c.Execute(ctx, sub))
	return state, nil
}

// Reset returns to Idle, hiding both panels. A submission still in flight
// is invalidated and its response will be discarded. The artifact is kept.
func (c *Controller) Reset() {
	c.panels.hide()
	c.lastID++
	c.busy = false
	c.state = domain.Idle()
}

// Artifact returns the query of the last successful submission
func (c *Controller) Artifact() (string, bool) {
	return c.artifact, c.artifact != ""
}

// Snapshot returns the current artifact frozen in time, for exports that
// run outside the event loop
func (c *Controller) Snapshot() ArtifactSource {
	return artifactSnapshot(c.artifact)
}

type artifactSnapshot string

func (a artifactSnapshot) Artifact() (string, bool) {
	return string(a), a != ""
}
