package controller

import "github.com/charliek/tracehelper/internal/domain"

// Panel identifies which result panel is visible
type Panel int

const (
	PanelNone Panel = iota
	PanelResults
	PanelError
)

// Panels is the rendered form of the request state.
// At most one panel is visible; Output survives hiding so the last query
// stays in place until the next success overwrites it.
type Panels struct {
	Visible      Panel
	Summary      string
	Detail       string
	Output       string
	ErrorMessage string

	focus Panel
}

func (p *Panels) hide() {
	p.Visible = PanelNone
	p.focus = PanelNone
}

// Panels returns the current panel contents
func (c *Controller) Panels() Panels {
	return c.panels
}

// TakeFocus returns the panel that asked for focus since the last call, or
// PanelNone. Views use it to move the cursor and viewport once per render.
func (c *Controller) TakeFocus() Panel {
	p := c.panels.focus
	c.panels.focus = PanelNone
	return p
}

// Render switches the panels to reflect state. A success records the query
// as the exportable artifact; a failure leaves the artifact untouched.
func (c *Controller) Render(state domain.RequestState) {
	switch state.Phase {
	case domain.PhaseSucceeded:
		if state.Result == nil {
			return
		}
		r := *state.Result
		c.panels.Summary = r.Summary()
		c.panels.Detail = r.VerboseInfo
		c.panels.Output = r.Query
		c.artifact = r.Query
		c.panels.Visible = PanelResults
		c.panels.focus = PanelResults
	case domain.PhaseFailed:
		c.panels.ErrorMessage = state.Message
		c.panels.Visible = PanelError
		c.panels.focus = PanelError
	default:
		c.panels.hide()
	}
}
