package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/controller"
	"github.com/charliek/tracehelper/internal/domain"
)

// Focus is the field receiving keyboard input
type Focus int

const (
	FocusFile Focus = iota
	FocusText
	FocusSpans
	FocusVerbose
	FocusResults
)

// focusOrder is the tab order of the fields
var focusOrder = []Focus{FocusFile, FocusText, FocusSpans, FocusVerbose, FocusResults}

// Default widget sizes before the first WindowSizeMsg
const (
	defaultWidth      = 80
	textAreaHeight    = 8
	outputHeight      = 8
	panelPadding      = 4
	minOutputHeight   = 3
	reservedRows      = 22
	maxErrorLineWidth = 200
)

// Options configures a Model
type Options struct {
	Address  string
	Timeout  time.Duration
	Defaults domain.SubmissionOptions
	// Output is the terminal writer; stdout when nil
	Output io.Writer
}

// Model is the bubbletea model for the trace helper
type Model struct {
	// Dependencies
	ctrl     *controller.Controller
	exporter *controller.Exporter
	feedback *controller.Feedback
	ctx      context.Context

	// State
	selector  controller.InputSelector
	options   domain.SubmissionOptions
	address   string
	timeout   time.Duration
	fileError string

	// UI components
	fileInput textinput.Model
	textArea  textarea.Model
	spinner   spinner.Model
	output    viewport.Model
	help      help.Model
	keys      KeyMap

	focus  Focus
	width  int
	height int
	ready  bool
}

// NewModel creates a new TUI model
func NewModel(ctx context.Context, ctrl *controller.Controller, exporter *controller.Exporter, opts Options) Model {
	fi := textinput.New()
	fi.Placeholder = "path/to/service.log (enter to select)"
	fi.Prompt = ""
	fi.CharLimit = 4096
	fi.Width = defaultWidth - panelPadding
	fi.Focus()

	ta := textarea.New()
	ta.Placeholder = "...or paste log lines here"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(defaultWidth - panelPadding)
	ta.SetHeight(textAreaHeight)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = spinnerStyle

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	return Model{
		ctrl:      ctrl,
		exporter:  exporter,
		feedback:  controller.NewFeedback(),
		ctx:       ctx,
		options:   opts.Defaults,
		address:   opts.Address,
		timeout:   timeout,
		fileInput: fi,
		textArea:  ta,
		spinner:   sp,
		output:    viewport.New(defaultWidth-panelPadding, outputHeight),
		help:      help.New(),
		keys:      Keys,
		focus:     FocusFile,
		width:     defaultWidth,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SubmissionDoneMsg is sent when the service call of a submission returns
type SubmissionDoneMsg controller.Outcome

// ExportDoneMsg is sent when a copy or download finishes
type ExportDoneMsg struct {
	Control      controller.Control
	Notification domain.Notification
}

// FeedbackExpiredMsg is sent when a control's notification should revert
type FeedbackExpiredMsg struct {
	Control controller.Control
	Gen     uint64
}

// feedbackExpireCmd returns a command that reverts a notification after the feedback delay
func feedbackExpireCmd(control controller.Control, gen uint64) tea.Cmd {
	return tea.Tick(constants.FeedbackDuration, func(t time.Time) tea.Msg {
		return FeedbackExpiredMsg{Control: control, Gen: gen}
	})
}

// executeCmd runs a started submission off the event loop
func (m Model) executeCmd(sub controller.Submission) tea.Cmd {
	ctrl, parent, timeout := m.ctrl, m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return SubmissionDoneMsg(ctrl.Execute(ctx, sub))
	}
}

// copyCmd copies the current artifact
func (m Model) copyCmd() tea.Cmd {
	exp := m.exporter.For(m.ctrl.Snapshot())
	return func() tea.Msg {
		return ExportDoneMsg{Control: controller.ControlCopy, Notification: exp.Copy()}
	}
}

// downloadCmd downloads the current artifact
func (m Model) downloadCmd() tea.Cmd {
	exp := m.exporter.For(m.ctrl.Snapshot())
	parent, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return ExportDoneMsg{Control: controller.ControlDownload, Notification: exp.Download(ctx)}
	}
}
