package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charliek/tracehelper/internal/controller"
	"github.com/charliek/tracehelper/internal/domain"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
		return m, nil

	case SubmissionDoneMsg:
		if _, applied := m.ctrl.Complete(controller.Outcome(msg)); applied {
			m.syncPanels()
		}
		return m, nil

	case ExportDoneMsg:
		gen := m.feedback.Show(msg.Control, msg.Notification)
		return m, feedbackExpireCmd(msg.Control, gen)

	case FeedbackExpiredMsg:
		m.feedback.Expire(msg.Control, msg.Gen)
		return m, nil

	case spinner.TickMsg:
		// Let the spinner stop once the request is done
		if !m.ctrl.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings first
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		cmd := m.moveFocus(1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := m.moveFocus(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd()
	case key.Matches(msg, m.keys.Download):
		return m, m.downloadCmd()
	case key.Matches(msg, m.keys.Example):
		m.selector.LoadExample()
		m.syncInputs()
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.selector.Clear()
		m.fileError = ""
		m.syncInputs()
		return m, nil
	}

	// Field-specific bindings
	switch m.focus {
	case FocusFile, FocusText:
		if msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.focus == FocusFile && key.Matches(msg, m.keys.SelectFile) {
			m.selectFile()
			return m, nil
		}
	case FocusSpans, FocusVerbose:
		if key.Matches(msg, m.keys.Toggle) {
			if m.focus == FocusSpans {
				m.options.IncludeSpans = !m.options.IncludeSpans
			} else {
				m.options.Verbose = !m.options.Verbose
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	case FocusResults:
		switch {
		case key.Matches(msg, resultKeys.Copy):
			return m, m.copyCmd()
		case key.Matches(msg, resultKeys.Download):
			return m, m.downloadCmd()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	}

	return m.updateFocused(msg)
}

// updateFocused routes a message to the focused widget
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case FocusFile:
		m.fileInput, cmd = m.fileInput.Update(msg)
	case FocusText:
		before := m.textArea.Value()
		m.textArea, cmd = m.textArea.Update(msg)
		if after := m.textArea.Value(); after != before {
			m.selector.EditText(after)
			m.syncInputs()
		}
	case FocusResults:
		m.output, cmd = m.output.Update(msg)
	}

	return m, cmd
}

// submit starts a submission. While one is outstanding the submit control
// is disabled and the key does nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	sub, err := m.ctrl.Begin(m.selector.Source(), m.options)
	if err != nil {
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, m.executeCmd(sub))
}

// selectFile turns the path typed in the file field into a selection
func (m *Model) selectFile() {
	path := strings.TrimSpace(m.fileInput.Value())
	m.fileError = ""

	if path == "" {
		m.selector.SelectFiles(nil)
		m.syncInputs()
		return
	}

	// A failed selection drops the previous file so the field and the
	// submitted source never disagree
	info, err := os.Stat(path)
	switch {
	case err != nil:
		m.fileError = fmt.Sprintf("cannot select %s: %v", path, err)
		m.selector.SelectFiles(nil)
		return
	case info.IsDir():
		m.fileError = fmt.Sprintf("cannot select %s: is a directory", path)
		m.selector.SelectFiles(nil)
		return
	}

	m.selector.SelectFiles([]domain.LogFile{{Path: path}})
	m.syncInputs()
}

// syncInputs mirrors the selector into the widgets after one side cleared the other
func (m *Model) syncInputs() {
	if m.textArea.Value() != m.selector.Text() {
		m.textArea.SetValue(m.selector.Text())
	}

	path := ""
	if f := m.selector.File(); f != nil {
		path = f.Path
	}
	if m.fileInput.Value() != path {
		m.fileInput.SetValue(path)
	}
}

// syncPanels refreshes the output viewport and moves focus to a panel that asked for it
func (m *Model) syncPanels() {
	panels := m.ctrl.Panels()
	m.output.SetContent(panels.Output)

	if m.ctrl.TakeFocus() != controller.PanelNone {
		m.setFocus(FocusResults)
		m.output.GotoTop()
	}
}

// moveFocus moves focus by delta positions in the tab order
func (m *Model) moveFocus(delta int) tea.Cmd {
	idx := 0
	for i, f := range focusOrder {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(focusOrder)) % len(focusOrder)
	return m.setFocus(focusOrder[idx])
}

// setFocus focuses f and blurs the other text widgets
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.fileInput.Blur()
	m.textArea.Blur()

	switch f {
	case FocusFile:
		return m.fileInput.Focus()
	case FocusText:
		return m.textArea.Focus()
	}
	return nil
}

// handleWindowSize handles window resize messages
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	inner := msg.Width - panelPadding
	if inner < 1 {
		inner = 1
	}
	m.fileInput.Width = inner
	m.textArea.SetWidth(inner)
	m.help.Width = msg.Width

	outHeight := msg.Height - reservedRows
	if outHeight < minOutputHeight {
		outHeight = minOutputHeight
	}
	m.output.Width = inner
	m.output.Height = outHeight
}
