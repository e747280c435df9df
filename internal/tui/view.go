package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/charliek/tracehelper/internal/controller"
	"github.com/charliek/tracehelper/internal/domain"
)

// Labels of the export controls when no notification is showing
const (
	copyLabel     = "Copy"
	downloadLabel = "Download"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sections := []string{
		m.headerView(),
		m.inputView(),
		m.optionsView(),
		m.submitView(),
	}

	panels := m.ctrl.Panels()
	switch panels.Visible {
	case controller.PanelResults:
		sections = append(sections, m.resultsView(panels))
	case controller.PanelError:
		sections = append(sections, m.errorView(panels))
	}

	sections = append(sections, helpStyle.Width(m.width).Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	title := titleStyle.Render("Trace ID Helper")
	addr := dimStyle.Render(m.address)
	return headerStyle.Width(m.width).Render(title + "  " + addr)
}

func (m Model) inputView() string {
	var b strings.Builder

	b.WriteString(m.label("Log file", FocusFile))
	b.WriteString("\n")
	b.WriteString(m.fileInput.View())
	b.WriteString("\n")
	if m.fileError != "" {
		b.WriteString(errorTextStyle.Render(truncate(m.fileError, maxErrorLineWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.label("Log text", FocusText))
	b.WriteString("\n")
	b.WriteString(m.textArea.View())

	return b.String()
}

func (m Model) optionsView() string {
	spans := m.label(checkbox(m.options.IncludeSpans)+" Include spans", FocusSpans)
	verbose := m.label(checkbox(m.options.Verbose)+" Verbose", FocusVerbose)
	return spans + "   " + verbose
}

func (m Model) submitView() string {
	if m.ctrl.Busy() {
		return m.spinner.View() + " Processing..."
	}
	return dimStyle.Render("ctrl+s to generate query")
}

func (m Model) resultsView(p controller.Panels) string {
	var b strings.Builder

	b.WriteString(summaryStyle.Render(p.Summary))
	b.WriteString("\n")
	if p.Detail != "" {
		b.WriteString(dimStyle.Render(p.Detail))
		b.WriteString("\n")
	}
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(m.controlView(controller.ControlCopy, copyLabel))
	b.WriteString(" ")
	b.WriteString(m.controlView(controller.ControlDownload, downloadLabel))

	style := panelStyle
	if m.focus == FocusResults {
		style = focusedPanelStyle
	}
	return style.Width(m.width - 2).Render(b.String())
}

// errorView shows the failure message in full, wrapped to the panel width
func (m Model) errorView(p controller.Panels) string {
	body := errorStyle.Render("Error") + " " + errorTextStyle.Render(p.ErrorMessage)
	return errorPanelStyle.Width(m.width - 2).Render(body)
}

// controlView renders an export control, replaced by its notification while one is showing
func (m Model) controlView(control controller.Control, label string) string {
	n, ok := m.feedback.Current(control)
	if !ok {
		return controlStyle.Render(label)
	}
	return notificationStyle(n).Render(n.Message)
}

func (m Model) label(text string, f Focus) string {
	if m.focus == f {
		return focusedLabelStyle.Render("> " + text)
	}
	return labelStyle.Render("  " + text)
}

func notificationStyle(n domain.Notification) lipgloss.Style {
	if n.IsError {
		return errorStyle
	}
	return successStyle
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// truncate shortens s to max runes, marking the cut with an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
