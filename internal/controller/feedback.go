package controller

import "github.com/charliek/tracehelper/internal/domain"

// Control identifies an export control that can show a notification
type Control int

const (
	ControlCopy Control = iota
	ControlDownload
)

// Feedback tracks the transient notification shown on each export control.
//
// Every Show bumps the control's generation. A revert timer carries the
// generation it was started for, so only the newest timer reverts the
// label: repeated actions restart the delay instead of stacking.
type Feedback struct {
	active map[Control]feedbackEntry
	gen    map[Control]uint64
}

type feedbackEntry struct {
	note domain.Notification
	gen  uint64
}

// NewFeedback creates an empty feedback tracker
func NewFeedback() *Feedback {
	return &Feedback{
		active: make(map[Control]feedbackEntry),
		gen:    make(map[Control]uint64),
	}
}

// Show displays n on control and returns the generation to expire it with
func (f *Feedback) Show(control Control, n domain.Notification) uint64 {
	f.gen[control]++
	g := f.gen[control]
	f.active[control] = feedbackEntry{note: n, gen: g}
	return g
}

// Expire reverts control to its original label if gen is still current.
// Returns true if the label was reverted.
func (f *Feedback) Expire(control Control, gen uint64) bool {
	entry, ok := f.active[control]
	if !ok || entry.gen != gen {
		return false
	}
	delete(f.active, control)
	return true
}

// Current returns the notification shown on control, if any
func (f *Feedback) Current(control Control) (domain.Notification, bool) {
	entry, ok := f.active[control]
	return entry.note, ok
}
