// Package clipboard provides the two copy paths used by the exporter: the
// system clipboard, and an OSC52 terminal escape used as a fallback when the
// system clipboard is missing or fails (headless sessions, SSH, containers).
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/charliek/tracehelper/internal/domain"
)

// Staged is a temporary copy surface holding the text to copy.
// Release must be called exactly once, whether or not Copy succeeded.
type Staged interface {
	Copy() error
	Release() error
}

// System is the primary clipboard backed by the platform clipboard utility
type System struct{}

// Available reports whether a clipboard utility was found on this system
func (System) Available() bool {
	return !clipboard.Unsupported
}

// WriteAll copies text to the system clipboard
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return domain.ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// OSC52 copies through the terminal emulator using the OSC52 escape sequence
type OSC52 struct {
	// Open returns the writer the sequence is written to
	Open func() (io.WriteCloser, error)
	// Env looks up environment variables to detect terminal multiplexers
	Env func(string) string
}

// NewOSC52 returns an OSC52 surface writing to the controlling terminal
func NewOSC52() *OSC52 {
	return &OSC52{
		Open: openTTY,
		Env:  os.Getenv,
	}
}

// openTTY opens the controlling terminal for writing.
// Writing there instead of stdout keeps the sequence out of redirected output.
func openTTY() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// Stage acquires the terminal and prepares the escape sequence for text
func (o *OSC52) Stage(text string) (Staged, error) {
	if term := o.Env("TERM"); term == "dumb" {
		return nil, fmt.Errorf("%w: terminal %q", domain.ErrCopyUnsupported, term)
	}

	w, err := o.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCopyUnsupported, err)
	}

	seq := osc52.New(text)
	switch {
	case o.Env("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(o.Env("TERM"), "screen"):
		seq = seq.Screen()
	}

	return &staged{w: w, seq: seq}, nil
}

// staged holds an open terminal and a prepared sequence
type staged struct {
	w   io.WriteCloser
	seq osc52.Sequence
}

// Copy writes the whole sequence in one Write
func (s *staged) Copy() error {
	if _, err := io.WriteString(s.w, s.seq.String()); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}

func (s *staged) Release() error {
	return s.w.Close()
}

// SharedOutput is a terminal shared by a TUI renderer and OSC52 copies.
// Writes are serialized, so a copy sequence is never written in the middle
// of a rendered frame. It forwards Fd so the renderer still detects the
// terminal.
type SharedOutput struct {
	mu sync.Mutex
	f  *os.File
}

// NewSharedOutput wraps f, usually os.Stdout
func NewSharedOutput(f *os.File) *SharedOutput {
	return &SharedOutput{f: f}
}

func (o *SharedOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.f.Write(p)
}

func (o *SharedOutput) Read(p []byte) (int, error) {
	return o.f.Read(p)
}

// Close is a no-op; the terminal outlives the program
func (o *SharedOutput) Close() error {
	return nil
}

// Fd returns the descriptor of the wrapped terminal
func (o *SharedOutput) Fd() uintptr {
	return o.f.Fd()
}

// Surface returns an OSC52 fallback that writes through o
func (o *SharedOutput) Surface() *OSC52 {
	return &OSC52{
		Open: func() (io.WriteCloser, error) { return o, nil },
		Env:  os.Getenv,
	}
}
