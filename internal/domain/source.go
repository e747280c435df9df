package domain

import (
	"io"
	"os"
	"path/filepath"
)

// SourceKind identifies which input the user chose for a submission
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceFile
	SourceText
)

// String returns the string representation of SourceKind
func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceText:
		return "text"
	default:
		return "none"
	}
}

// LogFile is a handle to a log file selected by the user.
// The file is only opened when a submission is sent.
type LogFile struct {
	Path string
}

// Name returns the base name of the file, used as the upload file name
func (f LogFile) Name() string {
	return filepath.Base(f.Path)
}

// Open opens the file for reading
func (f LogFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// LogSource is the user's chosen log input.
//
// File and Text are both carried because both travel on the wire; the
// service decides precedence. The input selector keeps at most one of them
// set after each non-empty edit.
type LogSource struct {
	File *LogFile
	Text string
}

// Kind reports which input is active. A selected file wins over text.
func (s LogSource) Kind() SourceKind {
	switch {
	case s.File != nil:
		return SourceFile
	case s.Text != "":
		return SourceText
	default:
		return SourceNone
	}
}

// IsEmpty returns true if neither a file nor text is present
func (s LogSource) IsEmpty() bool {
	return s.Kind() == SourceNone
}

// SubmissionOptions are the toggles read at submission time
type SubmissionOptions struct {
	IncludeSpans bool
	Verbose      bool
}
