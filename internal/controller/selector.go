package controller

import (
	"strings"

	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/domain"
)

// InputSelector keeps the file and text inputs mutually exclusive.
// Only a new non-empty value on one side clears the other.
type InputSelector struct {
	file *domain.LogFile
	text string
}

// SelectFiles records a file selection. A non-empty selection takes the
// first file and clears the text; an empty one only empties the file field.
func (s *InputSelector) SelectFiles(files []domain.LogFile) {
	if len(files) == 0 {
		s.file = nil
		return
	}
	f := files[0]
	s.file = &f
	s.text = ""
}

// EditText records the pasted text. Non-blank text clears the file.
func (s *InputSelector) EditText(text string) {
	s.text = text
	if strings.TrimSpace(text) != "" {
		s.file = nil
	}
}

// LoadExample replaces the input with the built-in example log
func (s *InputSelector) LoadExample() {
	s.text = constants.ExampleLog
	s.file = nil
}

// Clear empties both inputs
func (s *InputSelector) Clear() {
	s.file = nil
	s.text = ""
}

// File returns the selected file, or nil
func (s *InputSelector) File() *domain.LogFile {
	return s.file
}

// Text returns the current text
func (s *InputSelector) Text() string {
	return s.text
}

// Source returns the current log source
func (s *InputSelector) Source() domain.LogSource {
	src := domain.LogSource{Text: s.text}
	if s.file != nil {
		f := *s.file
		src.File = &f
	}
	return src
}
