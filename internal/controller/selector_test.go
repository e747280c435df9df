package controller

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/domain"
)

func TestInputSelector_FileClearsText(t *testing.T) {
	var s InputSelector
	s.EditText("T-abc")
	s.SelectFiles([]domain.LogFile{{Path: "a.log"}, {Path: "b.log"}})

	assert.Equal(t, "", s.Text())
	assert.Equal(t, "a.log", s.File().Path)
	assert.Equal(t, domain.SourceFile, s.Source().Kind())
}

func TestInputSelector_TextClearsFile(t *testing.T) {
	var s InputSelector
	s.SelectFiles([]domain.LogFile{{Path: "a.log"}})
	s.EditText("T-abc")

	assert.Nil(t, s.File())
	assert.Equal(t, "T-abc", s.Text())
	assert.Equal(t, domain.SourceText, s.Source().Kind())
}

func TestInputSelector_BlankTextKeepsFile(t *testing.T) {
	var s InputSelector
	s.SelectFiles([]domain.LogFile{{Path: "a.log"}})

	s.EditText("   \n\t")
	assert.NotNil(t, s.File())

	// typing then deleting to blank does not reset the file either
	s.EditText("")
	assert.NotNil(t, s.File())
}

func TestInputSelector_EmptySelectionKeepsText(t *testing.T) {
	var s InputSelector
	s.EditText("T-abc")
	s.SelectFiles(nil)

	assert.Equal(t, "T-abc", s.Text())
	assert.Nil(t, s.File())
}

func TestInputSelector_LoadExample(t *testing.T) {
	var s InputSelector
	s.SelectFiles([]domain.LogFile{{Path: "a.log"}})
	s.LoadExample()

	assert.Nil(t, s.File())
	assert.Equal(t, constants.ExampleLog, s.Text())
}

func TestInputSelector_SourceIsACopy(t *testing.T) {
	var s InputSelector
	s.SelectFiles([]domain.LogFile{{Path: "a.log"}})

	src := s.Source()
	src.File.Path = "changed.log"
	assert.Equal(t, "a.log", s.File().Path)
}

func TestInputSelector_ExclusiveAfterEveryNonEmptyEvent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	texts := []string{"", " ", "T-1", "\n", "log line"}

	var s InputSelector
	for i := 0; i < 1000; i++ {
		nonEmpty := false
		if rng.Intn(2) == 0 {
			var files []domain.LogFile
			if rng.Intn(3) > 0 {
				files = []domain.LogFile{{Path: "f.log"}}
				nonEmpty = true
			}
			s.SelectFiles(files)
		} else {
			text := texts[rng.Intn(len(texts))]
			nonEmpty = strings.TrimSpace(text) != ""
			s.EditText(text)
		}

		if nonEmpty {
			fileSelected := s.File() != nil
			textNonBlank := strings.TrimSpace(s.Text()) != ""
			assert.False(t, fileSelected && textNonBlank, "both inputs set after event %d", i)
		}
	}
}
