package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Document is the text shown in the viewer.
type Document struct {
	// Path is the absolute file path. It is empty for generated content.
	Path string

	// Name is the display name.
	Name string

	Lines []string
}

// LoadDocument reads a file as a list of lines.
func LoadDocument(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	return &Document{Path: abs, Name: filepath.Base(abs), Lines: SplitLines(string(data))}, nil
}

// Reload re-reads the document from disk. Generated documents are left
// unchanged.
func (d *Document) Reload() error {
	if d.Path == "" {
		return nil
	}
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return errors.Wrap(err, "reload document")
	}
	d.Lines = SplitLines(string(data))
	return nil
}

// SplitLines splits text on newlines, dropping carriage returns and the
// empty line after a final newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

var sampleWords = []string{
	"inertia", "momentum", "flick", "bounce", "overscroll", "deceleration",
	"viewport", "offset", "snap", "gesture", "velocity", "edge",
}

// SampleDocument generates n lines of placeholder text. Every tenth line
// is wide so the horizontal axis can scroll too.
func SampleDocument(n int) *Document {
	lines := make([]string, n)
	for i := range lines {
		var b strings.Builder
		fmt.Fprintf(&b, "%4d  ", i+1)
		words := 6 + i%5
		if i%10 == 9 {
			words = 40
		}
		for w := 0; w < words; w++ {
			if w > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(sampleWords[(i*7+w*3)%len(sampleWords)])
		}
		if i%25 == 24 {
			b.WriteString("  スクロール")
		}
		lines[i] = b.String()
	}
	return &Document{Name: "sample", Lines: lines}
}
