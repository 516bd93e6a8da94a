// Package compose holds the service-definition file being edited. Only lines
// carrying an image reference are selectable; edits replace the reference in
// place and stay in memory until Save.
package compose

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoMatch reports that no selectable line exists in the requested direction
	// or that the current line carries no image reference.
	ErrNoMatch = errors.New("no image found")
	// ErrReparse reports content that no longer parses as YAML.
	ErrReparse = errors.New("invalid compose file")
	// ErrSave reports an I/O failure while writing the file.
	ErrSave = errors.New("saving failed")
)

// ReparseError wraps a YAML parse failure.
type ReparseError struct {
	Path string
	Err  error
}

func (e *ReparseError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrReparse, e.Path, e.Err)
}

func (e *ReparseError) Unwrap() error { return e.Err }

func (e *ReparseError) Is(target error) bool { return target == ErrReparse }

// SaveError wraps a write failure.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrSave, e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

func (e *SaveError) Is(target error) bool { return target == ErrSave }

// imageLine splits `  image: "nginx:1.0"  # pinned` into prefix, opening
// quote, token, closing quote and remainder.
var imageLine = regexp.MustCompile(`^(\s*(?:-\s*)?image:[ \t]*)(["']?)([^\s"'#]+)(["']?)(.*)$`)

// File is an in-memory service-definition file with a selected line.
type File struct {
	path            string
	lines           []string
	current         int
	dirty           bool
	trailingNewline bool
	newline         string
}

// Load reads and parses path. A missing file yields an error matching
// fs.ErrNotExist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := reparse(path, data); err != nil {
		return nil, err
	}
	newline := "\n"
	if strings.Contains(string(data), "\r\n") {
		newline = "\r\n"
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	trailing := strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	f := New(strings.Split(text, "\n"))
	f.path = path
	f.trailingNewline = trailing
	f.newline = newline
	return f, nil
}

// New builds a File from lines without a backing path.
func New(lines []string) *File {
	dup := make([]string, len(lines))
	copy(dup, lines)
	return &File{lines: dup, current: -1, trailingNewline: true, newline: "\n"}
}

// Path returns the backing file path, if any.
func (f *File) Path() string { return f.path }

// Lines returns a copy of the current content.
func (f *File) Lines() []string {
	dup := make([]string, len(f.lines))
	copy(dup, f.lines)
	return dup
}

// Len returns the number of lines.
func (f *File) Len() int { return len(f.lines) }

// Current returns the selected line index, or -1 before the first selection.
func (f *File) Current() int { return f.current }

// Dirty reports unsaved changes.
func (f *File) Dirty() bool { return f.dirty }

// Selectable reports whether line i carries an image reference.
func (f *File) Selectable(i int) bool {
	if i < 0 || i >= len(f.lines) {
		return false
	}
	return imageLine.MatchString(f.lines[i])
}

// FindNext moves to the next line with an image reference.
func (f *File) FindNext() bool {
	for i := f.current + 1; i < len(f.lines); i++ {
		if f.Selectable(i) {
			f.current = i
			return true
		}
	}
	return false
}

// FindPrevious moves to the previous line with an image reference.
func (f *File) FindPrevious() bool {
	start := f.current - 1
	if f.current < 0 || f.current > len(f.lines) {
		start = len(f.lines) - 1
	}
	for i := start; i >= 0; i-- {
		if f.Selectable(i) {
			f.current = i
			return true
		}
	}
	return false
}

// ExtractRepo returns the image token of the selected line.
func (f *File) ExtractRepo() (string, error) {
	if f.current < 0 || f.current >= len(f.lines) {
		return "", ErrNoMatch
	}
	m := imageLine.FindStringSubmatch(f.lines[f.current])
	if m == nil {
		return "", ErrNoMatch
	}
	return m[3], nil
}

// ChangeCurrentLine swaps the image token of the selected line for image,
// keeping indentation, quoting and trailing comments.
func (f *File) ChangeCurrentLine(image string) error {
	image = strings.TrimSpace(image)
	if image == "" {
		return ErrNoMatch
	}
	if f.current < 0 || f.current >= len(f.lines) {
		return ErrNoMatch
	}
	m := imageLine.FindStringSubmatch(f.lines[f.current])
	if m == nil {
		return ErrNoMatch
	}
	updated := m[1] + m[2] + image + m[4] + m[5]
	if updated != f.lines[f.current] {
		f.lines[f.current] = updated
		f.dirty = true
	}
	return nil
}

// ServiceName returns the name of the service block enclosing line i: the
// nearest preceding "key:" line indented less than line i.
func (f *File) ServiceName(i int) string {
	if i < 0 || i >= len(f.lines) {
		return ""
	}
	indent := indentOf(f.lines[i])
	for j := i - 1; j >= 0; j-- {
		line := f.lines[j]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if indentOf(line) < indent && strings.HasSuffix(trimmed, ":") {
			return strings.TrimSuffix(trimmed, ":")
		}
	}
	return ""
}

// Content renders the lines as file bytes, using the line separator the file
// was loaded with.
func (f *File) Content() []byte {
	newline := f.newline
	if newline == "" {
		newline = "\n"
	}
	text := strings.Join(f.lines, newline)
	if f.trailingNewline {
		text += newline
	}
	return []byte(text)
}

// Save validates and writes the content to the backing path. On failure the
// in-memory content and dirty flag are left untouched.
func (f *File) Save() error {
	if f.path == "" {
		return &SaveError{Path: "(none)", Err: errors.New("no file loaded")}
	}
	data := f.Content()
	if err := reparse(f.path, data); err != nil {
		return err
	}
	if err := writeFileAtomically(f.path, data); err != nil {
		return &SaveError{Path: f.path, Err: err}
	}
	f.dirty = false
	return nil
}

func reparse(path string, data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ReparseError{Path: path, Err: err}
	}
	return nil
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
