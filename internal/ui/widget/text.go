package widget

// Details shows a read-only summary of the highlighted tag.
type Details struct {
	lines []string
}

// SetLines replaces the shown lines with a copy of lines.
func (d *Details) SetLines(lines []string) {
	d.lines = append([]string(nil), lines...)
}

// Lines returns the shown lines.
func (d *Details) Lines() []string { return d.lines }

// Info is the one-line status and hint area.
type Info struct {
	text  string
	isErr bool
}

// NewInfo returns an Info showing text.
func NewInfo(text string) *Info {
	return &Info{text: text}
}

// SetText shows text as a plain message.
func (i *Info) SetText(text string) {
	i.text = text
	i.isErr = false
}

// SetError shows err as an error message. A nil err clears the line.
func (i *Info) SetError(err error) {
	if err == nil {
		i.SetText("")
		return
	}
	i.text = err.Error()
	i.isErr = true
}

// Text returns the current message.
func (i *Info) Text() string { return i.text }

// IsError reports whether the current message is an error.
func (i *Info) IsError() bool { return i.isErr }
