package ui

// Mode selects which pane receives navigation and confirm keys.
type Mode int

const (
	ModeEditRepo Mode = iota
	ModeSelectTag
	ModeSelectService
	modeCount
)

var modeNames = [modeCount]string{"edit-repo", "select-tag", "select-service"}

var modeHints = [modeCount]string{"Edit repository", "Select a tag", "Select an image"}

// Next returns the successor in the cycle EditRepo → SelectTag → SelectService.
func (m Mode) Next() Mode {
	return Mode((int(m.normalized()) + 1) % int(modeCount))
}

// Prev returns the predecessor of m.
func (m Mode) Prev() Mode {
	return Mode((int(m.normalized()) + int(modeCount) - 1) % int(modeCount))
}

// Hint is the contextual help shown when the mode becomes active.
func (m Mode) Hint() string { return modeHints[m.normalized()] }

func (m Mode) String() string { return modeNames[m.normalized()] }

func (m Mode) normalized() Mode {
	if m < 0 || m >= modeCount {
		return ModeEditRepo
	}
	return m
}
