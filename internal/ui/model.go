package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/composetag/internal/compose"
	"github.com/atomicstack/composetag/internal/registry"
	"github.com/atomicstack/composetag/internal/theme"
	"github.com/atomicstack/composetag/internal/ui/command"
	"github.com/atomicstack/composetag/internal/ui/widget"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	// Context bounds every fetch; cancelling it aborts the live request.
	Context context.Context
	Source  registry.Source
	// File is the loaded service-definition file. Nil selects degraded mode.
	File        *compose.File
	InitialRepo string
	Width       int
	Height      int
	ShowFooter  bool
	// Now overrides the clock used for tag ages.
	Now func() time.Time
}

// Model implements the Bubble Tea model. It owns the interaction mode and
// every widget; widgets never talk to each other.
type Model struct {
	mode     Mode
	degraded bool

	file      *compose.File
	repoEntry *widget.RepoEntry
	tags      *widget.TagList
	details   widget.Details
	info      *widget.Info

	// repo is the normalized repository of the current listing.
	repo        string
	initialRepo string
	loading     bool

	spinner         spinner.Model
	repoCursor      cursor.Model
	repoCursorDirty bool

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	now         func() time.Time

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel initialises the UI state from opts.
func NewModel(opts Options) *Model {
	m := &Model{
		file:        opts.File,
		degraded:    opts.File == nil,
		repoEntry:   widget.NewRepoEntry(""),
		tags:        widget.NewStatus("No repository selected"),
		bus:         command.New(opts.Context, opts.Source),
		initialRepo: opts.InitialRepo,
		showFooter:  opts.ShowFooter,
		now:         opts.Now,
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.mode = ModeSelectService
	if m.degraded {
		m.mode = ModeEditRepo
	}
	m.info = widget.NewInfo(m.mode.Hint())
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	if styles.Loading != nil {
		s.Style = *styles.Loading
	}
	m.spinner = s

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Entry != nil {
		c.TextStyle = styles.Entry.Copy()
	}
	c.SetChar(" ")
	m.repoCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It starts the first fetch: the
// configured initial repository, or else the first image in the file.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if cmd := m.startupFetch(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.mode == ModeEditRepo {
		if cmd := m.repoCursor.Focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) startupFetch() tea.Cmd {
	if m.initialRepo != "" {
		m.repoEntry.Set(m.initialRepo)
		return m.confirmRepo()
	}
	if m.file != nil && m.file.FindNext() {
		return m.fetchCurrentService()
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateRepoCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(command.TagsLoaded{}): m.handleTagsLoadedMsg,
		reflect.TypeOf(spinner.TickMsg{}):    m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.repoCursorDirty {
		m.repoCursorDirty = false
		m.repoCursor.Blink = false
		if cmd := m.repoCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.tags.EnsureCursorVisible(m.maxVisibleTags())
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !m.loading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}

// Mode reports the active interaction mode.
func (m *Model) Mode() Mode { return m.mode }

// Degraded reports whether the model runs without a service-definition file.
func (m *Model) Degraded() bool { return m.degraded }

// Shutdown cancels the live fetch.
func (m *Model) Shutdown() {
	m.bus.Cancel()
}
