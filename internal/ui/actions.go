package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/composetag/internal/compose"
	"github.com/atomicstack/composetag/internal/logging"
	"github.com/atomicstack/composetag/internal/logging/events"
	"github.com/atomicstack/composetag/internal/registry"
	"github.com/atomicstack/composetag/internal/ui/command"
	"github.com/atomicstack/composetag/internal/ui/widget"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	errNoFileLoaded     = errors.New("no file loaded")
	errEmptyRepo        = errors.New("repository is empty")
	errNothingToRefresh = errors.New("no repository to refresh")
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(m.mode.String(), keyMsg.String())

	switch actionFor(keyMsg) {
	case actionQuit:
		m.Shutdown()
		return tea.Quit
	case actionSave:
		m.save()
		return nil
	case actionCycle:
		m.cycle(false)
		return nil
	case actionCycleBack:
		m.cycle(true)
		return nil
	}

	switch m.mode {
	case ModeEditRepo:
		return m.handleEditRepoKey(keyMsg)
	case ModeSelectTag:
		return m.handleSelectTagKey(keyMsg)
	case ModeSelectService:
		return m.handleSelectServiceKey(keyMsg)
	}
	return nil
}

func (m *Model) handleEditRepoKey(msg tea.KeyMsg) tea.Cmd {
	if handled := m.handleTextInput(msg); handled {
		return nil
	}
	switch actionFor(msg) {
	case actionConfirm:
		return m.confirmRepo()
	case actionRefresh:
		return m.refresh()
	}
	return nil
}

func (m *Model) handleSelectTagKey(msg tea.KeyMsg) tea.Cmd {
	moved := false
	switch actionFor(msg) {
	case actionConfirm:
		return m.confirmTag()
	case actionRefresh:
		return m.refresh()
	case actionUp:
		moved = m.tags.MoveUp()
	case actionDown:
		moved = m.tags.MoveDown()
	case actionPageUp:
		moved = m.tags.MovePageUp(m.maxVisibleTags())
	case actionPageDown:
		moved = m.tags.MovePageDown(m.maxVisibleTags())
	case actionHome:
		moved = m.tags.MoveHome()
	case actionEnd:
		moved = m.tags.MoveEnd()
	}
	if moved {
		m.syncDetails()
		if row, ok := m.tags.Current(); ok {
			events.UI.TagCursor(m.tags.Cursor, row.Text)
		}
	}
	return nil
}

func (m *Model) handleSelectServiceKey(msg tea.KeyMsg) tea.Cmd {
	if m.file == nil {
		return nil
	}
	switch actionFor(msg) {
	case actionUp:
		return m.moveService(m.file.FindPrevious, "up")
	case actionDown:
		return m.moveService(m.file.FindNext, "down")
	case actionConfirm, actionRefresh:
		return m.fetchCurrentService()
	}
	return nil
}

func (m *Model) cycle(backward bool) {
	from := m.mode
	step := Mode.Next
	if backward {
		step = Mode.Prev
	}
	m.mode = step(m.mode)
	if m.degraded && m.mode == ModeSelectService {
		m.mode = step(m.mode)
	}
	if m.mode == ModeEditRepo {
		if cmd := m.repoCursor.Focus(); cmd != nil {
			m.repoCursorDirty = true
		}
	} else {
		m.repoCursor.Blur()
	}
	m.info.SetText(m.mode.Hint())
	events.UI.Mode(from.String(), m.mode.String())
}

// confirmRepo normalizes the committed repository and fetches its first page.
func (m *Model) confirmRepo() tea.Cmd {
	input := m.repoEntry.Confirm()
	if input == "" {
		m.info.SetError(errEmptyRepo)
		return nil
	}
	repo, err := registry.NormalizeRepo(input)
	if err != nil {
		m.rejectRepo(err)
		return nil
	}
	events.Repo.Confirm(input, repo)
	return m.startFetch(repo, "")
}

func (m *Model) refresh() tea.Cmd {
	if m.repo == "" {
		m.info.SetError(errNothingToRefresh)
		return nil
	}
	return m.startFetch(m.repo, "")
}

// startFetch replaces the listing with a status row and queues the request.
// The spinner tick chain is started only when none is running.
func (m *Model) startFetch(repo, cursor string) tea.Cmd {
	ticking := m.loading
	m.repo = repo
	m.loading = true
	m.tags = widget.NewStatus(fmt.Sprintf("Fetching tags for %s…", registry.DisplayRepo(repo)))
	m.details.SetLines(nil)
	_, cmd := m.bus.Fetch(command.Request{Repo: repo, Cursor: cursor})
	if ticking {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) handleTagsLoadedMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.TagsLoaded)
	if !ok {
		return nil
	}
	if current := m.bus.Current(); result.Seq != current {
		events.Fetch.Stale(result.Seq, current)
		return nil
	}
	m.loading = false
	if result.Err != nil {
		m.showFetchError(result.Err)
		return nil
	}
	m.tags = widget.FromPage(result.Page, m.now())
	m.tags.EnsureCursorVisible(m.maxVisibleTags())
	m.syncDetails()
	return nil
}

func (m *Model) showFetchError(err error) {
	m.loading = false
	m.tags = widget.NewError(err)
	m.details.SetLines(nil)
	events.Action.Error(err)
}

// rejectRepo shows err for a repository that never reached the registry. The
// live fetch belongs to the previous repository, so it is invalidated.
func (m *Model) rejectRepo(err error) {
	m.bus.Invalidate()
	m.repo = ""
	m.showFetchError(err)
}

func (m *Model) syncDetails() {
	m.details.SetLines(m.tags.DetailLines())
}

// confirmTag writes the highlighted tag into the current service line, or
// follows a pagination row.
func (m *Model) confirmTag() tea.Cmd {
	tag, err := m.tags.Selected()
	var pageErr *widget.PageSelectedError
	if errors.As(err, &pageErr) {
		return m.startFetch(m.repo, pageErr.Cursor)
	}
	if err != nil {
		m.info.SetError(err)
		events.Action.Error(err)
		return nil
	}
	image := m.imageFor(tag)
	if m.file == nil {
		m.info.SetText(fmt.Sprintf("Selected %s (%s)", image, errNoFileLoaded))
		events.Action.Success(image)
		return nil
	}
	line := m.file.Current()
	before, _ := m.file.ExtractRepo()
	if err := m.file.ChangeCurrentLine(image); err != nil {
		m.info.SetError(err)
		events.Action.Error(err)
		return nil
	}
	events.Service.Change(line, before, image)
	info := fmt.Sprintf("%s → %s", before, image)
	if service := m.file.ServiceName(line); service != "" {
		info = fmt.Sprintf("%s: %s", service, info)
	}
	m.info.SetText(info)
	return nil
}

// imageFor builds the reference written for tag. When the listing belongs to
// the current line's repository the repository is kept as written there.
func (m *Model) imageFor(tag string) string {
	if m.file != nil {
		if token, err := m.file.ExtractRepo(); err == nil {
			if repo, err := registry.RepositoryFromImage(token); err == nil {
				if normalized, err := registry.NormalizeRepo(repo); err == nil && normalized == m.repo {
					return registry.RepositoryPart(token) + ":" + tag
				}
			}
		}
	}
	return registry.DisplayRepo(m.repo) + ":" + tag
}

func (m *Model) moveService(find func() bool, direction string) tea.Cmd {
	if !find() {
		events.Service.NoMatch(direction)
		m.info.SetError(fmt.Errorf("%w %s", compose.ErrNoMatch, directionWord(direction)))
		return nil
	}
	return m.fetchCurrentService()
}

func directionWord(direction string) string {
	if direction == "up" {
		return "above"
	}
	return "below"
}

// fetchCurrentService copies the current line's repository into the entry and
// fetches it.
func (m *Model) fetchCurrentService() tea.Cmd {
	token, err := m.file.ExtractRepo()
	if err != nil {
		m.info.SetError(err)
		m.rejectRepo(err)
		return nil
	}
	events.Service.Select(m.file.Current(), token)
	name, err := registry.RepositoryFromImage(token)
	if err != nil {
		m.rejectRepo(err)
		return nil
	}
	repo, err := registry.NormalizeRepo(name)
	if err != nil {
		m.rejectRepo(err)
		return nil
	}
	m.repoEntry.Set(registry.DisplayRepo(repo))
	m.repoEntry.Confirm()
	m.info.SetText(m.mode.Hint())
	return m.startFetch(repo, "")
}

func (m *Model) save() {
	if m.file == nil {
		m.info.SetError(errNoFileLoaded)
		events.Service.Save("", errNoFileLoaded)
		return
	}
	err := m.file.Save()
	events.Service.Save(m.file.Path(), err)
	if err != nil {
		logging.Error(err)
		m.info.SetError(err)
		return
	}
	m.info.SetText(fmt.Sprintf("Saved %s", m.file.Path()))
}
