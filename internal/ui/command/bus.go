package command

import (
	"context"
	"time"

	"github.com/atomicstack/composetag/internal/logging"
	"github.com/atomicstack/composetag/internal/logging/events"
	"github.com/atomicstack/composetag/internal/registry"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTimeout bounds a single tag fetch.
const DefaultTimeout = 30 * time.Second

// Request describes one page fetch.
type Request struct {
	Repo   string
	Cursor string
}

// TagsLoaded is delivered through the program's message queue when a fetch
// finishes.
type TagsLoaded struct {
	Seq     int
	Request Request
	Page    registry.TagPage
	Err     error
}

// Bus runs tag fetches off the update goroutine. Only the most recent fetch
// is live: starting a new one cancels its predecessor.
type Bus struct {
	ctx     context.Context
	source  registry.Source
	timeout time.Duration
	seq     int
	cancel  context.CancelFunc
}

// New initialises a bus bound to ctx. A nil ctx means context.Background.
func New(ctx context.Context, source registry.Source) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, source: source, timeout: DefaultTimeout}
}

// Current returns the sequence number of the live fetch.
func (b *Bus) Current() int { return b.seq }

// Fetch queues req and returns its sequence number with the command that
// performs it.
func (b *Bus) Fetch(req Request) (int, tea.Cmd) {
	b.Cancel()
	b.seq++
	seq := b.seq
	ctx, cancel := context.WithTimeout(b.ctx, b.timeout)
	b.cancel = cancel
	source := b.source
	events.Fetch.Queue(seq, req.Repo, req.Cursor)
	return seq, func() tea.Msg {
		defer cancel()
		if source == nil {
			return TagsLoaded{Seq: seq, Request: req, Err: errNoSource}
		}
		page, err := source.FetchTags(ctx, req.Repo, req.Cursor)
		if err != nil {
			logging.Error(err)
		}
		events.Fetch.Result(seq, req.Repo, len(page.Rows), err)
		return TagsLoaded{Seq: seq, Request: req, Page: page, Err: err}
	}
}

// Invalidate cancels the live fetch and advances the sequence so its result,
// should it still arrive, is stale.
func (b *Bus) Invalidate() {
	b.Cancel()
	b.seq++
}

// Cancel aborts the live fetch, if any.
func (b *Bus) Cancel() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}
