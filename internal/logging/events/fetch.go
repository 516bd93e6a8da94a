package events

import "github.com/atomicstack/composetag/internal/logging"

type FetchTracer struct{}

var Fetch = FetchTracer{}

func (FetchTracer) Queue(seq int, repo, cursor string) {
	logging.Trace("fetch.queue", map[string]interface{}{"seq": seq, "repo": repo, "cursor": cursor})
}

func (FetchTracer) Result(seq int, repo string, rows int, err error) {
	payload := map[string]interface{}{"seq": seq, "repo": repo, "rows": rows}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("fetch.result", payload)
}

func (FetchTracer) Stale(seq, current int) {
	logging.Trace("fetch.stale", map[string]interface{}{"seq": seq, "current": current})
}

func (FetchTracer) Request(url string) {
	logging.Trace("fetch.request", map[string]interface{}{"url": url})
}
