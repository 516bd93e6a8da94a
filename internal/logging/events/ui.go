package events

import "github.com/atomicstack/composetag/internal/logging"

type UITracer struct{}

type RepoTracer struct{}

type ActionTracer struct{}

var (
	UI     = UITracer{}
	Repo   = RepoTracer{}
	Action = ActionTracer{}
)

func (UITracer) Mode(from, to string) {
	logging.Trace("mode.change", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) TagCursor(cursor int, text string) {
	logging.Trace("tags.cursor", map[string]interface{}{"cursor": cursor, "row": text})
}

func (UITracer) Key(mode, key string) {
	logging.Trace("key", map[string]interface{}{"mode": mode, "key": key})
}

func (RepoTracer) Edit(value string, cursor int) {
	logging.Trace("repo.edit", map[string]interface{}{"value": value, "cursor": cursor})
}

func (RepoTracer) Confirm(input, repo string) {
	logging.Trace("repo.confirm", map[string]interface{}{"input": input, "repo": repo})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}
