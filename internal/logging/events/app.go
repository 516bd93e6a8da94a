package events

import "github.com/atomicstack/composetag/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Degraded(path string, err error) {
	logging.Trace("app.degraded", map[string]interface{}{"file": path, "error": err.Error()})
}

func (AppTracer) Quit(dirty bool) {
	logging.Trace("app.quit", map[string]interface{}{"unsaved": dirty})
}
