package events

import "github.com/atomicstack/composetag/internal/logging"

type ServiceTracer struct{}

var Service = ServiceTracer{}

func (ServiceTracer) Select(line int, image string) {
	logging.Trace("service.select", map[string]interface{}{"line": line, "image": image})
}

func (ServiceTracer) NoMatch(direction string) {
	logging.Trace("service.nomatch", map[string]interface{}{"direction": direction})
}

func (ServiceTracer) Change(line int, before, after string) {
	logging.Trace("service.change", map[string]interface{}{"line": line, "before": before, "after": after})
}

func (ServiceTracer) Save(path string, err error) {
	payload := map[string]interface{}{"file": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("service.save", payload)
}
