package renderer

import log "github.com/sirupsen/logrus"

type teardownStep struct {
	name    string
	destroy func()
}

// teardown records destructors in acquisition order and runs them in
// reverse. It is the only place objects get destroyed, so creation order
// and destruction order cannot drift apart.
type teardown struct {
	logger log.FieldLogger
	steps  []teardownStep
}

func newTeardown(logger log.FieldLogger) *teardown {
	return &teardown{logger: logger}
}

func (t *teardown) push(name string, destroy func()) {
	t.steps = append(t.steps, teardownStep{name: name, destroy: destroy})
}

func (t *teardown) len() int {
	return len(t.steps)
}

// run destroys everything pushed so far, newest first, and leaves the
// stack empty so it can be refilled
func (t *teardown) run() {
	for i := len(t.steps) - 1; i >= 0; i-- {
		step := t.steps[i]
		t.logger.WithField("object", step.name).Debug("destroying")
		step.destroy()
	}
	t.steps = t.steps[:0]
}
