package renderer

import (
	"testing"

	qt "github.com/frankban/quicktest"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestTeardownRunsInReverse(t *testing.T) {
	c := qt.New(t)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	var destroyed []string
	stack := newTeardown(logger)
	for _, name := range []string{"instance", "surface", "logical device", "swapchain"} {
		name := name
		stack.push(name, func() { destroyed = append(destroyed, name) })
	}
	c.Assert(stack.len(), qt.Equals, 4)

	stack.run()
	c.Assert(destroyed, qt.DeepEquals, []string{"swapchain", "logical device", "surface", "instance"})
	c.Assert(stack.len(), qt.Equals, 0)

	entries := hook.AllEntries()
	c.Assert(entries, qt.HasLen, 4)
	c.Assert(entries[0].Data["object"], qt.Equals, "swapchain")
	c.Assert(entries[3].Data["object"], qt.Equals, "instance")
}

func TestTeardownRunTwice(t *testing.T) {
	c := qt.New(t)

	logger, _ := test.NewNullLogger()

	calls := 0
	stack := newTeardown(logger)
	stack.push("pool", func() { calls++ })

	stack.run()
	stack.run()
	c.Assert(calls, qt.Equals, 1)

	// Refilled after a run, as a rebuilt presentation set does
	stack.push("pool", func() { calls++ })
	stack.run()
	c.Assert(calls, qt.Equals, 2)
}

func TestPresentationSetDestroyNil(t *testing.T) {
	var set *PresentationSet
	set.Destroy()
}
