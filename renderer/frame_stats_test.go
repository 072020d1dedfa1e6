package renderer

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestFrameStatsDisabled(t *testing.T) {
	c := qt.New(t)

	logger, hook := test.NewNullLogger()
	stats := newFrameStats(logger, 0)
	for i := 0; i < 10; i++ {
		stats.frame()
	}

	c.Assert(stats.total, qt.Equals, 10)
	c.Assert(hook.AllEntries(), qt.HasLen, 0)
}

func TestFrameStatsReports(t *testing.T) {
	c := qt.New(t)

	logger, hook := test.NewNullLogger()
	stats := newFrameStats(logger, time.Nanosecond)
	time.Sleep(time.Millisecond)
	stats.frame()

	entry := hook.LastEntry()
	c.Assert(entry, qt.Not(qt.IsNil))
	c.Assert(entry.Message, qt.Equals, "frame rate")
	c.Assert(entry.Data["frames"], qt.Equals, 1)
	c.Assert(stats.frames, qt.Equals, 0)
	c.Assert(stats.total, qt.Equals, 1)
}
