package renderer

import (
	"time"

	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
)

// frameStats counts presented frames and reports the rate every interval.
// A zero interval disables reporting.
type frameStats struct {
	logger   log.FieldLogger
	interval time.Duration

	windowStart time.Duration
	frames      int
	total       int
}

func newFrameStats(logger log.FieldLogger, interval time.Duration) *frameStats {
	return &frameStats{
		logger:      logger,
		interval:    interval,
		windowStart: hrtime.Now(),
	}
}

func (s *frameStats) frame() {
	s.frames++
	s.total++
	if s.interval <= 0 {
		return
	}

	elapsed := hrtime.Since(s.windowStart)
	if elapsed < s.interval {
		return
	}

	s.logger.WithFields(log.Fields{
		"frames": s.frames,
		"fps":    float64(s.frames) / elapsed.Seconds(),
	}).Info("frame rate")

	s.frames = 0
	s.windowStart = hrtime.Now()
}
