package renderer

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestFrameRingAdvanceWraps(t *testing.T) {
	c := qt.New(t)

	ring := newFrameRing(2, 3)
	c.Assert(ring.current, qt.Equals, 0)

	var slots []int
	for i := 0; i < 5; i++ {
		slots = append(slots, ring.current)
		ring.advance()
	}
	c.Assert(slots, qt.DeepEquals, []int{0, 1, 0, 1, 0})
}

func TestFrameRingClaimImage(t *testing.T) {
	c := qt.New(t)

	ring := newFrameRing(2, 3)

	// Nobody rendered to image 1 yet
	previous, wait := ring.claimImage(1)
	c.Assert(wait, qt.IsFalse)
	c.Assert(previous, qt.Equals, noOwner)

	ring.advance()

	// Slot 1 acquires image 1 while slot 0 may still be rendering to it
	previous, wait = ring.claimImage(1)
	c.Assert(wait, qt.IsTrue)
	c.Assert(previous, qt.Equals, 0)
	c.Assert(ring.imageOwners, qt.DeepEquals, []int{noOwner, 1, noOwner})
}

func TestFrameRingResetImages(t *testing.T) {
	c := qt.New(t)

	ring := newFrameRing(2, 2)
	ring.claimImage(0)
	ring.advance()
	ring.claimImage(1)

	ring.resetImages(4)
	c.Assert(ring.imageOwners, qt.DeepEquals, []int{noOwner, noOwner, noOwner, noOwner})
	// The current slot survives a swapchain rebuild
	c.Assert(ring.current, qt.Equals, 1)

	_, wait := ring.claimImage(3)
	c.Assert(wait, qt.IsFalse)
}

func TestFrameRingSingleFrameInFlight(t *testing.T) {
	c := qt.New(t)

	ring := newFrameRing(1, 2)
	ring.claimImage(0)
	ring.advance()
	c.Assert(ring.current, qt.Equals, 0)

	previous, wait := ring.claimImage(0)
	c.Assert(wait, qt.IsTrue)
	c.Assert(previous, qt.Equals, 0)
}
