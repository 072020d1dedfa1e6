package renderer

const noOwner = -1

// frameRing tracks which frame slot is current and which slot last
// submitted work to each swapchain image
type frameRing struct {
	maxFramesInFlight int
	current           int
	imageOwners       []int
}

func newFrameRing(maxFramesInFlight, imageCount int) *frameRing {
	r := &frameRing{maxFramesInFlight: maxFramesInFlight}
	r.resetImages(imageCount)
	return r
}

// claimImage hands the image to the current slot. It returns the slot that
// owned the image before, and whether its fence has to be waited on first.
func (r *frameRing) claimImage(imageIndex int) (previousSlot int, wait bool) {
	previousSlot = r.imageOwners[imageIndex]
	r.imageOwners[imageIndex] = r.current
	return previousSlot, previousSlot != noOwner
}

func (r *frameRing) advance() {
	r.current = (r.current + 1) % r.maxFramesInFlight
}

// resetImages forgets every image owner, used after the swapchain is rebuilt
func (r *frameRing) resetImages(imageCount int) {
	r.imageOwners = make([]int, imageCount)
	for i := range r.imageOwners {
		r.imageOwners[i] = noOwner
	}
}
