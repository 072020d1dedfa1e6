package renderer

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// FrameSync owns the per-slot semaphores and fences and drives the
// acquire, submit, present cycle
type FrameSync struct {
	device  core1_0.Device
	timeout time.Duration
	ring    *frameRing

	imageAvailableSemaphore []core1_0.Semaphore
	renderFinishedSemaphore []core1_0.Semaphore
	inFlightFence           []core1_0.Fence
}

// NewFrameSync creates the sync objects for maxFramesInFlight slots. Fences
// start signalled so the first wait on each slot returns at once.
func NewFrameSync(device core1_0.Device, maxFramesInFlight, imageCount int, timeout time.Duration) (*FrameSync, error) {
	s := &FrameSync{
		device:  device,
		timeout: timeout,
		ring:    newFrameRing(maxFramesInFlight, imageCount),
	}

	for i := 0; i < maxFramesInFlight; i++ {
		semaphore, _, err := device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
		if err != nil {
			s.Destroy()
			return nil, markf(err, ErrSyncObjectCreation, "createSyncObjects: slot %d", i)
		}
		s.imageAvailableSemaphore = append(s.imageAvailableSemaphore, semaphore)

		semaphore, _, err = device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
		if err != nil {
			s.Destroy()
			return nil, markf(err, ErrSyncObjectCreation, "createSyncObjects: slot %d", i)
		}
		s.renderFinishedSemaphore = append(s.renderFinishedSemaphore, semaphore)

		fence, _, err := device.CreateFence(nil, core1_0.FenceCreateInfo{
			Flags: core1_0.FenceCreateSignaled,
		})
		if err != nil {
			s.Destroy()
			return nil, markf(err, ErrSyncObjectCreation, "createSyncObjects: slot %d", i)
		}
		s.inFlightFence = append(s.inFlightFence, fence)
	}

	return s, nil
}

// BeginFrame blocks until the current slot's previous submission is done
func (s *FrameSync) BeginFrame() error {
	_, err := s.device.WaitForFences(true, s.timeout, []core1_0.Fence{s.inFlightFence[s.ring.current]})
	if err != nil {
		return errors.Wrapf(err, "waiting for frame slot %d", s.ring.current)
	}
	return nil
}

// AcquireStatus says what became of an acquire
type AcquireStatus int

const (
	// ImageAcquired is a normal acquire
	ImageAcquired AcquireStatus = iota
	// ImageSuboptimal means the image was acquired and its semaphore will be
	// signalled, but the swapchain should be rebuilt once it is presented
	ImageSuboptimal
	// SwapchainOutOfDate means no image was acquired and nothing was signalled
	SwapchainOutOfDate
)

// Acquire gets the next swapchain image for the current slot
func (s *FrameSync) Acquire(swapchain khr_swapchain.Swapchain) (int, AcquireStatus, error) {
	imageIndex, res, err := swapchain.AcquireNextImage(s.timeout, s.imageAvailableSemaphore[s.ring.current], nil)
	switch {
	case res == khr_swapchain.VKErrorOutOfDate:
		return 0, SwapchainOutOfDate, nil
	case err != nil:
		return 0, ImageAcquired, errors.Wrap(err, "acquiring swapchain image")
	case res == khr_swapchain.VKSuboptimal:
		return imageIndex, ImageSuboptimal, nil
	}

	return imageIndex, ImageAcquired, nil
}

// Submit waits for any earlier frame still rendering to the image, hands the
// image to the current slot and submits its command buffer
func (s *FrameSync) Submit(queue core1_0.Queue, imageIndex int, commandBuffer core1_0.CommandBuffer) error {
	if previous, wait := s.ring.claimImage(imageIndex); wait && previous != s.ring.current {
		_, err := s.inFlightFence[previous].Wait(s.timeout)
		if err != nil {
			return errors.Wrapf(err, "waiting for image %d", imageIndex)
		}
	}

	fence := s.inFlightFence[s.ring.current]
	_, err := s.device.ResetFences([]core1_0.Fence{fence})
	if err != nil {
		return errors.Wrap(err, "resetting frame fence")
	}

	_, err = queue.Submit(fence, []core1_0.SubmitInfo{
		{
			WaitSemaphores:   []core1_0.Semaphore{s.imageAvailableSemaphore[s.ring.current]},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{commandBuffer},
			SignalSemaphores: []core1_0.Semaphore{s.renderFinishedSemaphore[s.ring.current]},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "submitting image %d", imageIndex)
	}

	return nil
}

// Present queues the image for display once rendering finishes. needsRebuild
// is set when the swapchain is out of date or suboptimal.
func (s *FrameSync) Present(swapchainExtension khr_swapchain.Extension, queue core1_0.Queue, swapchain khr_swapchain.Swapchain, imageIndex int) (needsRebuild bool, err error) {
	res, err := swapchainExtension.QueuePresent(queue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{s.renderFinishedSemaphore[s.ring.current]},
		Swapchains:     []khr_swapchain.Swapchain{swapchain},
		ImageIndices:   []int{imageIndex},
	})
	if res == khr_swapchain.VKErrorOutOfDate || res == khr_swapchain.VKSuboptimal {
		return true, nil
	} else if err != nil {
		return false, errors.Wrapf(err, "presenting image %d", imageIndex)
	}

	return false, nil
}

func (s *FrameSync) EndFrame() {
	s.ring.advance()
}

// ResizeImages forgets image ownership after the swapchain was rebuilt with
// imageCount images
func (s *FrameSync) ResizeImages(imageCount int) {
	s.ring.resetImages(imageCount)
}

func (s *FrameSync) Destroy() {
	for _, fence := range s.inFlightFence {
		fence.Destroy(nil)
	}
	s.inFlightFence = nil

	for _, semaphore := range s.renderFinishedSemaphore {
		semaphore.Destroy(nil)
	}
	s.renderFinishedSemaphore = nil

	for _, semaphore := range s.imageAvailableSemaphore {
		semaphore.Destroy(nil)
	}
	s.imageAvailableSemaphore = nil
}
