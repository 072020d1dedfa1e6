package renderer

import (
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/core1_0"
)

// PresentationSet is everything that depends on the swapchain's format and
// extent. It is destroyed and rebuilt as a unit when the surface changes.
type PresentationSet struct {
	Params    SwapchainParams
	Swapchain *SwapchainState

	ImageViews     []core1_0.ImageView
	RenderPass     core1_0.RenderPass
	PipelineLayout core1_0.PipelineLayout
	Pipeline       core1_0.Pipeline
	Framebuffers   []core1_0.Framebuffer
	CommandBuffers []core1_0.CommandBuffer

	teardown *teardown
}

func (p *PresentationSet) Destroy() {
	if p == nil {
		return
	}
	p.teardown.run()
}

func (r *Renderer) buildPresentationSet(width, height int) (*PresentationSet, error) {
	set := &PresentationSet{teardown: newTeardown(r.logger)}

	err := r.fillPresentationSet(set, width, height)
	if err != nil {
		set.teardown.run()
		return nil, err
	}

	r.logger.WithFields(log.Fields{
		"format":       set.Params.Format.Format,
		"present_mode": set.Params.PresentMode,
		"extent":       set.Params.Extent,
		"images":       len(set.Swapchain.Images),
	}).Info("swapchain ready")

	return set, nil
}

func (r *Renderer) fillPresentationSet(set *PresentationSet, width, height int) error {
	device := r.device.Device

	support, err := QuerySwapchainSupport(r.surface, r.physical.Device)
	if err != nil {
		return markf(err, ErrSwapchainCreation, "querySwapchainSupport")
	}

	set.Params, err = NegotiateSwapchain(support, width, height, r.device.Indices)
	if err != nil {
		return err
	}

	set.Swapchain, err = BuildSwapchain(r.swapchainExtension, device, r.surface, set.Params, support.Capabilities)
	if err != nil {
		return err
	}
	set.teardown.push("swapchain", set.Swapchain.Destroy)

	set.ImageViews, err = CreateImageViews(device, set.Swapchain.Images, set.Swapchain.Format)
	if err != nil {
		return err
	}
	set.teardown.push("image views", func() {
		destroyImageViews(set.ImageViews)
		set.ImageViews = nil
	})

	set.RenderPass, err = CreateRenderPass(device, set.Swapchain.Format)
	if err != nil {
		return err
	}
	set.teardown.push("render pass", func() {
		set.RenderPass.Destroy(nil)
		set.RenderPass = nil
	})

	set.Pipeline, set.PipelineLayout, err = CreateGraphicsPipeline(device, set.RenderPass, set.Swapchain.Extent, r.vertShader, r.fragShader)
	if err != nil {
		return err
	}
	set.teardown.push("pipeline layout", func() {
		set.PipelineLayout.Destroy(nil)
		set.PipelineLayout = nil
	})
	set.teardown.push("pipeline", func() {
		set.Pipeline.Destroy(nil)
		set.Pipeline = nil
	})

	set.Framebuffers, err = CreateFramebuffers(device, set.ImageViews, set.RenderPass, set.Swapchain.Extent)
	if err != nil {
		return err
	}
	set.teardown.push("framebuffers", func() {
		destroyFramebuffers(set.Framebuffers)
		set.Framebuffers = nil
	})

	set.CommandBuffers, err = RecordCommandBuffers(device, r.commandPool, set.Framebuffers, set.RenderPass, set.Pipeline, set.Swapchain.Extent, r.draw)
	if err != nil {
		return err
	}
	set.teardown.push("command buffers", func() {
		device.FreeCommandBuffers(set.CommandBuffers)
		set.CommandBuffers = nil
	})

	return nil
}
