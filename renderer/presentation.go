package renderer

import (
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// CreateImageViews creates one color view per swapchain image. Views created
// before a failure are destroyed before returning.
func CreateImageViews(device core1_0.Device, images []core1_0.Image, format core1_0.Format) ([]core1_0.ImageView, error) {
	var imageViews []core1_0.ImageView
	for imageIdx, image := range images {
		view, _, err := device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   format,
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			destroyImageViews(imageViews)
			return nil, markf(err, ErrImageViewCreation, "createImageViews: image %d", imageIdx)
		}

		imageViews = append(imageViews, view)
	}

	return imageViews, nil
}

func destroyImageViews(views []core1_0.ImageView) {
	for _, view := range views {
		view.Destroy(nil)
	}
}

// CreateRenderPass builds a single subpass writing one color attachment that
// ends up ready for presentation
func CreateRenderPass(device core1_0.Device, format core1_0.Format) (core1_0.RenderPass, error) {
	renderPass, _, err := device.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         format,
				Samples:        core1_0.Samples1,
				LoadOp:         core1_0.AttachmentLoadOpClear,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayoutUndefined,
				FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		// The layout transition must wait for the acquire semaphore, which
		// is waited on at color attachment output
		SubpassDependencies: []core1_0.SubpassDependency{
			{
				SrcSubpass: core1_0.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask: core1_0.AccessColorAttachmentWrite,
			},
		},
	})
	if err != nil {
		return nil, markf(err, ErrRenderPassCreation, "createRenderPass")
	}

	return renderPass, nil
}

// CreateFramebuffers creates one framebuffer per image view. Framebuffers
// created before a failure are destroyed before returning.
func CreateFramebuffers(device core1_0.Device, views []core1_0.ImageView, renderPass core1_0.RenderPass, extent core1_0.Extent2D) ([]core1_0.Framebuffer, error) {
	var framebuffers []core1_0.Framebuffer
	for viewIdx, imageView := range views {
		framebuffer, _, err := device.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
			RenderPass: renderPass,
			Layers:     1,
			Attachments: []core1_0.ImageView{
				imageView,
			},
			Width:  extent.Width,
			Height: extent.Height,
		})
		if err != nil {
			destroyFramebuffers(framebuffers)
			return nil, markf(err, ErrFramebufferCreation, "createFramebuffers: framebuffer %d", viewIdx)
		}

		framebuffers = append(framebuffers, framebuffer)
	}

	return framebuffers, nil
}

func destroyFramebuffers(framebuffers []core1_0.Framebuffer) {
	for _, framebuffer := range framebuffers {
		framebuffer.Destroy(nil)
	}
}
