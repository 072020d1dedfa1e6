package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/core1_0"
)

// DrawParams is the fixed draw recorded into every command buffer
type DrawParams struct {
	VertexCount   int
	InstanceCount int
	ClearColor    mgl32.Vec4
}

func CreateCommandPool(device core1_0.Device, graphicsFamily int) (core1_0.CommandPool, error) {
	pool, _, err := device.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: &graphicsFamily,
	})
	if err != nil {
		return nil, markf(err, ErrCommandPoolCreation, "createCommandPool: family %d", graphicsFamily)
	}

	return pool, nil
}

// RecordCommandBuffers allocates one primary buffer per framebuffer and
// records the draw into each. Recording stops at the first failure and every
// allocated buffer is freed.
func RecordCommandBuffers(device core1_0.Device, pool core1_0.CommandPool, framebuffers []core1_0.Framebuffer, renderPass core1_0.RenderPass, pipeline core1_0.Pipeline, extent core1_0.Extent2D, draw DrawParams) ([]core1_0.CommandBuffer, error) {
	buffers, _, err := device.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: len(framebuffers),
	})
	if err != nil {
		return nil, markf(err, ErrCommandRecording, "allocateCommandBuffers: %d buffers", len(framebuffers))
	}

	for bufferIdx, buffer := range buffers {
		err = recordCommandBuffer(buffer, framebuffers[bufferIdx], renderPass, pipeline, extent, draw)
		if err != nil {
			device.FreeCommandBuffers(buffers)
			return nil, markf(err, ErrCommandRecording, "recordCommandBuffers: buffer %d", bufferIdx)
		}
	}

	return buffers, nil
}

func recordCommandBuffer(buffer core1_0.CommandBuffer, framebuffer core1_0.Framebuffer, renderPass core1_0.RenderPass, pipeline core1_0.Pipeline, extent core1_0.Extent2D, draw DrawParams) error {
	_, err := buffer.Begin(core1_0.CommandBufferBeginInfo{})
	if err != nil {
		return errors.Wrap(err, "begin")
	}

	clear := draw.ClearColor
	err = buffer.CmdBeginRenderPass(core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  renderPass,
			Framebuffer: framebuffer,
			RenderArea: core1_0.Rect2D{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: extent,
			},
			ClearValues: []core1_0.ClearValue{
				core1_0.ClearValueFloat{clear.X(), clear.Y(), clear.Z(), clear.W()},
			},
		})
	if err != nil {
		return errors.Wrap(err, "begin render pass")
	}

	buffer.CmdBindPipeline(core1_0.PipelineBindPointGraphics, pipeline)
	buffer.CmdDraw(draw.VertexCount, draw.InstanceCount, 0, 0)
	buffer.CmdEndRenderPass()

	_, err = buffer.End()
	if err != nil {
		return errors.Wrap(err, "end")
	}

	return nil
}
