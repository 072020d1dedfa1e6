package renderer

import (
	"testing"

	"github.com/cockroachdb/errors"
	qt "github.com/frankban/quicktest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/mock/gomock"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/core/driver"
	"github.com/vkngwrapper/core/mocks"
)

var triangle = DrawParams{
	VertexCount:   3,
	InstanceCount: 1,
	ClearColor:    mgl32.Vec4{0.1, 0.2, 0.3, 1},
}

// expectRecording expects the full draw to be recorded into buffer
func expectRecording(c *qt.C, buffer *mocks.MockCommandBuffer, draw DrawParams) {
	gomock.InOrder(
		buffer.EXPECT().Begin(gomock.Any()).Return(core1_0.VKSuccess, nil),
		buffer.EXPECT().CmdBeginRenderPass(core1_0.SubpassContentsInline, gomock.Any()).DoAndReturn(
			func(_ core1_0.SubpassContents, info core1_0.RenderPassBeginInfo) error {
				c.Assert(info.ClearValues, qt.HasLen, 1)
				c.Check(info.ClearValues[0], qt.Equals, core1_0.ClearValue(core1_0.ClearValueFloat{
					draw.ClearColor.X(), draw.ClearColor.Y(), draw.ClearColor.Z(), draw.ClearColor.W(),
				}))
				return nil
			}),
		buffer.EXPECT().CmdBindPipeline(core1_0.PipelineBindPointGraphics, gomock.Any()),
		buffer.EXPECT().CmdDraw(draw.VertexCount, draw.InstanceCount, uint32(0), uint32(0)),
		buffer.EXPECT().CmdEndRenderPass(),
		buffer.EXPECT().End().Return(core1_0.VKSuccess, nil),
	)
}

func TestCreateCommandPool(t *testing.T) {
	c := qt.New(t)
	ctrl := gomock.NewController(t)

	device := mocks.NewMockDevice(ctrl)
	pool := mocks.NewMockCommandPool(ctrl)
	device.EXPECT().CreateCommandPool(nil, gomock.Any()).DoAndReturn(
		func(_ *driver.AllocationCallbacks, info core1_0.CommandPoolCreateInfo) (core1_0.CommandPool, common.VkResult, error) {
			c.Assert(info.QueueFamilyIndex, qt.IsNotNil)
			c.Check(*info.QueueFamilyIndex, qt.Equals, 2)
			return pool, core1_0.VKSuccess, nil
		})

	created, err := CreateCommandPool(device, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(created, qt.Equals, core1_0.CommandPool(pool))
}

func TestCreateCommandPoolFailure(t *testing.T) {
	c := qt.New(t)
	ctrl := gomock.NewController(t)

	device := mocks.NewMockDevice(ctrl)
	device.EXPECT().CreateCommandPool(nil, gomock.Any()).Return(nil, core1_0.VKErrorOutOfHostMemory, core1_0.VKErrorOutOfHostMemory.ToError())

	_, err := CreateCommandPool(device, 1)
	c.Assert(errors.Is(err, ErrCommandPoolCreation), qt.IsTrue)
	c.Assert(errors.Is(err, ErrSetup), qt.IsFalse)
	c.Assert(err, qt.ErrorMatches, `createCommandPool: family 1: .*`)
}

func TestRecordCommandBuffers(t *testing.T) {
	c := qt.New(t)
	ctrl := gomock.NewController(t)

	device := mocks.NewMockDevice(ctrl)
	pool := mocks.NewMockCommandPool(ctrl)
	buffers := []*mocks.MockCommandBuffer{mocks.NewMockCommandBuffer(ctrl), mocks.NewMockCommandBuffer(ctrl)}
	framebuffers := []core1_0.Framebuffer{mocks.NewMockFramebuffer(ctrl), mocks.NewMockFramebuffer(ctrl)}

	device.EXPECT().AllocateCommandBuffers(gomock.Any()).DoAndReturn(
		func(info core1_0.CommandBufferAllocateInfo) ([]core1_0.CommandBuffer, common.VkResult, error) {
			c.Check(info.CommandPool, qt.Equals, core1_0.CommandPool(pool))
			c.Check(info.Level, qt.Equals, core1_0.CommandBufferLevelPrimary)
			c.Check(info.CommandBufferCount, qt.Equals, 2)
			return []core1_0.CommandBuffer{buffers[0], buffers[1]}, core1_0.VKSuccess, nil
		})
	for _, buffer := range buffers {
		expectRecording(c, buffer, triangle)
	}

	recorded, err := RecordCommandBuffers(device, pool, framebuffers, mocks.NewMockRenderPass(ctrl), mocks.NewMockPipeline(ctrl),
		core1_0.Extent2D{Width: 800, Height: 600}, triangle)
	c.Assert(err, qt.IsNil)
	c.Assert(recorded, qt.HasLen, 2)
}

func TestRecordCommandBuffersFailureFreesBuffers(t *testing.T) {
	c := qt.New(t)
	ctrl := gomock.NewController(t)

	device := mocks.NewMockDevice(ctrl)
	good := mocks.NewMockCommandBuffer(ctrl)
	bad := mocks.NewMockCommandBuffer(ctrl)
	framebuffers := []core1_0.Framebuffer{mocks.NewMockFramebuffer(ctrl), mocks.NewMockFramebuffer(ctrl)}

	device.EXPECT().AllocateCommandBuffers(gomock.Any()).Return([]core1_0.CommandBuffer{good, bad}, core1_0.VKSuccess, nil)
	expectRecording(c, good, triangle)
	bad.EXPECT().Begin(gomock.Any()).Return(core1_0.VKErrorOutOfHostMemory, core1_0.VKErrorOutOfHostMemory.ToError())

	var freed []core1_0.CommandBuffer
	device.EXPECT().FreeCommandBuffers(gomock.Any()).Do(func(buffers []core1_0.CommandBuffer) {
		freed = buffers
	})

	recorded, err := RecordCommandBuffers(device, mocks.NewMockCommandPool(ctrl), framebuffers, mocks.NewMockRenderPass(ctrl), mocks.NewMockPipeline(ctrl),
		core1_0.Extent2D{Width: 800, Height: 600}, triangle)
	c.Assert(recorded, qt.IsNil)
	c.Assert(errors.Is(err, ErrCommandRecording), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `recordCommandBuffers: buffer 1: begin: .*`)

	c.Assert(freed, qt.HasLen, 2)
	c.Assert(freed[0], qt.Equals, core1_0.CommandBuffer(good))
	c.Assert(freed[1], qt.Equals, core1_0.CommandBuffer(bad))
}
