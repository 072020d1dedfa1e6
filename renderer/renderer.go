// Package renderer brings up a Vulkan device against a window surface and
// drives the acquire, submit, present loop, rebuilding the swapchain when the
// surface changes.
package renderer

import (
	"context"
	"time"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"

	"github.com/vkngwrapper/swapchain-bootstrap/config"
)

// idlePoll is how long Run sleeps between event pumps while nothing can be drawn
const idlePoll = 16 * time.Millisecond

// Window is the window system the renderer presents to
type Window interface {
	// LoaderProcAddr returns vkGetInstanceProcAddr as provided by the window system
	LoaderProcAddr() unsafe.Pointer
	RequiredInstanceExtensions() []string
	CreateSurface(instance core1_0.Instance) (khr_surface.Surface, error)

	PollEvents()
	ShouldClose() bool
	// TakeResized reports whether the window was resized since the last call
	TakeResized() bool
	// DrawableSize is the framebuffer size in pixels, 0x0 while minimized
	DrawableSize() (width, height int)

	Destroy()
}

// ShaderSource supplies compiled SPIR-V for the two pipeline stages
type ShaderSource interface {
	VertexShader() ([]byte, error)
	FragmentShader() ([]byte, error)
}

type Renderer struct {
	cfg    config.Config
	window Window
	logger log.FieldLogger
	runID  uuid.UUID

	vertShader []byte
	fragShader []byte
	draw       DrawParams

	loader         core.Loader
	instance       core1_0.Instance
	debugMessenger ext_debug_utils.Messenger
	surface        khr_surface.Surface

	physical PhysicalDeviceInfo
	device   *LogicalDeviceContext

	swapchainExtension khr_swapchain.Extension
	commandPool        core1_0.CommandPool

	presentation *PresentationSet
	sync         *FrameSync
	stats        *frameStats

	rebuildPending bool
	teardown       *teardown
}

// New builds every object the renderer needs, in dependency order. If any
// step fails, whatever was built is destroyed again and the error returned.
func New(cfg config.Config, window Window, shaders ShaderSource, logger log.FieldLogger) (*Renderer, error) {
	runID := uuid.New()
	logger = logger.WithField("run", runID.String())

	r := &Renderer{
		cfg:    cfg,
		window: window,
		logger: logger,
		runID:  runID,
		draw: DrawParams{
			VertexCount:   cfg.VertexCount,
			InstanceCount: cfg.InstanceCount,
			ClearColor:    cfg.ClearColor,
		},
		teardown: newTeardown(logger),
		stats:    newFrameStats(logger, cfg.StatsInterval),
	}

	err := r.initVulkan(shaders)
	if err != nil {
		r.teardown.run()
		return nil, err
	}

	return r, nil
}

func (r *Renderer) initVulkan(shaders ShaderSource) error {
	var err error

	r.vertShader, err = shaders.VertexShader()
	if err != nil {
		return markf(err, ErrSetup, "loading vertex shader")
	}
	r.fragShader, err = shaders.FragmentShader()
	if err != nil {
		return markf(err, ErrSetup, "loading fragment shader")
	}

	r.loader, err = core.CreateLoaderFromProcAddr(r.window.LoaderProcAddr())
	if err != nil {
		return markf(err, ErrSetup, "creating loader")
	}

	err = r.createInstance()
	if err != nil {
		return err
	}

	err = r.createSurface()
	if err != nil {
		return err
	}

	err = r.pickPhysicalDevice()
	if err != nil {
		return err
	}

	err = r.createLogicalDevice()
	if err != nil {
		return err
	}

	err = r.createCommandPool()
	if err != nil {
		return err
	}

	width, height := r.window.DrawableSize()
	r.presentation, err = r.buildPresentationSet(width, height)
	if err != nil {
		return err
	}
	r.teardown.push("presentation set", func() {
		r.presentation.Destroy()
		r.presentation = nil
	})

	r.sync, err = NewFrameSync(r.device.Device, r.cfg.MaxFramesInFlight, len(r.presentation.Swapchain.Images), r.cfg.FenceTimeout)
	if err != nil {
		return err
	}
	r.teardown.push("sync objects", r.sync.Destroy)

	return nil
}

func (r *Renderer) createInstance() error {
	instance, err := buildInstance(r.loader, r.cfg, r.window.RequiredInstanceExtensions(), r.logger)
	if err != nil {
		return markf(err, ErrSetup, "creating instance")
	}
	r.instance = instance
	r.teardown.push("instance", func() { r.instance.Destroy(nil) })

	if !r.cfg.EnableValidation {
		return nil
	}

	r.debugMessenger, err = createDebugMessenger(r.instance, r.logger)
	if err != nil {
		return markf(err, ErrSetup, "creating debug messenger")
	}
	r.teardown.push("debug messenger", func() { r.debugMessenger.Destroy(nil) })

	return nil
}

func (r *Renderer) createSurface() error {
	surface, err := r.window.CreateSurface(r.instance)
	if err != nil {
		return markf(err, ErrSetup, "creating surface")
	}
	r.surface = surface
	r.teardown.push("surface", func() { r.surface.Destroy(nil) })

	return nil
}

func (r *Renderer) pickPhysicalDevice() error {
	physicalDevices, _, err := r.instance.EnumeratePhysicalDevices()
	if err != nil {
		return markf(err, ErrSetup, "enumerating physical devices")
	}

	var candidates []PhysicalDeviceInfo
	for _, device := range physicalDevices {
		info, err := QueryPhysicalDeviceInfo(device, r.surface)
		if err != nil {
			r.logger.WithError(err).Warn("skipping physical device")
			continue
		}

		entry := r.logger.WithField("device", info.Name)
		if !info.Indices.IsComplete() {
			entry.Info("skipping physical device: no graphics or present queue family")
			continue
		}
		if !info.Swapchain.Adequate() {
			entry.Info("skipping physical device: surface offers no formats or present modes")
			continue
		}

		candidates = append(candidates, info)
	}

	physical, score, err := PickPhysicalDevice(candidates, r.cfg.DeviceExtensions)
	if err != nil {
		return err
	}
	r.physical = physical

	r.logger.WithFields(log.Fields{
		"device": physical.Name,
		"score":  score,
	}).Info("selected physical device")

	return nil
}

func (r *Renderer) createLogicalDevice() error {
	device, err := CreateLogicalDevice(r.physical, r.physical.Indices, r.cfg)
	if err != nil {
		return err
	}
	r.device = device
	r.teardown.push("logical device", r.device.Destroy)

	r.swapchainExtension = khr_swapchain.CreateExtensionFromDevice(r.device.Device)

	return nil
}

func (r *Renderer) createCommandPool() error {
	pool, err := CreateCommandPool(r.device.Device, *r.device.Indices.GraphicsFamily)
	if err != nil {
		return err
	}
	r.commandPool = pool
	r.teardown.push("command pool", func() { r.commandPool.Destroy(nil) })

	return nil
}

// Params returns the negotiated parameters of the current swapchain
func (r *Renderer) Params() SwapchainParams {
	if r.presentation == nil {
		return SwapchainParams{}
	}
	return r.presentation.Params
}

// Rebuild replaces the swapchain and everything built on it. Instance,
// device, command pool and sync objects are kept. While the drawable size
// is 0 the rebuild stays pending.
func (r *Renderer) Rebuild() error {
	width, height := r.window.DrawableSize()
	if width == 0 || height == 0 {
		r.rebuildPending = true
		return nil
	}

	_, err := r.device.Device.WaitIdle()
	if err != nil {
		return errors.Wrap(err, "waiting for device before rebuild")
	}

	r.presentation.Destroy()
	r.presentation = nil

	r.presentation, err = r.buildPresentationSet(width, height)
	if err != nil {
		return err
	}

	r.sync.ResizeImages(len(r.presentation.Swapchain.Images))
	r.rebuildPending = false

	return nil
}

// DrawFrame renders and presents one frame, rebuilding the swapchain if the
// driver reports that it no longer matches the surface. A suboptimal image
// is still presented, its acquire semaphore is already pending.
func (r *Renderer) DrawFrame() error {
	err := r.sync.BeginFrame()
	if err != nil {
		return err
	}

	swapchain := r.presentation.Swapchain.Swapchain
	imageIndex, status, err := r.sync.Acquire(swapchain)
	if err != nil {
		return err
	}
	if status == SwapchainOutOfDate {
		return r.Rebuild()
	}

	err = r.sync.Submit(r.device.GraphicsQueue, imageIndex, r.presentation.CommandBuffers[imageIndex])
	if err != nil {
		return err
	}

	needsRebuild, err := r.sync.Present(r.swapchainExtension, r.device.PresentQueue, swapchain, imageIndex)
	if err != nil {
		return err
	}

	r.sync.EndFrame()
	r.stats.frame()

	if needsRebuild || status == ImageSuboptimal {
		return r.Rebuild()
	}
	return nil
}

// Run pumps window events and draws until the window closes or ctx is done
func (r *Renderer) Run(ctx context.Context) error {
	r.logger.Info("entering main loop")

	for ctx.Err() == nil {
		r.window.PollEvents()
		if r.window.ShouldClose() {
			break
		}

		if r.window.TakeResized() {
			r.rebuildPending = true
		}
		if r.rebuildPending {
			err := r.Rebuild()
			if err != nil {
				return err
			}
		}

		width, height := r.window.DrawableSize()
		if r.rebuildPending || width == 0 || height == 0 {
			time.Sleep(idlePoll)
			continue
		}

		err := r.DrawFrame()
		if err != nil {
			return err
		}
	}

	r.logger.WithField("frames", r.stats.total).Info("leaving main loop")

	_, err := r.device.Device.WaitIdle()
	if err != nil {
		return errors.Wrap(err, "waiting for device idle")
	}
	return nil
}

// Destroy releases every object in reverse creation order. The window is
// left to its owner.
func (r *Renderer) Destroy() {
	if r.device != nil && r.device.Device != nil {
		_, err := r.device.Device.WaitIdle()
		if err != nil {
			r.logger.WithError(err).Warn("device did not go idle before teardown")
		}
	}
	r.teardown.run()
}
