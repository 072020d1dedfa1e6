// Package window opens the SDL2 window the renderer presents to.
package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	khr_surface_driver "github.com/vkngwrapper/extensions/khr_surface/driver"

	"github.com/vkngwrapper/swapchain-bootstrap/config"
)

// SDLWindow is a resizable Vulkan capable SDL2 window. Events must be pumped
// from the thread that created it.
type SDLWindow struct {
	window *sdl.Window
	logger log.FieldLogger

	closed    bool
	resized   bool
	minimized bool
}

// Open initializes SDL video and creates the window
func Open(props config.WindowProps, logger log.FieldLogger) (*SDLWindow, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "initializing sdl video")
	}

	window, err := sdl.CreateWindow(props.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(props.Width), int32(props.Height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrapf(err, "creating %dx%d window", props.Width, props.Height)
	}

	return &SDLWindow{
		window: window,
		logger: logger,
	}, nil
}

func (w *SDLWindow) LoaderProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

func (w *SDLWindow) RequiredInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// CreateSurface has SDL create the platform surface and wraps the handle
func (w *SDLWindow) CreateSurface(instance core1_0.Instance) (khr_surface.Surface, error) {
	surfacePtr, err := w.window.VulkanCreateSurface(instance.Handle())
	if err != nil {
		return nil, errors.Wrap(err, "sdl surface")
	}

	surface, _, err := khr_surface.CreateSurface(surfacePtr, instance, khr_surface_driver.CreateDriverFromCore(instance.Driver()))
	if err != nil {
		return nil, errors.Wrap(err, "wrapping sdl surface")
	}
	return surface, nil
}

// PollEvents drains the SDL event queue
func (w *SDLWindow) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.closed = true
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_MINIMIZED:
				w.minimized = true
			case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_MAXIMIZED:
				w.minimized = false
				w.resized = true
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				w.resized = true
				w.logger.WithField("size", []int32{e.Data1, e.Data2}).Debug("window resized")
			case sdl.WINDOWEVENT_CLOSE:
				w.closed = true
			}
		}
	}
}

func (w *SDLWindow) ShouldClose() bool {
	return w.closed
}

func (w *SDLWindow) TakeResized() bool {
	resized := w.resized
	w.resized = false
	return resized
}

// DrawableSize reports 0x0 while the window is minimized
func (w *SDLWindow) DrawableSize() (width, height int) {
	if w.minimized || (w.window.GetFlags()&sdl.WINDOW_MINIMIZED) != 0 {
		return 0, 0
	}

	drawableWidth, drawableHeight := w.window.VulkanGetDrawableSize()
	return int(drawableWidth), int(drawableHeight)
}

func (w *SDLWindow) Destroy() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
}
