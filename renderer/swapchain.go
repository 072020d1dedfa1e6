package renderer

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// SwapchainParams is the negotiated swapchain configuration. Identical
// support and window size always negotiate identical params.
type SwapchainParams struct {
	Format      khr_surface.Format
	PresentMode khr_surface.PresentMode
	Extent      core1_0.Extent2D
	ImageCount  int

	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int
}

// SwapchainState is a built swapchain. Images belong to the swapchain and
// are released with it.
type SwapchainState struct {
	Swapchain khr_swapchain.Swapchain
	Images    []core1_0.Image
	Format    core1_0.Format
	Extent    core1_0.Extent2D
}

func (s *SwapchainState) Destroy() {
	if s.Swapchain != nil {
		s.Swapchain.Destroy(nil)
		s.Swapchain = nil
	}
	s.Images = nil
}

// ChooseSurfaceFormat prefers BGRA8 sRGB with the sRGB nonlinear color space
// and otherwise takes the first format offered. An empty list yields the zero
// Format; NegotiateSwapchain rejects such support before asking.
func ChooseSurfaceFormat(availableFormats []khr_surface.Format) khr_surface.Format {
	for _, format := range availableFormats {
		if format.Format == core1_0.FormatB8G8R8A8SRGB && format.ColorSpace == khr_surface.ColorSpaceSRGBNonlinear {
			return format
		}
	}

	if len(availableFormats) == 0 {
		return khr_surface.Format{}
	}
	return availableFormats[0]
}

// ChoosePresentMode prefers mailbox. FIFO is always supported so it is the
// fallback even when the list omits it.
func ChoosePresentMode(availablePresentModes []khr_surface.PresentMode) khr_surface.PresentMode {
	for _, presentMode := range availablePresentModes {
		if presentMode == khr_surface.PresentModeMailbox {
			return presentMode
		}
	}

	return khr_surface.PresentModeFIFO
}

// ChooseExtent uses the surface's current extent unless its width is the
// 0xFFFFFFFF sentinel, in which case the drawable size is clamped into the
// supported range
func ChooseExtent(capabilities khr_surface.Capabilities, width, height int) core1_0.Extent2D {
	if !extentUndefined(capabilities.CurrentExtent) {
		return capabilities.CurrentExtent
	}

	return core1_0.Extent2D{
		Width:  clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum, capped by the
// maximum unless the surface reports none (0)
func ChooseImageCount(capabilities khr_surface.Capabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

// ChooseSharingMode shares images concurrently between two distinct queue
// families, and exclusively otherwise
func ChooseSharingMode(indices QueueFamilyIndices) (core1_0.SharingMode, []int) {
	if indices.IsComplete() && !indices.SameFamily() {
		return core1_0.SharingModeConcurrent, []int{*indices.GraphicsFamily, *indices.PresentFamily}
	}
	return core1_0.SharingModeExclusive, nil
}

// NegotiateSwapchain picks every swapchain parameter from the surface support
// and the window's drawable size
func NegotiateSwapchain(support SwapchainSupport, width, height int, indices QueueFamilyIndices) (SwapchainParams, error) {
	if !support.Adequate() {
		return SwapchainParams{}, markf(errors.Newf("surface offers %d formats and %d present modes", len(support.Formats), len(support.PresentModes)),
			ErrSwapchainCreation, "negotiateSwapchain")
	}

	sharingMode, familyIndices := ChooseSharingMode(indices)

	return SwapchainParams{
		Format:             ChooseSurfaceFormat(support.Formats),
		PresentMode:        ChoosePresentMode(support.PresentModes),
		Extent:             ChooseExtent(support.Capabilities, width, height),
		ImageCount:         ChooseImageCount(support.Capabilities),
		SharingMode:        sharingMode,
		QueueFamilyIndices: familyIndices,
	}, nil
}

// BuildSwapchain creates the swapchain and reads back the images the driver
// actually allocated, which may be more than requested
func BuildSwapchain(swapchainExtension khr_swapchain.Extension, device core1_0.Device, surface khr_surface.Surface, params SwapchainParams, capabilities khr_surface.Capabilities) (*SwapchainState, error) {
	swapchain, _, err := swapchainExtension.CreateSwapchain(device, nil, khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    params.ImageCount,
		ImageFormat:      params.Format.Format,
		ImageColorSpace:  params.Format.ColorSpace,
		ImageExtent:      params.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   params.SharingMode,
		QueueFamilyIndices: params.QueueFamilyIndices,

		PreTransform:   capabilities.CurrentTransform,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    params.PresentMode,
		Clipped:        true,
	})
	if err != nil {
		return nil, markf(err, ErrSwapchainCreation, "createSwapchain: %dx%d", params.Extent.Width, params.Extent.Height)
	}

	images, _, err := swapchain.SwapchainImages()
	if err != nil {
		swapchain.Destroy(nil)
		return nil, markf(err, ErrSwapchainCreation, "createSwapchain: retrieving images")
	}

	return &SwapchainState{
		Swapchain: swapchain,
		Images:    images,
		Format:    params.Format.Format,
		Extent:    params.Extent,
	}, nil
}

// extentUndefined reports the 0xFFFFFFFF width sentinel. The driver's uint32
// reaches us widened to int, so compare in uint32 to catch it on any platform.
func extentUndefined(extent core1_0.Extent2D) bool {
	return uint32(extent.Width) == math.MaxUint32
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
