package renderer

import (
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// SwapchainSupport is what a surface offers a given device
type SwapchainSupport struct {
	Capabilities khr_surface.Capabilities
	Formats      []khr_surface.Format
	PresentModes []khr_surface.PresentMode
}

// Adequate is false when the surface offers no formats or no present modes,
// whatever the device's extension list says
func (s SwapchainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

func QuerySwapchainSupport(surface khr_surface.Surface, device core1_0.PhysicalDevice) (SwapchainSupport, error) {
	var details SwapchainSupport

	capabilities, _, err := surface.PhysicalDeviceSurfaceCapabilities(device)
	if err != nil {
		return details, err
	}
	details.Capabilities = *capabilities

	details.Formats, _, err = surface.PhysicalDeviceSurfaceFormats(device)
	if err != nil {
		return details, err
	}

	details.PresentModes, _, err = surface.PhysicalDeviceSurfacePresentModes(device)
	return details, err
}
