package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_surface"
)

// PhysicalDeviceInfo is everything the selector needs to know about a device,
// read once so ranking never touches the driver
type PhysicalDeviceInfo struct {
	Device core1_0.PhysicalDevice

	Name                string
	Type                core1_0.PhysicalDeviceType
	MaxImageDimension2D int
	GeometryShader      bool

	QueueFamilies []core1_0.QueueFlags
	Extensions    map[string]struct{}

	Indices   QueueFamilyIndices
	Swapchain SwapchainSupport
}

// Discrete is true for dedicated GPUs
func (d PhysicalDeviceInfo) Discrete() bool {
	return d.Type == core1_0.PhysicalDeviceTypeDiscreteGPU
}

// QueryPhysicalDeviceInfo reads properties, features, queue families, device
// extensions and surface support for one device
func QueryPhysicalDeviceInfo(device core1_0.PhysicalDevice, surface khr_surface.Surface) (PhysicalDeviceInfo, error) {
	info := PhysicalDeviceInfo{Device: device}

	properties, err := device.Properties()
	if err != nil {
		return info, errors.Wrap(err, "reading physical device properties")
	}
	info.Name = properties.DriverName
	info.Type = properties.DriverType
	info.MaxImageDimension2D = properties.Limits.MaxImageDimension2D

	features := device.Features()
	info.GeometryShader = features.GeometryShader

	for _, family := range device.QueueFamilyProperties() {
		info.QueueFamilies = append(info.QueueFamilies, family.QueueFlags)
	}

	extensions, _, err := device.EnumerateDeviceExtensionProperties()
	if err != nil {
		return info, errors.Wrapf(err, "enumerating device extensions of %s", info.Name)
	}
	info.Extensions = make(map[string]struct{}, len(extensions))
	for name := range extensions {
		info.Extensions[name] = struct{}{}
	}

	info.Indices, err = FindQueueFamilies(info.QueueFamilies, func(familyIndex int) (bool, error) {
		supported, _, err := surface.PhysicalDeviceSurfaceSupport(device, familyIndex)
		return supported, err
	})
	if err != nil {
		return info, errors.Wrapf(err, "querying present support of %s", info.Name)
	}

	info.Swapchain, err = QuerySwapchainSupport(surface, device)
	if err != nil {
		return info, errors.Wrapf(err, "querying swapchain support of %s", info.Name)
	}

	return info, nil
}
