package renderer

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/khr_portability_subset"

	"github.com/vkngwrapper/swapchain-bootstrap/config"
)

// LogicalDeviceContext is the logical device and the queues retrieved from it
type LogicalDeviceContext struct {
	Device        core1_0.Device
	GraphicsQueue core1_0.Queue
	PresentQueue  core1_0.Queue
	Indices       QueueFamilyIndices
}

func (c *LogicalDeviceContext) Destroy() {
	if c.Device != nil {
		c.Device.Destroy(nil)
		c.Device = nil
	}
}

// QueueCreateInfos asks for one queue per distinct family
func QueueCreateInfos(indices QueueFamilyIndices) []core1_0.DeviceQueueCreateInfo {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	queuePriority := float32(1.0)
	for _, queueFamily := range indices.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}
	return queueFamilyOptions
}

// CreateLogicalDevice creates the device with the required extensions and
// retrieves the graphics and present queues. Indices must be complete.
func CreateLogicalDevice(physical PhysicalDeviceInfo, indices QueueFamilyIndices, cfg config.Config) (*LogicalDeviceContext, error) {
	if !indices.IsComplete() {
		return nil, markf(errors.New("queue family indices are incomplete"), ErrDeviceCreation, "createLogicalDevice: %s", physical.Name)
	}

	var extensionNames []string
	extensionNames = append(extensionNames, cfg.DeviceExtensions...)

	// Required on portability implementations such as MoltenVK
	if _, supported := physical.Extensions[khr_portability_subset.ExtensionName]; supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	var layerNames []string
	if cfg.EnableValidation {
		layerNames = cfg.ValidationLayers
	}

	device, _, err := physical.Device.CreateDevice(nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      QueueCreateInfos(indices),
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensionNames,
		EnabledLayerNames:     layerNames,
	})
	if err != nil {
		return nil, markf(err, ErrDeviceCreation, "createLogicalDevice: %s", physical.Name)
	}

	return &LogicalDeviceContext{
		Device:        device,
		GraphicsQueue: device.GetQueue(*indices.GraphicsFamily, 0),
		PresentQueue:  device.GetQueue(*indices.PresentFamily, 0),
		Indices:       indices,
	}, nil
}
