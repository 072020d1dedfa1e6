package renderer

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

func TestSupportsValidationLayers(t *testing.T) {
	c := qt.New(t)

	available := map[string]int{
		"VK_LAYER_KHRONOS_validation": 1,
		"VK_LAYER_LUNARG_monitor":     2,
	}

	c.Assert(SupportsValidationLayers(available, []string{"VK_LAYER_KHRONOS_validation"}), qt.IsTrue)
	c.Assert(SupportsValidationLayers(available, nil), qt.IsTrue)
	c.Assert(SupportsValidationLayers(available, []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_missing"}), qt.IsFalse)
	c.Assert(SupportsValidationLayers(map[string]int{}, []string{"VK_LAYER_KHRONOS_validation"}), qt.IsFalse)
}

func TestRequiredExtensions(t *testing.T) {
	c := qt.New(t)

	windowExtensions := []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}

	c.Assert(RequiredExtensions(windowExtensions, false), qt.DeepEquals, []string{"VK_KHR_surface", "VK_KHR_xlib_surface"})
	c.Assert(RequiredExtensions(windowExtensions, true), qt.DeepEquals,
		[]string{"VK_KHR_surface", "VK_KHR_xlib_surface", ext_debug_utils.ExtensionName})

	// Debug utils already requested by the window is not added twice
	withDebug := []string{ext_debug_utils.ExtensionName, "VK_KHR_surface"}
	c.Assert(RequiredExtensions(withDebug, true), qt.DeepEquals, []string{ext_debug_utils.ExtensionName, "VK_KHR_surface"})
}

func TestSupportsDeviceExtensions(t *testing.T) {
	c := qt.New(t)

	available := map[string]struct{}{
		"VK_KHR_swapchain":          {},
		"VK_KHR_portability_subset": {},
	}

	c.Assert(SupportsDeviceExtensions(available, []string{"VK_KHR_swapchain"}), qt.IsTrue)
	c.Assert(SupportsDeviceExtensions(available, []string{"VK_KHR_swapchain", "VK_KHR_ray_query"}), qt.IsFalse)
	c.Assert(MissingExtensions(available, []string{"VK_KHR_ray_query", "VK_KHR_swapchain", "VK_EXT_mesh_shader"}), qt.DeepEquals,
		[]string{"VK_EXT_mesh_shader", "VK_KHR_ray_query"})
	c.Assert(MissingExtensions(available, []string{"VK_KHR_swapchain"}), qt.IsNil)
}
