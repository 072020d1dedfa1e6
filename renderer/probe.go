package renderer

import (
	"sort"

	"github.com/vkngwrapper/extensions/ext_debug_utils"
)

// SupportsValidationLayers reports whether every requested layer is available.
// A single missing layer fails the whole request.
func SupportsValidationLayers[T any](available map[string]T, requested []string) bool {
	return len(missingNames(available, requested)) == 0
}

// RequiredExtensions returns the instance extensions to enable: everything the
// window system needs, plus debug utils when debugging is on.
func RequiredExtensions(windowExtensions []string, debugEnabled bool) []string {
	seen := make(map[string]struct{}, len(windowExtensions)+1)
	var extensions []string

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		extensions = append(extensions, name)
	}

	for _, ext := range windowExtensions {
		add(ext)
	}
	if debugEnabled {
		add(ext_debug_utils.ExtensionName)
	}

	return extensions
}

// SupportsDeviceExtensions reports whether every required device extension
// is present in the device's enumerated set
func SupportsDeviceExtensions[T any](available map[string]T, required []string) bool {
	return len(missingNames(available, required)) == 0
}

// MissingExtensions lists the required names absent from available, sorted
func MissingExtensions[T any](available map[string]T, required []string) []string {
	return missingNames(available, required)
}

func missingNames[T any](available map[string]T, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
