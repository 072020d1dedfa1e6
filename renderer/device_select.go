package renderer

import (
	"strings"

	"github.com/cockroachdb/errors"
)

const discreteBonus = 1000

// RateDevice scores a device for selection. Devices without geometry shaders
// score 0 and are never picked.
func RateDevice(info PhysicalDeviceInfo) int {
	if !info.GeometryShader {
		return 0
	}

	score := info.MaxImageDimension2D
	if info.Discrete() {
		score += discreteBonus
	}

	return score
}

// PickPhysicalDevice returns the highest rated candidate that carries every
// required extension. Ties keep the earlier candidate.
func PickPhysicalDevice(candidates []PhysicalDeviceInfo, requiredExtensions []string) (PhysicalDeviceInfo, int, error) {
	if len(candidates) == 0 {
		return PhysicalDeviceInfo{}, 0, errors.Mark(errors.New("failed to find GPUs with Vulkan support"), ErrNoSuitableDevice)
	}

	bestScore := 0
	bestIndex := -1
	var rejected []string

	for i, candidate := range candidates {
		if !SupportsDeviceExtensions(candidate.Extensions, requiredExtensions) {
			missing := MissingExtensions(candidate.Extensions, requiredExtensions)
			rejected = append(rejected, candidate.Name+" (missing "+strings.Join(missing, ", ")+")")
			continue
		}

		score := RateDevice(candidate)
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex < 0 {
		err := errors.Newf("failed to find a suitable GPU among %d candidates", len(candidates))
		if len(rejected) > 0 {
			err = errors.WithDetailf(err, "rejected: %s", strings.Join(rejected, "; "))
		}
		return PhysicalDeviceInfo{}, 0, errors.Mark(err, ErrNoSuitableDevice)
	}

	return candidates[bestIndex], bestScore, nil
}
