package renderer

import (
	"github.com/vkngwrapper/core/core1_0"
)

// QueueFamilyIndices holds the queue families the renderer draws and presents
// with. A nil field means no suitable family was found.
type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i *QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// SameFamily is true when graphics and present resolve to one family
func (i *QueueFamilyIndices) SameFamily() bool {
	return i.IsComplete() && *i.GraphicsFamily == *i.PresentFamily
}

// Unique returns the distinct family indices, graphics first
func (i *QueueFamilyIndices) Unique() []int {
	var unique []int
	if i.GraphicsFamily != nil {
		unique = append(unique, *i.GraphicsFamily)
	}
	if i.PresentFamily != nil && (i.GraphicsFamily == nil || *i.PresentFamily != *i.GraphicsFamily) {
		unique = append(unique, *i.PresentFamily)
	}
	return unique
}

// FindQueueFamilies scans the families in order and keeps the first one with
// graphics support and the first one that can present to the surface. The
// scan stops as soon as both are known.
func FindQueueFamilies(families []core1_0.QueueFlags, presentSupport func(familyIndex int) (bool, error)) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}

	for familyIdx, flags := range families {
		if indices.GraphicsFamily == nil && (flags&core1_0.QueueGraphics) != 0 {
			indices.GraphicsFamily = new(int)
			*indices.GraphicsFamily = familyIdx
		}

		if indices.PresentFamily == nil {
			supported, err := presentSupport(familyIdx)
			if err != nil {
				return indices, err
			}

			if supported {
				indices.PresentFamily = new(int)
				*indices.PresentFamily = familyIdx
			}
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices, nil
}
