package renderer

import (
	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/core/core1_0"
	"github.com/vkngwrapper/extensions/ext_debug_utils"

	"github.com/vkngwrapper/swapchain-bootstrap/config"
)

func buildInstance(loader core.Loader, cfg config.Config, windowExtensions []string, logger log.FieldLogger) (core1_0.Instance, error) {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    cfg.ApplicationName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         cfg.EngineName,
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_2,
	}

	extensions, _, err := loader.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating instance extensions")
	}

	required := RequiredExtensions(windowExtensions, cfg.EnableValidation)
	if missing := MissingExtensions(extensions, required); len(missing) > 0 {
		return nil, errors.Newf("createInstance: missing instance extensions %v", missing)
	}
	instanceOptions.EnabledExtensionNames = required

	if cfg.EnableValidation {
		layers, _, err := loader.AvailableLayers()
		if err != nil {
			return nil, errors.Wrap(err, "enumerating instance layers")
		}

		if !SupportsValidationLayers(layers, cfg.ValidationLayers) {
			return nil, errors.Newf("createInstance: validation layers %v requested, but not available- install the Vulkan SDK", MissingExtensions(layers, cfg.ValidationLayers))
		}
		instanceOptions.EnabledLayerNames = cfg.ValidationLayers

		// Catches messages from instance creation and destruction
		instanceOptions.Next = debugMessengerOptions(logger)
	}

	instance, _, err := loader.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, errors.Wrap(err, "createInstance")
	}

	return instance, nil
}

func debugMessengerOptions(logger log.FieldLogger) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning | ext_debug_utils.SeverityVerbose,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback: func(msgType ext_debug_utils.MessageTypes, severity ext_debug_utils.MessageSeverities, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			entry := logger.WithField("type", msgType)
			switch {
			case severity&ext_debug_utils.SeverityError != 0:
				entry.Error(data.Message)
			case severity&ext_debug_utils.SeverityWarning != 0:
				entry.Warn(data.Message)
			default:
				entry.Debug(data.Message)
			}
			return false
		},
	}
}

func createDebugMessenger(instance core1_0.Instance, logger log.FieldLogger) (ext_debug_utils.Messenger, error) {
	debugLoader := ext_debug_utils.CreateExtensionFromInstance(instance)
	messenger, _, err := debugLoader.CreateDebugUtilsMessenger(instance, nil, debugMessengerOptions(logger))
	if err != nil {
		return nil, errors.Wrap(err, "setupDebugMessenger")
	}

	return messenger, nil
}
