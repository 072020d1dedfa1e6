package renderer

import "github.com/cockroachdb/errors"

// Error kinds. Every creation failure returned by this package is marked
// with exactly one of these, test with errors.Is.
var (
	ErrSetup                = errors.New("setup failed")
	ErrNoSuitableDevice     = errors.New("no suitable physical device")
	ErrDeviceCreation       = errors.New("logical device creation failed")
	ErrSwapchainCreation    = errors.New("swapchain creation failed")
	ErrImageViewCreation    = errors.New("image view creation failed")
	ErrRenderPassCreation   = errors.New("render pass creation failed")
	ErrFramebufferCreation  = errors.New("framebuffer creation failed")
	ErrShaderModuleCreation = errors.New("shader module creation failed")
	ErrPipelineCreation     = errors.New("pipeline creation failed")
	ErrCommandPoolCreation  = errors.New("command pool creation failed")
	ErrCommandRecording     = errors.New("command recording failed")
	ErrSyncObjectCreation   = errors.New("sync object creation failed")
)

// markf wraps err with the failing operation and marks it with kind
func markf(err error, kind error, format string, args ...interface{}) error {
	if err == nil {
		err = kind
	}
	return errors.Mark(errors.Wrapf(err, format, args...), kind)
}
