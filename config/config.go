// Package config holds the renderer configuration and the helpers that load it
// from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/vkngwrapper/core/common"
	"github.com/vkngwrapper/extensions/khr_swapchain"
)

// WindowProps describes the window the renderer draws into
type WindowProps struct {
	Title  string
	Width  int
	Height int
}

// Config is the full renderer configuration. It is built once at startup
// and passed to the renderer; nothing in it is mutated afterwards.
type Config struct {
	Window WindowProps

	ApplicationName string
	EngineName      string

	// EnableValidation turns on the validation layers and the debug messenger
	EnableValidation bool
	ValidationLayers []string
	DeviceExtensions []string

	// MaxFramesInFlight bounds how far the CPU may run ahead of the GPU
	MaxFramesInFlight int
	FenceTimeout      time.Duration

	ShaderDir      string
	VertexShader   string
	FragmentShader string

	VertexCount   int
	InstanceCount int
	ClearColor    mgl32.Vec4

	LogLevel      string
	StatsInterval time.Duration
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Window: WindowProps{
			Title:  "Vulkan",
			Width:  1280,
			Height: 720,
		},
		ApplicationName:   "Vulkan Application",
		EngineName:        "No Engine",
		EnableValidation:  true,
		ValidationLayers:  []string{"VK_LAYER_KHRONOS_validation"},
		DeviceExtensions:  []string{khr_swapchain.ExtensionName},
		MaxFramesInFlight: 2,
		FenceTimeout:      common.NoTimeout,
		ShaderDir:         "shaders",
		VertexShader:      "vert.spv",
		FragmentShader:    "frag.spv",
		VertexCount:       3,
		InstanceCount:     1,
		ClearColor:        mgl32.Vec4{0, 0, 0, 1},
		LogLevel:          "info",
		StatsInterval:     5 * time.Second,
	}
}

// Load reads the given .env files (missing files are ignored) and then
// overrides the defaults with any VKB_* environment variables.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !isNotExist(err) {
			return Config{}, errors.Wrapf(err, "config: loading %s", file)
		}
	}
	// envy snapshots the environment at init, pick up what godotenv just set
	envy.Reload()

	cfg := Default()
	var err error

	cfg.Window.Title = envy.Get("VKB_TITLE", cfg.Window.Title)
	if cfg.Window.Width, err = envInt("VKB_WIDTH", cfg.Window.Width); err != nil {
		return Config{}, err
	}
	if cfg.Window.Height, err = envInt("VKB_HEIGHT", cfg.Window.Height); err != nil {
		return Config{}, err
	}
	if cfg.EnableValidation, err = envBool("VKB_VALIDATION", cfg.EnableValidation); err != nil {
		return Config{}, err
	}
	if cfg.MaxFramesInFlight, err = envInt("VKB_FRAMES_IN_FLIGHT", cfg.MaxFramesInFlight); err != nil {
		return Config{}, err
	}
	if cfg.VertexCount, err = envInt("VKB_VERTEX_COUNT", cfg.VertexCount); err != nil {
		return Config{}, err
	}
	cfg.ShaderDir = envy.Get("VKB_SHADER_DIR", cfg.ShaderDir)
	cfg.LogLevel = envy.Get("VKB_LOG_LEVEL", cfg.LogLevel)

	return cfg, cfg.Validate()
}

// Validate rejects configurations the renderer cannot run with
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.MaxFramesInFlight < 1 {
		return errors.Newf("config: max frames in flight must be at least 1, got %d", c.MaxFramesInFlight)
	}
	if c.VertexCount < 1 || c.InstanceCount < 1 {
		return errors.Newf("config: draw needs at least one vertex and one instance, got %d/%d", c.VertexCount, c.InstanceCount)
	}
	if c.EnableValidation && len(c.ValidationLayers) == 0 {
		return errors.New("config: validation enabled without any validation layers")
	}
	return nil
}

func envInt(key string, fallback int) (int, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Wrapf(err, "config: %s", key)
	}
	return value, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, errors.Wrapf(err, "config: %s", key)
	}
	return value, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
