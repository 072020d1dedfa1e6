package main

//go:generate glslc ../../shaders/shader.vert -o ../../shaders/vert.spv
//go:generate glslc ../../shaders/shader.frag -o ../../shaders/frag.spv

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vkngwrapper/swapchain-bootstrap/config"
	"github.com/vkngwrapper/swapchain-bootstrap/renderer"
	"github.com/vkngwrapper/swapchain-bootstrap/shader"
	"github.com/vkngwrapper/swapchain-bootstrap/window"
)

func init() {
	// SDL and the Vulkan surface must stay on the main thread
	runtime.LockOSThread()
}

func run(logger *log.Logger, cfg config.Config) error {
	win, err := window.Open(cfg.Window, logger)
	if err != nil {
		return err
	}
	defer win.Destroy()

	shaders, err := shader.NewBoxSource(cfg)
	if err != nil {
		return err
	}

	r, err := renderer.New(cfg, win, shaders, logger)
	if err != nil {
		return err
	}
	defer r.Destroy()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.Run(ctx)
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}

	logger.WithFields(log.Fields{
		"title":      cfg.Window.Title,
		"validation": cfg.EnableValidation,
	}).Info("starting")

	err = run(logger, cfg)
	if err != nil {
		logger.Fatalf("%+v\n", err)
	}
}
