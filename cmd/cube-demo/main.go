// Command cube-demo shows a cube under an orbit camera with a color picker.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"cube-demo/internal/app"
	"cube-demo/internal/config"
	"cube-demo/internal/cube"
	"cube-demo/internal/gfx"
	"cube-demo/internal/gfx/glbackend"
	"cube-demo/internal/platform"
	"cube-demo/internal/ui"
)

// GLFW and OpenGL calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	settings := config.Default()
	settings.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	glfwPlatform := platform.NewGLFW()
	rc := cube.New(cube.Options{
		Settings: settings,
		Platform: glfwPlatform,
		Backend:  glbackend.New(logger),
		NewUI: func(window platform.Window, backend gfx.Backend, view gfx.ViewID, scale float32) (ui.Layer, error) {
			layer, err := ui.NewImGui(window, backend, view, scale)
			if err != nil {
				return nil, err
			}
			return layer, nil
		},
		Logger: logger,
	})

	loop := app.New(rc, glfwPlatform, logger)
	loop.SetFPSLimit(settings.FPSLimit)
	code := loop.Run(ctx)
	stop()
	os.Exit(code)
}
