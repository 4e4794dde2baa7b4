// Package cube is the demo itself: one colored cube under an orbit camera,
// with an overlay panel editing its color.
package cube

import (
	"errors"
	"fmt"
	"log"

	"cube-demo/internal/app"
	"cube-demo/internal/camera"
	"cube-demo/internal/config"
	"cube-demo/internal/fileops"
	"cube-demo/internal/gfx"
	"cube-demo/internal/mesh"
	"cube-demo/internal/platform"
	"cube-demo/internal/profiling"
	"cube-demo/internal/ui"
)

// ErrInitialization wraps every startup failure.
var ErrInitialization = errors.New("initialization failed")

const (
	sceneView gfx.ViewID = 0
	uiView    gfx.ViewID = 255

	clearRGBA = 0x6495EDFF

	panelTitle = "Cube Controls"
	colorLabel = "Cube Color"
)

var (
	panelPos  = ui.Vec2{X: 10, Y: 10}
	panelSize = ui.Vec2{X: 250, Y: 150}
)

// UIFactory builds the overlay once the window and backend are up.
type UIFactory func(window platform.Window, backend gfx.Backend, view gfx.ViewID, scale float32) (ui.Layer, error)

// Options wires a RenderContext to its collaborators.
type Options struct {
	Settings config.Settings
	Platform platform.Platform
	Backend  gfx.Backend
	NewUI    UIFactory
	// ReadFile loads shader binaries; nil uses fileops.ReadFile.
	ReadFile func(path string) ([]byte, error)
	Logger   *log.Logger
}

// RenderContext is the whole mutable state of the demo. It implements
// app.Handler; one instance lives for the process.
type RenderContext struct {
	settings config.Settings
	platform platform.Platform
	backend  gfx.Backend
	newUI    UIFactory
	readFile func(string) ([]byte, error)
	logger   *log.Logger

	window platform.Window
	ui     ui.Layer

	vbh     gfx.VertexBufferHandle
	ibh     gfx.IndexBufferHandle
	program gfx.ProgramHandle
	uColor  gfx.UniformHandle

	color      [4]float32
	camera     *camera.Orbit
	projection *camera.Projection

	prevMouseX, prevMouseY int
	width, height          int

	frame *profiling.Frame

	platformUp bool
	backendUp  bool
}

var _ app.Handler = (*RenderContext)(nil)

// New returns an uninitialized context; call Init before anything else.
func New(opts Options) *RenderContext {
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = fileops.ReadFile
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &RenderContext{
		settings:   opts.Settings,
		platform:   opts.Platform,
		backend:    opts.Backend,
		newUI:      opts.NewUI,
		readFile:   readFile,
		logger:     logger,
		vbh:        gfx.InvalidVertexBuffer,
		ibh:        gfx.InvalidIndexBuffer,
		program:    gfx.InvalidProgram,
		uColor:     gfx.InvalidUniform,
		color:      [4]float32{1, 0, 0, 1},
		camera:     camera.NewOrbit(),
		projection: camera.NewProjection(opts.Settings.Width, opts.Settings.Height),
		frame:      profiling.NewFrame(),
	}
}

// Color is the current cube color.
func (c *RenderContext) Color() [4]float32 { return c.color }

// Camera returns the orbit camera.
func (c *RenderContext) Camera() *camera.Orbit { return c.camera }

// Viewport is the stored back-buffer size.
func (c *RenderContext) Viewport() (width, height int) { return c.width, c.height }

func initErr(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInitialization, stage, err)
}

// Init opens the window, brings up the backend and UI, and creates the cube
// resources. Resources created before a failure are released by Quit.
func (c *RenderContext) Init() error {
	s := c.settings
	if err := s.Validate(); err != nil {
		return initErr("settings", err)
	}

	if err := c.platform.Init(); err != nil {
		return initErr("windowing subsystem", err)
	}
	c.platformUp = true

	scale := c.platform.ContentScale()
	win, err := c.platform.CreateWindow(platform.WindowConfig{
		Title:            s.Title,
		Width:            int(float32(s.Width) * scale),
		Height:           int(float32(s.Height) * scale),
		Resizable:        true,
		Hidden:           true,
		HighPixelDensity: true,
	})
	if err != nil {
		return initErr("create window", err)
	}
	c.window = win
	win.Center()
	win.Show()

	handle, err := win.NativeHandle()
	if err != nil {
		return initErr("native window handle", err)
	}

	err = c.backend.Init(gfx.Init{
		Type: gfx.RendererOpenGL,
		Platform: gfx.PlatformData{
			NativeWindow:  handle.Window,
			NativeDisplay: handle.Display,
			Surface:       win,
		},
		Resolution: gfx.Resolution{Width: s.Width, Height: s.Height, Reset: c.resetFlags()},
	})
	if err != nil {
		return initErr("graphics backend", err)
	}
	c.backendUp = true

	c.backend.SetViewClear(sceneView, gfx.ClearColor|gfx.ClearDepth, clearRGBA, 1.0, 0)
	c.backend.SetViewRect(sceneView, 0, 0, s.Width, s.Height)
	c.width, c.height = s.Width, s.Height
	c.projection.SetViewport(s.Width, s.Height)

	layer, err := c.newUI(win, c.backend, uiView, scale)
	if err != nil {
		return initErr("ui", err)
	}
	c.ui = layer

	c.vbh = c.backend.CreateVertexBuffer(mesh.CubeVertices, mesh.PositionLayout())
	c.ibh = c.backend.CreateIndexBuffer(mesh.CubeIndices)

	vsh, err := c.loadShader(s.VertexShaderPath(), gfx.StageVertex, "vshader")
	if err != nil {
		return err
	}
	fsh, err := c.loadShader(s.FragmentShaderPath(), gfx.StageFragment, "fshader")
	if err != nil {
		c.backend.DestroyShader(vsh)
		return err
	}
	program, err := c.backend.CreateProgram(vsh, fsh, true)
	if err != nil {
		return initErr("link program", err)
	}
	c.program = program
	c.uColor = c.backend.CreateUniform("u_color", gfx.UniformVec4)

	c.logger.Printf("cube: initialized %dx%d (content scale %.2f, %v)",
		s.Width, s.Height, scale, c.backend.Caps().Renderer)
	return nil
}

func (c *RenderContext) loadShader(path string, stage gfx.ShaderStage, name string) (gfx.ShaderHandle, error) {
	code, err := c.readFile(path)
	if err != nil {
		return gfx.InvalidShader, fmt.Errorf(
			"%w: could not find %v shader (ensure shaders have been compiled, run shader/compile-shaders.sh): %w",
			ErrInitialization, stage, err)
	}
	h, err := c.backend.CreateShader(code, name)
	if err != nil {
		return gfx.InvalidShader, initErr("create "+name, err)
	}
	return h, nil
}

func (c *RenderContext) resetFlags() gfx.ResetFlags {
	if c.settings.VSync {
		return gfx.ResetVSync
	}
	return gfx.ResetNone
}

// Quit releases whatever Init managed to create, in reverse dependency
// order: GPU resources, UI, backend, window, windowing subsystem.
func (c *RenderContext) Quit(result app.Result) {
	if c.backendUp {
		if c.vbh.IsValid() {
			c.backend.DestroyVertexBuffer(c.vbh)
			c.vbh = gfx.InvalidVertexBuffer
		}
		if c.ibh.IsValid() {
			c.backend.DestroyIndexBuffer(c.ibh)
			c.ibh = gfx.InvalidIndexBuffer
		}
		if c.program.IsValid() {
			c.backend.DestroyProgram(c.program)
			c.program = gfx.InvalidProgram
		}
		if c.uColor.IsValid() {
			c.backend.DestroyUniform(c.uColor)
			c.uColor = gfx.InvalidUniform
		}
	}

	if c.ui != nil {
		c.ui.Shutdown()
		c.ui = nil
	}
	if c.backendUp {
		c.backend.Shutdown()
		c.backendUp = false
	}
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
	if c.platformUp {
		c.platform.Terminate()
		c.platformUp = false
	}
	c.logger.Printf("cube: shut down (%v)", result)
}
