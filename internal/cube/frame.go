package cube

import (
	"github.com/go-gl/mathgl/mgl32"

	"cube-demo/internal/app"
	"cube-demo/internal/platform"
)

// Iterate runs one frame: UI, camera input, cube draw, present.
func (c *RenderContext) Iterate() app.Result {
	c.frame.Reset()

	func() { defer c.frame.Track("ui.Build")(); c.buildUI() }()
	c.updateCamera()
	func() { defer c.frame.Track("gfx.Submit")(); c.submitCube() }()
	func() { defer c.frame.Track("gfx.Frame")(); c.backend.Frame() }()

	if limit := c.settings.SlowFrame; limit > 0 {
		if d := c.frame.Elapsed(); d > limit {
			c.logger.Printf("Slow frame: %v (gfx %v). Top tasks: %s", d, c.frame.Sum("gfx."), c.frame.TopN(3))
		}
	}
	return app.Continue
}

func (c *RenderContext) buildUI() {
	c.ui.NewFrame()
	c.ui.SetNextWindow(panelPos, panelSize)
	if c.ui.Begin(panelTitle) {
		c.ui.ColorEdit4(colorLabel, &c.color)
	}
	c.ui.End()
	c.ui.Render()
}

// updateCamera orbits while the left button is held. The previous position
// is recorded every frame the UI leaves the mouse alone, so a new drag
// starts from where the press happened.
func (c *RenderContext) updateCamera() {
	if c.ui.WantCaptureMouse() {
		return
	}
	buttons, x, y := c.window.MouseState()
	mouseX, mouseY := int(x), int(y)
	if buttons.Has(platform.ButtonLeft) {
		c.camera.Drag(mouseX-c.prevMouseX, mouseY-c.prevMouseY)
	}
	c.prevMouseX, c.prevMouseY = mouseX, mouseY
}

func (c *RenderContext) submitCube() {
	c.projection.SetViewport(c.width, c.height)
	proj := c.projection.Matrix(c.backend.Caps().HomogeneousDepth)
	c.backend.SetViewTransform(sceneView, c.camera.View(), proj)

	c.backend.SetTransform(mgl32.Ident4())
	c.backend.SetUniform(c.uColor, c.color[:])
	c.backend.SetVertexBuffer(0, c.vbh)
	c.backend.SetIndexBuffer(c.ibh)
	c.backend.Submit(sceneView, c.program)
}

// Event handles one platform event. The UI sees every event first.
func (c *RenderContext) Event(ev platform.Event) app.Result {
	c.ui.ProcessEvent(ev)

	switch {
	case ev.Type == platform.EventQuit:
		return app.Success
	case ev.Type.IsMouse():
		// The camera polls in Iterate; this guard mirrors that one.
		if c.ui.WantCaptureMouse() {
			return app.Continue
		}
	case ev.Type == platform.EventWindowResized, ev.Type == platform.EventWindowPixelSizeChanged:
		c.resize(ev.Width, ev.Height)
	}
	return app.Continue
}

func (c *RenderContext) resize(width, height int) {
	c.width, c.height = width, height
	c.backend.Reset(width, height, c.resetFlags())
	c.backend.SetViewRect(sceneView, 0, 0, width, height)
}
