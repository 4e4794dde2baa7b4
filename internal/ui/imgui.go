package ui

import (
	"fmt"
	"time"

	"github.com/inkyblackness/imgui-go/v4"
	"golang.org/x/image/font/gofont/goregular"

	"cube-demo/internal/gfx"
	"cube-demo/internal/platform"
)

const baseFontSize = 15

// ImGui is a Layer on Dear ImGui. Its draw lists are replayed inside a gfx
// view at Frame time, so the overlay lands on top of lower-numbered views.
type ImGui struct {
	ctx      *imgui.Context
	io       imgui.IO
	window   platform.Window
	backend  gfx.Backend
	view     gfx.ViewID
	renderer *glRenderer

	lastFrame  time.Time
	mouseDown  [3]bool
	mousePress [3]bool
	mousePos   imgui.Vec2
	wheelX     float32
	wheelY     float32
}

// NewImGui creates the ImGui context and its OpenGL renderer. The window's GL
// context must be current. scale is the display content scale.
func NewImGui(window platform.Window, backend gfx.Backend, view gfx.ViewID, scale float32) (*ImGui, error) {
	if scale <= 0 {
		scale = 1
	}
	ctx := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	io.Fonts().AddFontFromMemoryTTF(goregular.TTF, baseFontSize*scale)
	imgui.CurrentStyle().ScaleAllSizes(scale)
	mapKeys(io)

	r, err := newGLRenderer(io)
	if err != nil {
		ctx.Destroy()
		return nil, fmt.Errorf("imgui renderer: %w", err)
	}

	return &ImGui{
		ctx:       ctx,
		io:        io,
		window:    window,
		backend:   backend,
		view:      view,
		renderer:  r,
		lastFrame: time.Now(),
	}, nil
}

// ProcessEvent feeds one platform event to ImGui's input state.
func (l *ImGui) ProcessEvent(ev platform.Event) {
	switch ev.Type {
	case platform.EventMouseMotion:
		l.mousePos = imgui.Vec2{X: float32(ev.X), Y: float32(ev.Y)}
	case platform.EventMouseButtonDown:
		if b := int(ev.Button); b < len(l.mouseDown) {
			l.mouseDown[b] = true
			l.mousePress[b] = true
		}
	case platform.EventMouseButtonUp:
		if b := int(ev.Button); b < len(l.mouseDown) {
			l.mouseDown[b] = false
		}
	case platform.EventMouseWheel:
		l.wheelX += float32(ev.WheelX)
		l.wheelY += float32(ev.WheelY)
	case platform.EventKeyDown:
		if ev.Key != platform.KeyUnknown {
			l.io.KeyPress(int(ev.Key))
		}
		l.updateModifiers()
	case platform.EventKeyUp:
		if ev.Key != platform.KeyUnknown {
			l.io.KeyRelease(int(ev.Key))
		}
		l.updateModifiers()
	case platform.EventTextInput:
		l.io.AddInputCharacters(ev.Text)
	}
}

func (l *ImGui) updateModifiers() {
	l.io.KeyCtrl(int(platform.KeyLeftControl), int(platform.KeyRightControl))
	l.io.KeyShift(int(platform.KeyLeftShift), int(platform.KeyRightShift))
	l.io.KeyAlt(int(platform.KeyLeftAlt), int(platform.KeyRightAlt))
	l.io.KeySuper(int(platform.KeyLeftSuper), int(platform.KeyRightSuper))
}

// NewFrame starts a UI frame with the current display size, time step and mouse.
func (l *ImGui) NewFrame() {
	w, h := l.window.Size()
	l.io.SetDisplaySize(imgui.Vec2{X: float32(w), Y: float32(h)})

	now := time.Now()
	l.io.SetDeltaTime(float32(now.Sub(l.lastFrame).Seconds()))
	l.lastFrame = now

	l.io.SetMousePosition(l.mousePos)
	for i := range l.mouseDown {
		// A press and release within one frame still registers as a click.
		l.io.SetMouseButtonDown(i, l.mouseDown[i] || l.mousePress[i])
		l.mousePress[i] = false
	}
	l.io.AddMouseWheelDelta(l.wheelX, l.wheelY)
	l.wheelX, l.wheelY = 0, 0

	imgui.NewFrame()
}

func (l *ImGui) SetNextWindow(pos, size Vec2) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: pos.X, Y: pos.Y}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: size.X, Y: size.Y}, imgui.ConditionFirstUseEver)
}

func (l *ImGui) Begin(title string) bool {
	return imgui.Begin(title)
}

func (l *ImGui) ColorEdit4(label string, color *[4]float32) bool {
	return imgui.ColorEdit4(label, color)
}

func (l *ImGui) End() {
	imgui.End()
}

// Render finalizes the frame and queues its draw lists on the overlay view.
func (l *ImGui) Render() {
	imgui.Render()
	drawData := imgui.RenderedDrawData()

	dw, dh := l.window.Size()
	fw, fh := l.window.PixelSize()
	display := [2]float32{float32(dw), float32(dh)}
	framebuffer := [2]float32{float32(fw), float32(fh)}

	l.backend.SubmitFunc(l.view, func() {
		l.renderer.render(display, framebuffer, drawData)
	})
}

// WantCaptureMouse reports whether the mouse is over or dragging a UI item.
func (l *ImGui) WantCaptureMouse() bool {
	return l.io.WantCaptureMouse()
}

// Shutdown releases the renderer, then the context.
func (l *ImGui) Shutdown() {
	if l.renderer != nil {
		l.renderer.dispose()
		l.renderer = nil
	}
	if l.ctx != nil {
		l.ctx.Destroy()
		l.ctx = nil
	}
}

func mapKeys(io imgui.IO) {
	keys := map[int]platform.Key{
		int(imgui.KeyTab):        platform.KeyTab,
		int(imgui.KeyLeftArrow):  platform.KeyLeft,
		int(imgui.KeyRightArrow): platform.KeyRight,
		int(imgui.KeyUpArrow):    platform.KeyUp,
		int(imgui.KeyDownArrow):  platform.KeyDown,
		int(imgui.KeyPageUp):     platform.KeyPageUp,
		int(imgui.KeyPageDown):   platform.KeyPageDown,
		int(imgui.KeyHome):       platform.KeyHome,
		int(imgui.KeyEnd):        platform.KeyEnd,
		int(imgui.KeyInsert):     platform.KeyInsert,
		int(imgui.KeyDelete):     platform.KeyDelete,
		int(imgui.KeyBackspace):  platform.KeyBackspace,
		int(imgui.KeySpace):      platform.KeySpace,
		int(imgui.KeyEnter):      platform.KeyEnter,
		int(imgui.KeyEscape):     platform.KeyEscape,
		int(imgui.KeyA):          platform.KeyA,
		int(imgui.KeyC):          platform.KeyC,
		int(imgui.KeyV):          platform.KeyV,
		int(imgui.KeyX):          platform.KeyX,
		int(imgui.KeyY):          platform.KeyY,
		int(imgui.KeyZ):          platform.KeyZ,
	}
	for imguiKey, key := range keys {
		io.KeyMap(imguiKey, int(key))
	}
}
