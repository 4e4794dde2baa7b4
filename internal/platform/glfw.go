package platform

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW is the Platform backed by GLFW with an OpenGL 4.1 core context.
type GLFW struct {
	queue eventQueue
}

// NewGLFW returns an uninitialized GLFW platform.
func NewGLFW() *GLFW {
	return &GLFW{}
}

// Init initializes the GLFW library.
func (p *GLFW) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	return nil
}

// Terminate destroys any remaining windows and shuts GLFW down.
func (p *GLFW) Terminate() {
	glfw.Terminate()
}

// ContentScale is the primary monitor's horizontal content scale, 1 if unknown.
func (p *GLFW) ContentScale() float32 {
	m := glfw.GetPrimaryMonitor()
	if m == nil {
		return 1
	}
	x, _ := m.GetContentScale()
	if x <= 0 {
		return 1
	}
	return x
}

// CreateWindow opens a window with a 4.1 core forward-compatible context and
// routes its callbacks into the event queue.
func (p *GLFW) CreateWindow(cfg WindowConfig) (Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))
	glfw.WindowHint(glfw.Visible, boolHint(!cfg.Hidden))
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, boolHint(cfg.HighPixelDensity))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}
	w := &glfwWindow{win: win}
	p.installCallbacks(win)
	return w, nil
}

// PollEvents processes pending window system events and returns them in
// arrival order, except that a framebuffer resize comes last.
func (p *GLFW) PollEvents() []Event {
	glfw.PollEvents()
	return p.queue.drain()
}

func (p *GLFW) push(ev Event) {
	p.queue.push(ev)
}

func (p *GLFW) installCallbacks(win *glfw.Window) {
	win.SetCloseCallback(func(w *glfw.Window) {
		p.push(Event{Type: EventQuit})
	})

	win.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		p.push(Event{Type: EventMouseMotion, X: xpos, Y: ypos})
	})

	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := mouseButtons[button]
		if !ok {
			return
		}
		x, y := w.GetCursorPos()
		ev := Event{Type: EventMouseButtonDown, Button: b, X: x, Y: y}
		if action == glfw.Release {
			ev.Type = EventMouseButtonUp
		}
		p.push(ev)
	})

	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		p.push(Event{Type: EventMouseWheel, WheelX: xoff, WheelY: yoff})
	})

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		ev := Event{Type: EventKeyDown, Key: keys[key]}
		if action == glfw.Release {
			ev.Type = EventKeyUp
		}
		p.push(ev)
	})

	win.SetCharCallback(func(w *glfw.Window, char rune) {
		p.push(Event{Type: EventTextInput, Text: string(char)})
	})

	win.SetSizeCallback(func(w *glfw.Window, width, height int) {
		p.push(Event{Type: EventWindowResized, Width: width, Height: height})
	})

	// Cocoa reports the framebuffer size before the window size; the queue
	// reorders them.
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		p.push(Event{Type: EventWindowPixelSizeChanged, Width: width, Height: height})
	})
}

type glfwWindow struct {
	win *glfw.Window
}

func (w *glfwWindow) Size() (int, int)      { return w.win.GetSize() }
func (w *glfwWindow) PixelSize() (int, int) { return w.win.GetFramebufferSize() }

func (w *glfwWindow) MouseState() (ButtonMask, float64, float64) {
	var mask ButtonMask
	for gb, b := range mouseButtons {
		if w.win.GetMouseButton(gb) == glfw.Press {
			mask |= b.Mask()
		}
	}
	x, y := w.win.GetCursorPos()
	return mask, x, y
}

func (w *glfwWindow) NativeHandle() (NativeHandle, error) {
	return nativeHandle(w.win)
}

func (w *glfwWindow) Center() {
	m := glfw.GetPrimaryMonitor()
	if m == nil {
		return
	}
	mode := m.GetVideoMode()
	if mode == nil {
		return
	}
	mx, my := m.GetPos()
	ww, wh := w.win.GetSize()
	w.win.SetPos(mx+(mode.Width-ww)/2, my+(mode.Height-wh)/2)
}

func (w *glfwWindow) Show()    { w.win.Show() }
func (w *glfwWindow) Destroy() { w.win.Destroy() }

func (w *glfwWindow) MakeContextCurrent() { w.win.MakeContextCurrent() }
func (w *glfwWindow) SwapBuffers()        { w.win.SwapBuffers() }

func (w *glfwWindow) SetSwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

var mouseButtons = map[glfw.MouseButton]MouseButton{
	glfw.MouseButtonLeft:   ButtonLeft,
	glfw.MouseButtonRight:  ButtonRight,
	glfw.MouseButtonMiddle: ButtonMiddle,
}

var keys = map[glfw.Key]Key{
	glfw.KeyTab:          KeyTab,
	glfw.KeyLeft:         KeyLeft,
	glfw.KeyRight:        KeyRight,
	glfw.KeyUp:           KeyUp,
	glfw.KeyDown:         KeyDown,
	glfw.KeyPageUp:       KeyPageUp,
	glfw.KeyPageDown:     KeyPageDown,
	glfw.KeyHome:         KeyHome,
	glfw.KeyEnd:          KeyEnd,
	glfw.KeyInsert:       KeyInsert,
	glfw.KeyDelete:       KeyDelete,
	glfw.KeyBackspace:    KeyBackspace,
	glfw.KeySpace:        KeySpace,
	glfw.KeyEnter:        KeyEnter,
	glfw.KeyKPEnter:      KeyEnter,
	glfw.KeyEscape:       KeyEscape,
	glfw.KeyA:            KeyA,
	glfw.KeyC:            KeyC,
	glfw.KeyV:            KeyV,
	glfw.KeyX:            KeyX,
	glfw.KeyY:            KeyY,
	glfw.KeyZ:            KeyZ,
	glfw.KeyLeftControl:  KeyLeftControl,
	glfw.KeyRightControl: KeyRightControl,
	glfw.KeyLeftShift:    KeyLeftShift,
	glfw.KeyRightShift:   KeyRightShift,
	glfw.KeyLeftAlt:      KeyLeftAlt,
	glfw.KeyRightAlt:     KeyRightAlt,
	glfw.KeyLeftSuper:    KeyLeftSuper,
	glfw.KeyRightSuper:   KeyRightSuper,
}
