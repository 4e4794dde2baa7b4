package cube

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"cube-demo/internal/config"
	"cube-demo/internal/gfx"
	"cube-demo/internal/platform"
	"cube-demo/internal/ui"
)

type resetCall struct {
	width, height int
	flags         gfx.ResetFlags
}

type submission struct {
	view    gfx.ViewID
	program gfx.ProgramHandle
	vb      gfx.VertexBufferHandle
	ib      gfx.IndexBufferHandle
	model   mgl32.Mat4
	color   []float32
	viewMtx mgl32.Mat4
	proj    mgl32.Mat4
}

// fakeBackend records calls and tracks live resources by kind and id.
type fakeBackend struct {
	initErr   error
	shaderErr error

	init      *gfx.Init
	shutdowns int
	frames    int

	next      uint16
	live      map[string]bool
	destroyed map[string]int

	clears  map[gfx.ViewID]uint32
	rects   map[gfx.ViewID][4]int
	viewMtx map[gfx.ViewID]mgl32.Mat4
	proj    map[gfx.ViewID]mgl32.Mat4
	resets  []resetCall
	pending submission
	submits []submission
	funcs   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		live:      make(map[string]bool),
		destroyed: make(map[string]int),
		clears:    make(map[gfx.ViewID]uint32),
		rects:     make(map[gfx.ViewID][4]int),
		viewMtx:   make(map[gfx.ViewID]mgl32.Mat4),
		proj:      make(map[gfx.ViewID]mgl32.Mat4),
	}
}

func key(kind string, id uint16) string { return fmt.Sprintf("%s/%d", kind, id) }

func (b *fakeBackend) alloc(kind string) uint16 {
	id := b.next
	b.next++
	b.live[key(kind, id)] = true
	return id
}

func (b *fakeBackend) release(kind string, id uint16) {
	k := key(kind, id)
	b.destroyed[k]++
	delete(b.live, k)
}

func (b *fakeBackend) liveCount() int { return len(b.live) }

func (b *fakeBackend) Init(init gfx.Init) error {
	if b.initErr != nil {
		return b.initErr
	}
	b.init = &init
	return nil
}

func (b *fakeBackend) Shutdown() { b.shutdowns++ }

func (b *fakeBackend) Reset(width, height int, flags gfx.ResetFlags) {
	b.resets = append(b.resets, resetCall{width, height, flags})
}

func (b *fakeBackend) Caps() gfx.Caps {
	return gfx.Caps{Renderer: gfx.RendererOpenGL, HomogeneousDepth: true}
}

func (b *fakeBackend) SetViewClear(view gfx.ViewID, _ gfx.ClearFlags, rgba uint32, _ float32, _ uint8) {
	b.clears[view] = rgba
}

func (b *fakeBackend) SetViewRect(view gfx.ViewID, x, y, width, height int) {
	b.rects[view] = [4]int{x, y, width, height}
}

func (b *fakeBackend) SetViewTransform(view gfx.ViewID, viewMtx, proj mgl32.Mat4) {
	b.viewMtx[view] = viewMtx
	b.proj[view] = proj
}

func (b *fakeBackend) CreateVertexBuffer([]float32, gfx.VertexLayout) gfx.VertexBufferHandle {
	return gfx.VertexBufferHandle{ID: b.alloc("vb")}
}

func (b *fakeBackend) CreateIndexBuffer([]uint16) gfx.IndexBufferHandle {
	return gfx.IndexBufferHandle{ID: b.alloc("ib")}
}

func (b *fakeBackend) CreateShader(code []byte, _ string) (gfx.ShaderHandle, error) {
	if b.shaderErr != nil {
		return gfx.InvalidShader, b.shaderErr
	}
	if _, _, err := gfx.DecodeShader(code); err != nil {
		return gfx.InvalidShader, err
	}
	return gfx.ShaderHandle{ID: b.alloc("shader")}, nil
}

func (b *fakeBackend) CreateProgram(vs, fs gfx.ShaderHandle, destroyShaders bool) (gfx.ProgramHandle, error) {
	if destroyShaders {
		b.DestroyShader(vs)
		b.DestroyShader(fs)
	}
	return gfx.ProgramHandle{ID: b.alloc("program")}, nil
}

func (b *fakeBackend) CreateUniform(string, gfx.UniformType) gfx.UniformHandle {
	return gfx.UniformHandle{ID: b.alloc("uniform")}
}

func (b *fakeBackend) DestroyVertexBuffer(h gfx.VertexBufferHandle) { b.release("vb", h.ID) }
func (b *fakeBackend) DestroyIndexBuffer(h gfx.IndexBufferHandle)   { b.release("ib", h.ID) }
func (b *fakeBackend) DestroyShader(h gfx.ShaderHandle)             { b.release("shader", h.ID) }
func (b *fakeBackend) DestroyProgram(h gfx.ProgramHandle)           { b.release("program", h.ID) }
func (b *fakeBackend) DestroyUniform(h gfx.UniformHandle)           { b.release("uniform", h.ID) }

func (b *fakeBackend) SetTransform(model mgl32.Mat4) { b.pending.model = model }

func (b *fakeBackend) SetUniform(_ gfx.UniformHandle, value []float32) {
	b.pending.color = append([]float32(nil), value...)
}

func (b *fakeBackend) SetVertexBuffer(_ uint8, h gfx.VertexBufferHandle) { b.pending.vb = h }
func (b *fakeBackend) SetIndexBuffer(h gfx.IndexBufferHandle)            { b.pending.ib = h }

func (b *fakeBackend) Submit(view gfx.ViewID, program gfx.ProgramHandle) {
	s := b.pending
	s.view = view
	s.program = program
	s.viewMtx = b.viewMtx[view]
	s.proj = b.proj[view]
	b.submits = append(b.submits, s)
	b.pending = submission{}
}

func (b *fakeBackend) SubmitFunc(gfx.ViewID, func()) { b.funcs++ }

func (b *fakeBackend) Frame() uint32 {
	b.frames++
	return uint32(b.frames)
}

func (b *fakeBackend) lastSubmit(t *testing.T) submission {
	t.Helper()
	if len(b.submits) == 0 {
		t.Fatal("nothing submitted")
	}
	return b.submits[len(b.submits)-1]
}

type fakeWindow struct {
	cfg       platform.WindowConfig
	handleErr error

	buttons platform.ButtonMask
	x, y    float64

	shown, centered bool
	destroyed       int
}

func (w *fakeWindow) Size() (int, int)      { return w.cfg.Width, w.cfg.Height }
func (w *fakeWindow) PixelSize() (int, int) { return w.cfg.Width, w.cfg.Height }

func (w *fakeWindow) MouseState() (platform.ButtonMask, float64, float64) {
	return w.buttons, w.x, w.y
}

func (w *fakeWindow) NativeHandle() (platform.NativeHandle, error) {
	if w.handleErr != nil {
		return platform.NativeHandle{}, w.handleErr
	}
	return platform.NativeHandle{Window: 0xbeef}, nil
}

func (w *fakeWindow) Center()                     { w.centered = true }
func (w *fakeWindow) Show()                       { w.shown = true }
func (w *fakeWindow) Destroy()                    { w.destroyed++ }
func (w *fakeWindow) MakeContextCurrent()         {}
func (w *fakeWindow) SwapBuffers()                {}
func (w *fakeWindow) SetSwapInterval(int)         {}
func (w *fakeWindow) move(dx, dy float64)         { w.x += dx; w.y += dy }
func (w *fakeWindow) hold(b platform.MouseButton) { w.buttons |= b.Mask() }
func (w *fakeWindow) releaseAll()                 { w.buttons = 0 }

type fakePlatform struct {
	initErr   error
	createErr error
	scale     float32

	window     *fakeWindow
	terminated int
	batches    [][]platform.Event
}

func (p *fakePlatform) Init() error           { return p.initErr }
func (p *fakePlatform) Terminate()            { p.terminated++ }
func (p *fakePlatform) ContentScale() float32 { return p.scale }

func (p *fakePlatform) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	p.window.cfg = cfg
	return p.window, nil
}

func (p *fakePlatform) PollEvents() []platform.Event {
	if len(p.batches) == 0 {
		return nil
	}
	b := p.batches[0]
	p.batches = p.batches[1:]
	return b
}

// fakeUI stands in for the overlay. editColor, when set, is written by the
// next ColorEdit4 as if the user had picked it.
type fakeUI struct {
	wantMouse bool
	editColor *[4]float32

	events    []platform.Event
	frames    int
	titles    []string
	shutdowns int
}

func (u *fakeUI) ProcessEvent(ev platform.Event) { u.events = append(u.events, ev) }
func (u *fakeUI) NewFrame()                      { u.frames++ }
func (u *fakeUI) SetNextWindow(_, _ ui.Vec2)     {}
func (u *fakeUI) End()                           {}
func (u *fakeUI) Render()                        {}
func (u *fakeUI) WantCaptureMouse() bool         { return u.wantMouse }
func (u *fakeUI) Shutdown()                      { u.shutdowns++ }

func (u *fakeUI) Begin(title string) bool {
	u.titles = append(u.titles, title)
	return true
}

func (u *fakeUI) ColorEdit4(_ string, color *[4]float32) bool {
	if u.editColor == nil {
		return false
	}
	*color = *u.editColor
	u.editColor = nil
	return true
}

// fixture bundles a RenderContext with its fakes.
type fixture struct {
	ctx      *RenderContext
	backend  *fakeBackend
	platform *fakePlatform
	window   *fakeWindow
	ui       *fakeUI
	uiErr    error
	files    map[string][]byte
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	settings := config.Default()
	settings.SlowFrame = 0

	f := &fixture{
		backend: newFakeBackend(),
		window:  &fakeWindow{},
		ui:      &fakeUI{},
		files:   make(map[string][]byte),
	}
	f.platform = &fakePlatform{scale: 1, window: f.window}

	for path, stage := range map[string]gfx.ShaderStage{
		settings.VertexShaderPath():   gfx.StageVertex,
		settings.FragmentShaderPath(): gfx.StageFragment,
	} {
		code, err := gfx.EncodeShader(stage, []byte("void main() {}"))
		if err != nil {
			t.Fatal(err)
		}
		f.files[path] = code
	}

	f.ctx = New(Options{
		Settings: settings,
		Platform: f.platform,
		Backend:  f.backend,
		NewUI: func(platform.Window, gfx.Backend, gfx.ViewID, float32) (ui.Layer, error) {
			if f.uiErr != nil {
				return nil, f.uiErr
			}
			return f.ui, nil
		},
		ReadFile: func(path string) ([]byte, error) {
			code, ok := f.files[path]
			if !ok {
				return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
			}
			return code, nil
		},
		Logger: log.New(io.Discard, "", 0),
	})
	return f
}

// mustInit initializes the context or fails the test.
func (f *fixture) mustInit(t *testing.T) {
	t.Helper()
	if err := f.ctx.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
}
