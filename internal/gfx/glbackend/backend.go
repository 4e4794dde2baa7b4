// Package glbackend implements gfx.Backend on OpenGL 4.1 core.
package glbackend

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"cube-demo/internal/gfx"
)

type vertexBuffer struct {
	vao   uint32
	vbo   uint32
	count int32
}

type indexBuffer struct {
	ebo   uint32
	count int32
}

type uniform struct {
	name string
	typ  gfx.UniformType
}

type uniformValue struct {
	handle gfx.UniformHandle
	value  [16]float32
}

type draw struct {
	program  gfx.ProgramHandle
	vb       gfx.VertexBufferHandle
	ib       gfx.IndexBufferHandle
	model    mgl32.Mat4
	uniforms []uniformValue
}

type view struct {
	clear        gfx.ClearFlags
	clearRGBA    uint32
	clearDepth   float32
	clearStencil uint8

	hasRect             bool
	x, y, width, height int

	viewMtx mgl32.Mat4
	proj    mgl32.Mat4

	draws []draw
	funcs []func()
}

// Backend is an OpenGL gfx.Backend. All methods must be called from the
// thread that owns the surface's context.
type Backend struct {
	surface gfx.Surface
	caps    gfx.Caps
	logger  *log.Logger

	width, height int
	frame         uint32

	views [gfx.MaxViews]view

	vertexBuffers pool[*vertexBuffer]
	indexBuffers  pool[*indexBuffer]
	shaders       pool[*shader]
	programs      pool[*program]
	uniforms      pool[*uniform]

	pending draw
}

// New returns an uninitialized backend. A nil logger uses log.Default().
func New(logger *log.Logger) *Backend {
	if logger == nil {
		logger = log.Default()
	}
	b := &Backend{logger: logger}
	b.resetPending()
	for i := range b.views {
		b.views[i].viewMtx = mgl32.Ident4()
		b.views[i].proj = mgl32.Ident4()
	}
	return b
}

// Init binds the backend to the window surface and loads GL entry points.
func (b *Backend) Init(init gfx.Init) error {
	if init.Type != gfx.RendererOpenGL {
		return fmt.Errorf("glbackend: unsupported renderer %v", init.Type)
	}
	if init.Platform.NativeWindow == 0 || init.Platform.Surface == nil {
		return gfx.ErrNoPlatformData
	}
	b.surface = init.Platform.Surface
	b.surface.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("glbackend: %w", err)
	}
	b.logger.Printf("glbackend: OpenGL %s (%s)",
		gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	b.caps = gfx.Caps{Renderer: gfx.RendererOpenGL, HomogeneousDepth: true}
	b.Reset(init.Resolution.Width, init.Resolution.Height, init.Resolution.Reset)
	return nil
}

// Shutdown releases every live resource. Leftovers are logged as leaks.
func (b *Backend) Shutdown() {
	leaked := b.vertexBuffers.len() + b.indexBuffers.len() + b.shaders.len() +
		b.programs.len() + b.uniforms.len()
	if leaked > 0 {
		b.logger.Printf("glbackend: %d resources still alive at shutdown", leaked)
	}
	for _, id := range b.vertexBuffers.ids() {
		b.DestroyVertexBuffer(gfx.VertexBufferHandle{ID: id})
	}
	for _, id := range b.indexBuffers.ids() {
		b.DestroyIndexBuffer(gfx.IndexBufferHandle{ID: id})
	}
	for _, id := range b.programs.ids() {
		b.DestroyProgram(gfx.ProgramHandle{ID: id})
	}
	for _, id := range b.shaders.ids() {
		b.DestroyShader(gfx.ShaderHandle{ID: id})
	}
	for _, id := range b.uniforms.ids() {
		b.DestroyUniform(gfx.UniformHandle{ID: id})
	}
	b.surface = nil
}

// Reset resizes the back buffer and applies the swap interval.
func (b *Backend) Reset(width, height int, flags gfx.ResetFlags) {
	b.width, b.height = width, height
	interval := 0
	if flags&gfx.ResetVSync != 0 {
		interval = 1
	}
	if b.surface != nil {
		b.surface.SetSwapInterval(interval)
	}
}

// Caps reports what the backend supports; valid after Init.
func (b *Backend) Caps() gfx.Caps { return b.caps }

// SetViewClear sets what Frame clears at the start of the view.
func (b *Backend) SetViewClear(id gfx.ViewID, flags gfx.ClearFlags, rgba uint32, depth float32, stencil uint8) {
	v := &b.views[id]
	v.clear = flags
	v.clearRGBA = rgba
	v.clearDepth = depth
	v.clearStencil = stencil
}

// SetViewRect sets the view's viewport, top-left origin, in back-buffer pixels.
func (b *Backend) SetViewRect(id gfx.ViewID, x, y, width, height int) {
	v := &b.views[id]
	v.hasRect = true
	v.x, v.y, v.width, v.height = x, y, width, height
}

// SetViewTransform sets the view and projection matrices for the view's draws.
func (b *Backend) SetViewTransform(id gfx.ViewID, viewMtx, proj mgl32.Mat4) {
	v := &b.views[id]
	v.viewMtx = viewMtx
	v.proj = proj
}

// CreateVertexBuffer uploads static vertices. Returns an invalid handle for
// empty input or when handles run out.
func (b *Backend) CreateVertexBuffer(vertices []float32, layout gfx.VertexLayout) gfx.VertexBufferHandle {
	if layout.Stride == 0 || len(vertices) == 0 {
		return gfx.InvalidVertexBuffer
	}
	vb := &vertexBuffer{count: int32(len(vertices) / layout.FloatsPerVertex())}

	gl.GenVertexArrays(1, &vb.vao)
	gl.BindVertexArray(vb.vao)

	gl.GenBuffers(1, &vb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	for _, a := range layout.Attribs {
		typ := uint32(gl.FLOAT)
		if a.Type == gfx.AttribUint8 {
			typ = gl.UNSIGNED_BYTE
		}
		gl.EnableVertexAttribArray(uint32(a.Attrib))
		gl.VertexAttribPointer(uint32(a.Attrib), int32(a.Num), typ, a.Normalized, int32(layout.Stride), gl.PtrOffset(a.Offset))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	id, ok := b.vertexBuffers.add(vb)
	if !ok {
		gl.DeleteBuffers(1, &vb.vbo)
		gl.DeleteVertexArrays(1, &vb.vao)
		return gfx.InvalidVertexBuffer
	}
	return gfx.VertexBufferHandle{ID: id}
}

// CreateIndexBuffer uploads static 16-bit indices.
func (b *Backend) CreateIndexBuffer(indices []uint16) gfx.IndexBufferHandle {
	if len(indices) == 0 {
		return gfx.InvalidIndexBuffer
	}
	ib := &indexBuffer{count: int32(len(indices))}
	gl.GenBuffers(1, &ib.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	id, ok := b.indexBuffers.add(ib)
	if !ok {
		gl.DeleteBuffers(1, &ib.ebo)
		return gfx.InvalidIndexBuffer
	}
	return gfx.IndexBufferHandle{ID: id}
}

// CreateShader compiles a gfx shader container whose payload is GLSL source.
func (b *Backend) CreateShader(code []byte, name string) (gfx.ShaderHandle, error) {
	stage, payload, err := gfx.DecodeShader(code)
	if err != nil {
		return gfx.InvalidShader, fmt.Errorf("shader %s: %w", name, err)
	}
	typ, err := glStage(stage)
	if err != nil {
		return gfx.InvalidShader, fmt.Errorf("shader %s: %w", name, err)
	}
	sid, err := compileShader(string(payload), typ)
	if err != nil {
		return gfx.InvalidShader, fmt.Errorf("shader %s: %w", name, err)
	}
	id, ok := b.shaders.add(&shader{id: sid, stage: stage, name: name})
	if !ok {
		gl.DeleteShader(sid)
		return gfx.InvalidShader, fmt.Errorf("shader %s: handle space exhausted", name)
	}
	return gfx.ShaderHandle{ID: id}, nil
}

// CreateProgram links vs and fs. With destroyShaders the shader handles are
// released as soon as the program is linked.
func (b *Backend) CreateProgram(vs, fs gfx.ShaderHandle, destroyShaders bool) (gfx.ProgramHandle, error) {
	if destroyShaders {
		defer b.DestroyShader(vs)
		defer b.DestroyShader(fs)
	}
	v, okV := b.shaders.get(vs.ID)
	f, okF := b.shaders.get(fs.ID)
	if !okV || !okF {
		return gfx.InvalidProgram, fmt.Errorf("glbackend: invalid shader handle")
	}
	pid, err := linkProgram(v.id, f.id)
	if err != nil {
		return gfx.InvalidProgram, fmt.Errorf("program %s+%s: %w", v.name, f.name, err)
	}
	id, ok := b.programs.add(&program{id: pid, locations: make(map[string]int32)})
	if !ok {
		gl.DeleteProgram(pid)
		return gfx.InvalidProgram, fmt.Errorf("glbackend: program handle space exhausted")
	}
	return gfx.ProgramHandle{ID: id}, nil
}

// CreateUniform registers a named uniform, resolved per program at draw time.
func (b *Backend) CreateUniform(name string, typ gfx.UniformType) gfx.UniformHandle {
	id, ok := b.uniforms.add(&uniform{name: name, typ: typ})
	if !ok {
		return gfx.InvalidUniform
	}
	return gfx.UniformHandle{ID: id}
}

// DestroyVertexBuffer frees the buffer and its vertex array. Unknown handles are ignored.
func (b *Backend) DestroyVertexBuffer(h gfx.VertexBufferHandle) {
	if vb, ok := b.vertexBuffers.remove(h.ID); ok {
		gl.DeleteBuffers(1, &vb.vbo)
		gl.DeleteVertexArrays(1, &vb.vao)
	}
}

// DestroyIndexBuffer frees the index buffer.
func (b *Backend) DestroyIndexBuffer(h gfx.IndexBufferHandle) {
	if ib, ok := b.indexBuffers.remove(h.ID); ok {
		gl.DeleteBuffers(1, &ib.ebo)
	}
}

// DestroyShader deletes the shader object.
func (b *Backend) DestroyShader(h gfx.ShaderHandle) {
	if s, ok := b.shaders.remove(h.ID); ok {
		gl.DeleteShader(s.id)
	}
}

// DestroyProgram deletes the linked program.
func (b *Backend) DestroyProgram(h gfx.ProgramHandle) {
	if p, ok := b.programs.remove(h.ID); ok {
		gl.DeleteProgram(p.id)
	}
}

// DestroyUniform forgets the uniform.
func (b *Backend) DestroyUniform(h gfx.UniformHandle) {
	b.uniforms.remove(h.ID)
}

// SetTransform sets the model matrix of the next draw.
func (b *Backend) SetTransform(model mgl32.Mat4) {
	b.pending.model = model
}

// SetUniform records a value for the next draw; extra components are ignored.
func (b *Backend) SetUniform(h gfx.UniformHandle, value []float32) {
	u, ok := b.uniforms.get(h.ID)
	if !ok {
		return
	}
	uv := uniformValue{handle: h}
	copy(uv.value[:u.typ.Components()], value)
	b.pending.uniforms = append(b.pending.uniforms, uv)
}

// SetVertexBuffer sets the next draw's vertices. Only stream 0 is used.
func (b *Backend) SetVertexBuffer(_ uint8, h gfx.VertexBufferHandle) {
	b.pending.vb = h
}

// SetIndexBuffer sets the next draw's indices.
func (b *Backend) SetIndexBuffer(h gfx.IndexBufferHandle) {
	b.pending.ib = h
}

// Submit queues the pending draw state on the view and resets it.
func (b *Backend) Submit(id gfx.ViewID, p gfx.ProgramHandle) {
	d := b.pending
	d.program = p
	b.views[id].draws = append(b.views[id].draws, d)
	b.resetPending()
}

// SubmitFunc queues fn to run inside the view after its draws, during Frame.
func (b *Backend) SubmitFunc(id gfx.ViewID, fn func()) {
	b.views[id].funcs = append(b.views[id].funcs, fn)
}

// Frame runs every view with work queued, in id order, then swaps buffers.
func (b *Backend) Frame() uint32 {
	for i := range b.views {
		v := &b.views[i]
		if v.clear == gfx.ClearNone && len(v.draws) == 0 && len(v.funcs) == 0 {
			continue
		}
		b.runView(v)
		v.draws = v.draws[:0]
		v.funcs = v.funcs[:0]
	}
	if b.surface != nil {
		b.surface.SwapBuffers()
	}
	b.frame++
	return b.frame
}

func (b *Backend) runView(v *view) {
	x, y, w, h := 0, 0, b.width, b.height
	if v.hasRect {
		x, y, w, h = v.x, v.y, v.width, v.height
	}
	// GL's window origin is bottom-left; view rects are top-left.
	glY := int32(b.height - y - h)
	gl.Viewport(int32(x), glY, int32(w), int32(h))

	if v.clear != gfx.ClearNone {
		var mask uint32
		if v.clear&gfx.ClearColor != 0 {
			r, g, bl, a := unpackRGBA(v.clearRGBA)
			gl.ClearColor(r, g, bl, a)
			mask |= gl.COLOR_BUFFER_BIT
		}
		if v.clear&gfx.ClearDepth != 0 {
			gl.DepthMask(true)
			gl.ClearDepth(float64(v.clearDepth))
			mask |= gl.DEPTH_BUFFER_BIT
		}
		if v.clear&gfx.ClearStencil != 0 {
			gl.ClearStencil(int32(v.clearStencil))
			mask |= gl.STENCIL_BUFFER_BIT
		}
		gl.Enable(gl.SCISSOR_TEST)
		gl.Scissor(int32(x), glY, int32(w), int32(h))
		gl.Clear(mask)
		gl.Disable(gl.SCISSOR_TEST)
	}

	for i := range v.draws {
		b.runDraw(v, &v.draws[i])
	}
	for _, fn := range v.funcs {
		fn()
	}
}

func (b *Backend) runDraw(v *view, d *draw) {
	p, ok := b.programs.get(d.program.ID)
	if !ok {
		return
	}
	vb, ok := b.vertexBuffers.get(d.vb.ID)
	if !ok {
		return
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(p.id)
	setMatrix(p, "u_model", d.model)
	setMatrix(p, "u_view", v.viewMtx)
	setMatrix(p, "u_proj", v.proj)
	setMatrix(p, "u_modelViewProj", v.proj.Mul4(v.viewMtx).Mul4(d.model))

	for i := range d.uniforms {
		uv := &d.uniforms[i]
		u, ok := b.uniforms.get(uv.handle.ID)
		if !ok {
			continue
		}
		loc := p.location(u.name)
		if loc < 0 {
			continue
		}
		switch u.typ {
		case gfx.UniformVec4:
			gl.Uniform4fv(loc, 1, &uv.value[0])
		case gfx.UniformMat4:
			gl.UniformMatrix4fv(loc, 1, false, &uv.value[0])
		}
	}

	gl.BindVertexArray(vb.vao)
	if ib, ok := b.indexBuffers.get(d.ib.ID); ok {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ebo)
		gl.DrawElements(gl.TRIANGLES, ib.count, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, vb.count)
	}
	gl.BindVertexArray(0)
}

func (b *Backend) resetPending() {
	b.pending = draw{
		program: gfx.InvalidProgram,
		vb:      gfx.InvalidVertexBuffer,
		ib:      gfx.InvalidIndexBuffer,
		model:   mgl32.Ident4(),
	}
}

func setMatrix(p *program, name string, m mgl32.Mat4) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// unpackRGBA splits 0xRRGGBBAA into normalized components.
func unpackRGBA(rgba uint32) (r, g, b, a float32) {
	return float32(rgba>>24&0xff) / 255,
		float32(rgba>>16&0xff) / 255,
		float32(rgba>>8&0xff) / 255,
		float32(rgba&0xff) / 255
}
