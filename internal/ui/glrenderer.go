package ui

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/inkyblackness/imgui-go/v4"

	"cube-demo/internal/gfx/glbackend"
)

const (
	imguiVertexShader = `#version 410 core
uniform mat4 ProjMtx;
in vec2 Position;
in vec2 UV;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;
void main() {
	Frag_UV = UV;
	Frag_Color = Color;
	gl_Position = ProjMtx * vec4(Position.xy, 0, 1);
}`

	imguiFragmentShader = `#version 410 core
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;
void main() {
	Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}`
)

// glRenderer replays ImGui draw lists with OpenGL 4.1.
type glRenderer struct {
	program     uint32
	locTex      int32
	locProjMtx  int32
	locPosition uint32
	locUV       uint32
	locColor    uint32

	vao         uint32
	vbo         uint32
	ebo         uint32
	fontTexture uint32
}

func newGLRenderer(io imgui.IO) (*glRenderer, error) {
	program, err := glbackend.NewProgram(imguiVertexShader, imguiFragmentShader)
	if err != nil {
		return nil, err
	}
	r := &glRenderer{
		program:     program,
		locTex:      gl.GetUniformLocation(program, gl.Str("Texture\x00")),
		locProjMtx:  gl.GetUniformLocation(program, gl.Str("ProjMtx\x00")),
		locPosition: uint32(gl.GetAttribLocation(program, gl.Str("Position\x00"))),
		locUV:       uint32(gl.GetAttribLocation(program, gl.Str("UV\x00"))),
		locColor:    uint32(gl.GetAttribLocation(program, gl.Str("Color\x00"))),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	vertexSize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	gl.EnableVertexAttribArray(r.locPosition)
	gl.EnableVertexAttribArray(r.locUV)
	gl.EnableVertexAttribArray(r.locColor)
	gl.VertexAttribPointer(r.locPosition, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(posOffset))
	gl.VertexAttribPointer(r.locUV, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(uvOffset))
	gl.VertexAttribPointer(r.locColor, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(colOffset))
	gl.BindVertexArray(0)

	r.createFontTexture(io)
	return r, nil
}

func (r *glRenderer) createFontTexture(io imgui.IO) {
	fonts := io.Fonts()
	image := fonts.TextureDataRGBA32()

	gl.GenTextures(1, &r.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(image.Width), int32(image.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	fonts.SetTextureID(imgui.TextureID(r.fontTexture))
}

// render draws one frame of draw lists. Called from inside gfx.Backend.Frame.
func (r *glRenderer) render(displaySize, framebufferSize [2]float32, drawData imgui.DrawData) {
	displayWidth, displayHeight := displaySize[0], displaySize[1]
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if displayWidth <= 0 || displayHeight <= 0 || fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	drawData.ScaleClipRects(imgui.Vec2{X: fbWidth / displayWidth, Y: fbHeight / displayHeight})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	ortho := [4][4]float32{
		{2.0 / displayWidth, 0.0, 0.0, 0.0},
		{0.0, 2.0 / -displayHeight, 0.0, 0.0},
		{0.0, 0.0, -1.0, 0.0},
		{-1.0, 1.0, 0.0, 1.0},
	}
	gl.UseProgram(r.program)
	gl.Uniform1i(r.locTex, 0)
	gl.UniformMatrix4fv(r.locProjMtx, 1, false, &ortho[0][0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.vao)

	indexSize := imgui.IndexBufferLayout()
	drawType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		drawType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vertexBufferSize, vertexBuffer, gl.STREAM_DRAW)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, indexBufferSize, indexBuffer, gl.STREAM_DRAW)

		offset := 0
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				clip := cmd.ClipRect()
				gl.Scissor(int32(clip.X), int32(fbHeight)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), drawType, gl.PtrOffset(offset))
			}
			offset += cmd.ElementCount() * indexSize
		}
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
}

func (r *glRenderer) dispose() {
	if r.fontTexture != 0 {
		gl.DeleteTextures(1, &r.fontTexture)
		imgui.CurrentIO().Fonts().SetTextureID(0)
		r.fontTexture = 0
	}
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)
	r.vbo, r.ebo, r.vao, r.program = 0, 0, 0, 0
}
