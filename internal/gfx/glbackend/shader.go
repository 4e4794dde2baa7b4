package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"cube-demo/internal/gfx"
)

type shader struct {
	id    uint32
	stage gfx.ShaderStage
	name  string
}

type program struct {
	id        uint32
	locations map[string]int32
}

// location returns the cached uniform location for name, -1 if the program
// does not use it.
func (p *program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func glStage(stage gfx.ShaderStage) (uint32, error) {
	switch stage {
	case gfx.StageVertex:
		return gl.VERTEX_SHADER, nil
	case gfx.StageFragment:
		return gl.FRAGMENT_SHADER, nil
	default:
		return 0, fmt.Errorf("unsupported shader stage %v", stage)
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	id := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteShader(id)

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return id, nil
}

func linkProgram(vs, fs uint32) (uint32, error) {
	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)

		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	gl.DetachShader(id, vs)
	gl.DetachShader(id, fs)
	return id, nil
}

// NewProgram compiles GLSL vertex and fragment sources and links them. The
// shader objects are deleted once linked. Used by overlays that drive GL
// directly from a gfx.Backend SubmitFunc.
func NewProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)
	return linkProgram(vs, fs)
}
