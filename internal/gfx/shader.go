package gfx

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ShaderStage is the pipeline stage a shader binary targets.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

const (
	shaderVersion    = 1
	shaderHeaderSize = 8
)

var shaderMagic = map[ShaderStage][3]byte{
	StageVertex:   {'V', 'S', 'H'},
	StageFragment: {'F', 'S', 'H'},
}

var (
	ErrShaderMagic     = errors.New("gfx: unknown shader magic")
	ErrShaderTruncated = errors.New("gfx: truncated shader binary")
)

// EncodeShader wraps payload in the shader binary container:
// 3-byte stage magic, version byte, little-endian uint32 length, payload.
func EncodeShader(stage ShaderStage, payload []byte) ([]byte, error) {
	magic, ok := shaderMagic[stage]
	if !ok {
		return nil, fmt.Errorf("gfx: cannot encode %v shader", stage)
	}
	out := make([]byte, shaderHeaderSize, shaderHeaderSize+len(payload))
	copy(out, magic[:])
	out[3] = shaderVersion
	binary.LittleEndian.PutUint32(out[4:], uint32(len(payload)))
	return append(out, payload...), nil
}

// DecodeShader parses a shader binary container.
func DecodeShader(code []byte) (ShaderStage, []byte, error) {
	if len(code) < shaderHeaderSize {
		return 0, nil, ErrShaderTruncated
	}
	var stage ShaderStage
	found := false
	for s, magic := range shaderMagic {
		if code[0] == magic[0] && code[1] == magic[1] && code[2] == magic[2] {
			stage, found = s, true
			break
		}
	}
	if !found {
		return 0, nil, ErrShaderMagic
	}
	if code[3] != shaderVersion {
		return 0, nil, fmt.Errorf("gfx: unsupported shader version %d", code[3])
	}
	n := binary.LittleEndian.Uint32(code[4:shaderHeaderSize])
	if uint64(len(code)-shaderHeaderSize) < uint64(n) {
		return 0, nil, ErrShaderTruncated
	}
	return stage, code[shaderHeaderSize : shaderHeaderSize+int(n)], nil
}
