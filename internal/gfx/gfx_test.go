package gfx

import (
	"bytes"
	"errors"
	"testing"
)

func TestVertexLayoutStride(t *testing.T) {
	tests := []struct {
		name    string
		build   func(l *VertexLayout)
		stride  int
		offsets []int
	}{
		{
			name: "position only",
			build: func(l *VertexLayout) {
				l.Begin().Add(AttribPosition, 3, AttribFloat, false).End()
			},
			stride:  12,
			offsets: []int{0},
		},
		{
			name: "position uv color",
			build: func(l *VertexLayout) {
				l.Begin().
					Add(AttribPosition, 2, AttribFloat, false).
					Add(AttribTexCoord0, 2, AttribFloat, false).
					Add(AttribColor0, 4, AttribUint8, true).
					End()
			},
			stride:  20,
			offsets: []int{0, 8, 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l VertexLayout
			tt.build(&l)
			if l.Stride != tt.stride {
				t.Errorf("stride = %d, want %d", l.Stride, tt.stride)
			}
			if len(l.Attribs) != len(tt.offsets) {
				t.Fatalf("attribs = %d, want %d", len(l.Attribs), len(tt.offsets))
			}
			for i, off := range tt.offsets {
				if l.Attribs[i].Offset != off {
					t.Errorf("attrib %d offset = %d, want %d", i, l.Attribs[i].Offset, off)
				}
			}
		})
	}
}

func TestVertexLayoutBeginResets(t *testing.T) {
	var l VertexLayout
	l.Begin().Add(AttribPosition, 3, AttribFloat, false).End()
	l.Begin().Add(AttribPosition, 2, AttribFloat, false).End()
	if l.Stride != 8 || len(l.Attribs) != 1 {
		t.Fatalf("layout not reset: stride=%d attribs=%d", l.Stride, len(l.Attribs))
	}
	if l.FloatsPerVertex() != 2 {
		t.Errorf("FloatsPerVertex = %d, want 2", l.FloatsPerVertex())
	}
}

func TestShaderContainer(t *testing.T) {
	src := []byte("#version 410 core\nvoid main() {}\n")
	for _, stage := range []ShaderStage{StageVertex, StageFragment} {
		code, err := EncodeShader(stage, src)
		if err != nil {
			t.Fatalf("EncodeShader(%v): %v", stage, err)
		}
		got, payload, err := DecodeShader(code)
		if err != nil {
			t.Fatalf("DecodeShader(%v): %v", stage, err)
		}
		if got != stage {
			t.Errorf("stage = %v, want %v", got, stage)
		}
		if !bytes.Equal(payload, src) {
			t.Errorf("payload = %q, want %q", payload, src)
		}
	}
}

func TestDecodeShaderRejects(t *testing.T) {
	valid, err := EncodeShader(StageVertex, []byte("void main() {}"))
	if err != nil {
		t.Fatal(err)
	}

	badMagic := append([]byte(nil), valid...)
	badMagic[0] = 'X'

	badVersion := append([]byte(nil), valid...)
	badVersion[3] = 9

	tests := []struct {
		name string
		code []byte
		want error
	}{
		{"empty", nil, ErrShaderTruncated},
		{"short header", valid[:5], ErrShaderTruncated},
		{"short payload", valid[:len(valid)-1], ErrShaderTruncated},
		{"bad magic", badMagic, ErrShaderMagic},
		{"bad version", badVersion, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeShader(tt.code)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHandleValidity(t *testing.T) {
	if InvalidProgram.IsValid() || InvalidUniform.IsValid() || InvalidVertexBuffer.IsValid() {
		t.Error("invalid handles report valid")
	}
	if !(ProgramHandle{ID: 0}).IsValid() {
		t.Error("handle 0 should be valid")
	}
}
