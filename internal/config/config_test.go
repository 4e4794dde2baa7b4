package config

import (
	"flag"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.Width != 800 || s.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", s.Width, s.Height)
	}
	if !s.VSync {
		t.Error("vsync should default on")
	}
	if got, want := s.VertexShaderPath(), filepath.Join("shader", "build", "v_simple.bin"); got != want {
		t.Errorf("VertexShaderPath = %q, want %q", got, want)
	}
	if got, want := s.FragmentShaderPath(), filepath.Join("shader", "build", "f_simple.bin"); got != want {
		t.Errorf("FragmentShaderPath = %q, want %q", got, want)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings invalid: %v", err)
	}
}

func TestRegisterFlags(t *testing.T) {
	s := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	s.RegisterFlags(fs)

	args := []string{"-width", "1024", "-height", "768", "-shader-dir", "out", "-vsync=false", "-slow-frame", "0", "-fps-limit", "144"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	if s.Width != 1024 || s.Height != 768 {
		t.Errorf("size = %dx%d, want 1024x768", s.Width, s.Height)
	}
	if s.ShaderDir != "out" || s.VSync || s.SlowFrame != 0 {
		t.Errorf("unexpected settings %+v", s)
	}
	if s.FPSLimit != 144 {
		t.Errorf("FPSLimit = %d, want 144", s.FPSLimit)
	}
	if s.Title != "cube-demo" {
		t.Errorf("title changed to %q", s.Title)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		ok     bool
	}{
		{"default", func(*Settings) {}, true},
		{"zero width", func(s *Settings) { s.Width = 0 }, false},
		{"negative height", func(s *Settings) { s.Height = -1 }, false},
		{"empty shader dir", func(s *Settings) { s.ShaderDir = "" }, false},
		{"negative fps limit", func(s *Settings) { s.FPSLimit = -1 }, false},
		{"negative slow frame", func(s *Settings) { s.SlowFrame = -time.Second }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, ok want %v", err, tt.ok)
			}
		})
	}
}
