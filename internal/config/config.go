// Package config holds the startup settings of the demo.
package config

import (
	"flag"
	"fmt"
	"path/filepath"
	"time"
)

// Settings configures window, shaders and frame logging.
type Settings struct {
	Title  string
	Width  int // logical pixels before content scaling
	Height int

	ShaderDir string
	VSync     bool

	// FPSLimit caps the frame rate when positive. Mostly useful with VSync off.
	FPSLimit int

	// SlowFrame is the frame time above which a frame is logged. Zero disables.
	SlowFrame time.Duration
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		Title:     "cube-demo",
		Width:     800,
		Height:    600,
		ShaderDir: filepath.Join("shader", "build"),
		VSync:     true,
		SlowFrame: 50 * time.Millisecond,
	}
}

// RegisterFlags binds the settings to fs, using the current values as defaults.
func (s *Settings) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&s.Title, "title", s.Title, "Window title")
	fs.IntVar(&s.Width, "width", s.Width, "Initial window width before display scaling")
	fs.IntVar(&s.Height, "height", s.Height, "Initial window height before display scaling")
	fs.StringVar(&s.ShaderDir, "shader-dir", s.ShaderDir, "Directory holding v_simple.bin and f_simple.bin")
	fs.BoolVar(&s.VSync, "vsync", s.VSync, "Lock presentation to the display refresh")
	fs.IntVar(&s.FPSLimit, "fps-limit", s.FPSLimit, "Cap frames per second (0 disables)")
	fs.DurationVar(&s.SlowFrame, "slow-frame", s.SlowFrame, "Log frames slower than this (0 disables)")
}

// Validate rejects settings the window cannot be created with.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.ShaderDir == "" {
		return fmt.Errorf("config: shader dir is empty")
	}
	if s.FPSLimit < 0 {
		return fmt.Errorf("config: fps-limit must not be negative")
	}
	if s.SlowFrame < 0 {
		return fmt.Errorf("config: slow-frame must not be negative")
	}
	return nil
}

// VertexShaderPath is the compiled vertex shader location.
func (s Settings) VertexShaderPath() string {
	return filepath.Join(s.ShaderDir, "v_simple.bin")
}

// FragmentShaderPath is the compiled fragment shader location.
func (s Settings) FragmentShaderPath() string {
	return filepath.Join(s.ShaderDir, "f_simple.bin")
}
