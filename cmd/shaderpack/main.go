// Command shaderpack wraps a GLSL source file in the shader binary container
// read by cube-demo.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"cube-demo/internal/fileops"
	"cube-demo/internal/gfx"
)

func main() {
	stage := flag.String("stage", "", "Shader stage: vertex or fragment")
	in := flag.String("in", "", "GLSL source file")
	out := flag.String("out", "", "Output binary")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	var s gfx.ShaderStage
	switch *stage {
	case "vertex":
		s = gfx.StageVertex
	case "fragment":
		s = gfx.StageFragment
	default:
		log.Fatalf("unknown stage %q", *stage)
	}

	src, err := fileops.ReadFile(*in)
	if err != nil {
		log.Fatalf("read source: %v", err)
	}
	code, err := gfx.EncodeShader(s, src)
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := os.WriteFile(*out, code, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("%s: %v shader, %d bytes", *out, s, len(code))
}
