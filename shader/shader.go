package shader

import (
	"fmt"
	"strings"

	"github.com/richinsley/revenant/graphics"
)

// CompileError reports a stage that the driver refused to compile. Log is
// the driver's info log, unmodified.
type CompileError struct {
	Stage graphics.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, strings.TrimSpace(e.Log))
}

// Shader is one compiled stage. It is consumed by Link; a Shader that is
// never linked must be released with Destroy.
type Shader struct {
	device graphics.Device
	id     uint32
	stage  graphics.ShaderStage
}

// Compile compiles source as the given stage. On failure the shader object
// is deleted and a *CompileError is returned.
func Compile(dev graphics.Device, source string, stage graphics.ShaderStage) (*Shader, error) {
	id := dev.CreateShader(stage)
	dev.ShaderSource(id, source)
	dev.CompileShader(id)

	if !dev.ShaderCompiled(id) {
		logText := dev.ShaderInfoLog(id)
		dev.DeleteShader(id)
		return nil, &CompileError{Stage: stage, Log: logText}
	}
	return &Shader{device: dev, id: id, stage: stage}, nil
}

// Stage returns the pipeline stage the shader was compiled for.
func (s *Shader) Stage() graphics.ShaderStage { return s.stage }

// Destroy deletes the shader object. It is safe to call more than once.
func (s *Shader) Destroy() {
	if s == nil || s.id == 0 {
		return
	}
	s.device.DeleteShader(s.id)
	s.id = 0
}
