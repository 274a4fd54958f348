package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/revenant/graphics"
	"github.com/richinsley/revenant/shader"
	xlate "github.com/richinsley/revenant/translator"
)

// RenderPass is a named program drawn once per frame.
type RenderPass struct {
	Name    string
	Program *shader.Program
}

// createRenderPass returns the pass for name, building its program on first
// use and sharing it through the asset manager afterwards.
func (r *Renderer) createRenderPass(name, vertexSource, fragmentSource string) (*RenderPass, error) {
	prog, err := r.assets.Program(name, func() (*shader.Program, error) {
		return buildProgram(r.device, vertexSource, fragmentSource, r.translate, r.context.IsGLES())
	})
	if err != nil {
		return nil, err
	}
	return &RenderPass{Name: name, Program: prog}, nil
}

// buildProgram compiles and links the sources, first translating them to
// the context's dialect when translate is set. Uniform names used by the
// renderer are mapped onto the translator's renamed identifiers.
func buildProgram(dev graphics.Device, vertexSource, fragmentSource string, translate, isGLES bool) (*shader.Program, error) {
	if !translate {
		return shader.NewProgram(dev, vertexSource, fragmentSource)
	}

	vs, err := xlate.Translate(vertexSource, graphics.StageVertex, isGLES)
	if err != nil {
		return nil, err
	}
	fs, err := xlate.Translate(fragmentSource, graphics.StageFragment, isGLES)
	if err != nil {
		return nil, err
	}

	prog, err := shader.NewProgram(dev, vs.Code, fs.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	names := vs.Names.Merge(fs.Names)
	prog.MapUniformNames(names.Resolve)
	log.Printf("Linked translated program with %d mapped names", len(names))
	return prog, nil
}
