package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
	"github.com/richinsley/revenant/graphics"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator lazily creates the shared shader translator.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Translated is a shader source rewritten for the target dialect.
type Translated struct {
	Code  string
	Names NameMap
}

// Translate rewrites a GLSL ES 3.00 source for the current context: GLSL
// 4.10 for desktop GL, ESSL for GLES.
func Translate(source string, stage graphics.ShaderStage, isGLES bool) (*Translated, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	outputFormat := gst.OutputFormatGLSL410
	if isGLES {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := t.TranslateShader(source, stage.String(), gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	names := make(NameMap, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return &Translated{Code: out.Code, Names: names}, nil
}

// NameMap maps source-level variable names to the names in translated code.
type NameMap map[string]string

// Merge adds the entries of other that m does not already have.
func (m NameMap) Merge(other NameMap) NameMap {
	if m == nil {
		m = make(NameMap, len(other))
	}
	for k, v := range other {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return m
}

// Resolve maps a uniform name such as "light.light.ambient" or
// "weights[2]". Only top-level variables appear in the translator output, so
// struct fields inherit the prefix the translator put on the root name.
// Unknown names are returned unchanged.
func (m NameMap) Resolve(name string) string {
	if mapped, ok := m[name]; ok {
		return mapped
	}
	root, rest := splitRoot(name)
	mapped, ok := m[root]
	if !ok {
		return name
	}
	if rest == "" {
		return mapped
	}
	prefix, ok := strings.CutSuffix(mapped, root)
	if !ok || prefix == "" {
		return mapped + rest
	}
	// fields[0] is "" or the root's own index suffix.
	fields := strings.Split(rest, ".")
	for i := 1; i < len(fields); i++ {
		fields[i] = prefix + fields[i]
	}
	return mapped + strings.Join(fields, ".")
}

// splitRoot splits "a[1].b.c" into "a" and "[1].b.c".
func splitRoot(name string) (root, rest string) {
	if i := strings.IndexAny(name, ".["); i >= 0 {
		return name[:i], name[i:]
	}
	return name, ""
}
