package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/revenant/asset"
	"github.com/richinsley/revenant/glyph"
	"github.com/richinsley/revenant/graphics"
	"github.com/richinsley/revenant/options"
	"github.com/richinsley/revenant/shader"
	"github.com/richinsley/revenant/texture"
)

const glyphUnit = 0

type labelGlyph struct {
	tex                    *texture.Texture // nil for blank glyphs
	left, top, width, rows float32
	advance                float32
}

// Label is a single line of screen-space text. Glyph textures are shared
// through the asset manager; the label owns only its quad buffer.
type Label struct {
	Text   string
	Origin mgl32.Vec2
	Color  mgl32.Vec3

	glyphs []labelGlyph
	quad   *Mesh
}

func newLabel(dev graphics.Device, assets *asset.Manager, raster *glyph.Rasterizer, cfg options.LabelConfig) (*Label, error) {
	l := &Label{
		Text:   cfg.Text,
		Origin: mgl32.Vec2{cfg.Position[0], cfg.Position[1]},
		Color:  vec3(cfg.Color),
	}
	for _, ch := range cfg.Text {
		bm, err := raster.Rasterize(ch)
		if err != nil {
			return nil, err
		}
		g := labelGlyph{
			left:    float32(bm.Left),
			top:     float32(bm.Top),
			width:   float32(bm.Width),
			rows:    float32(bm.Rows),
			advance: float32(bm.Advance),
		}
		if bm.Width > 0 && bm.Rows > 0 {
			key := fmt.Sprintf("glyph:%g:%U", raster.Size(), ch)
			g.tex, err = assets.Texture(key, func() (*texture.Texture, error) {
				return texture.FromGlyph(dev, bm)
			})
			if err != nil {
				return nil, err
			}
		}
		l.glyphs = append(l.glyphs, g)
	}

	quad, err := NewMesh(dev, make([]float32, 6*4), []Attribute{{0, 4}}, graphics.DynamicDraw)
	if err != nil {
		return nil, err
	}
	l.quad = quad
	return l, nil
}

// Draw renders the label with p, which must be the text program and in
// use, on a width x height framebuffer.
func (l *Label) Draw(p *shader.Program, width, height int) {
	p.SetMat4("projection", mgl32.Ortho2D(0, float32(width), 0, float32(height)))
	p.SetVec3("text_color", l.Color)
	p.SetInt("glyph", glyphUnit)

	x, y := l.Origin.X(), l.Origin.Y()
	for _, g := range l.glyphs {
		if g.tex != nil {
			x0, y0 := x+g.left, y+g.top
			x1, y1 := x0+g.width, y0-g.rows
			// The bitmap's first row is its top, at v = 0.
			l.quad.Update([]float32{
				x0, y0, 0, 0,
				x0, y1, 0, 1,
				x1, y1, 1, 1,
				x0, y0, 0, 0,
				x1, y1, 1, 1,
				x1, y0, 1, 0,
			})
			g.tex.Bind(glyphUnit)
			l.quad.Draw()
		}
		x += g.advance
	}
}

func (l *Label) Destroy() {
	if l == nil {
		return
	}
	l.quad.Destroy()
}
