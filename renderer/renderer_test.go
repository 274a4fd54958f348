package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/revenant/graphics"
	"github.com/richinsley/revenant/options"
	"github.com/richinsley/revenant/simgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContext struct {
	width, height int
	shouldClose   bool
	closeAfter    int
	frames        int
	now           float64
	input         graphics.InputEvents
	shutdown      bool
}

var _ graphics.Context = (*fakeContext)(nil)

func (c *fakeContext) MakeCurrent() {}
func (c *fakeContext) Shutdown() { c.shutdown = true }
func (c *fakeContext) ShouldClose() bool { return c.shouldClose }
func (c *fakeContext) SetShouldClose(v bool) { c.shouldClose = v }
func (c *fakeContext) GetFramebufferSize() (int, int) { return c.width, c.height }
func (c *fakeContext) Time() float64 { return c.now }
func (c *fakeContext) IsGLES() bool { return false }

func (c *fakeContext) EndFrame() {
	c.frames++
	c.now += 1.0 / 60
	if c.closeAfter > 0 && c.frames >= c.closeAfter {
		c.shouldClose = true
	}
}

func (c *fakeContext) Input() graphics.InputEvents {
	ev := c.input
	c.input = graphics.InputEvents{Held: ev.Held}
	return ev
}

func newTestRenderer(t *testing.T) (*Renderer, *simgpu.Device, *fakeContext) {
	t.Helper()
	dev := simgpu.New()
	ctx := &fakeContext{width: 800, height: 600}
	translate := false
	r := NewRenderer(ctx, dev, &options.ViewerOptions{Translate: &translate})
	return r, dev, ctx
}

func loadDefault(t *testing.T, r *Renderer) *options.Scene {
	t.Helper()
	cfg, err := options.DefaultScene()
	require.NoError(t, err)
	require.NoError(t, r.InitScene(cfg, t.TempDir()))
	return cfg
}

func drawsWith(dev *simgpu.Device, program uint32) []simgpu.Draw {
	var out []simgpu.Draw
	for _, d := range dev.Draws {
		if d.Program == program {
			out = append(out, d)
		}
	}
	return out
}

func TestNewRendererInitialState(t *testing.T) {
	_, dev, _ := newTestRenderer(t)
	assert.True(t, dev.DepthTest)
	assert.False(t, dev.Blending)
	assert.Equal(t, graphics.PolygonFill, dev.PolygonMode)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.ViewportRect)
}

func TestDefaultSceneRendersWithoutViolations(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	cfg := loadDefault(t, r)

	s := r.scene
	require.NotNil(t, s)
	assert.Equal(t, len(cfg.Objects), s.Objects())
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, r.Camera().Position)
	assert.Equal(t, [4]float32{0.3, 0.3, 0.5, 1}, dev.Color)

	_, programs := r.Assets().Len()
	assert.Equal(t, 3, programs)

	r.RenderFrame(0.5)
	assert.Empty(t, dev.Violations)
	assert.Equal(t, 1, dev.Clears)

	objects := drawsWith(dev, s.ObjectPass.Program.ID())
	assert.Len(t, objects, len(cfg.Objects))
	for _, d := range objects {
		assert.Equal(t, int32(36), d.Count)
		assert.True(t, d.DepthTest)
	}
	assert.Len(t, drawsWith(dev, s.LampPass.Program.ID()), 1)
	assert.NotEmpty(t, drawsWith(dev, s.TextPass.Program.ID()))

	assert.Equal(t, int32(36), s.Cube.Count())
	assert.Equal(t, int32(6), s.Label.quad.Count())
}

func TestTranslatedSceneRenders(t *testing.T) {
	dev := simgpu.New()
	ctx := &fakeContext{width: 800, height: 600}
	translate := true
	r := NewRenderer(ctx, dev, &options.ViewerOptions{Translate: &translate})
	cfg := loadDefault(t, r)
	r.RenderFrame(0)
	assert.Empty(t, dev.Violations)

	s := r.scene
	passes := map[*RenderPass][]string{
		s.ObjectPass: {
			"view", "projection", "model", "camera_pos",
			"material.diffuse_map", "material.specular_map", "material.specular_strength",
			"light.pos", "light.dir", "light.cut_off", "light.outer_cut_off", "light.directional",
			"light.light.ambient", "light.light.diffuse", "light.light.specular",
			"light.light.constant", "light.light.linear", "light.light.quadratic",
		},
		s.LampPass: {"view", "projection", "model", "lamp_color"},
		s.TextPass: {"projection", "text_color", "glyph"},
	}
	for pass, names := range passes {
		for _, name := range names {
			assert.NotEqual(t, int32(-1), pass.Program.Location(name), "%s: %s", pass.Name, name)
		}
	}

	v, ok := dev.Uniform(s.ObjectPass.Program.ID(), "_ulight._ulight._uquadratic")
	require.True(t, ok)
	assert.Equal(t, cfg.Light.Quadratic, v)
	assert.Len(t, drawsWith(dev, s.ObjectPass.Program.ID()), len(cfg.Objects))
}

func TestMaterialTexturesMatchSamplerUnits(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	loadDefault(t, r)
	r.RenderFrame(0)

	s := r.scene
	prog := s.ObjectPass.Program.ID()
	diffuse, ok := dev.Uniform(prog, "material.diffuse_map")
	require.True(t, ok)
	specular, ok := dev.Uniform(prog, "material.specular_map")
	require.True(t, ok)

	m := s.Materials["crate"]
	require.NotNil(t, m)
	for _, d := range drawsWith(dev, prog) {
		assert.Equal(t, m.Diffuse.ID(), d.Units[uint32(diffuse.(int32))])
		assert.Equal(t, m.Specular.ID(), d.Units[uint32(specular.(int32))])
	}
	shininess, _ := dev.Uniform(prog, "material.specular_strength")
	assert.Equal(t, float32(32), shininess)
}

func TestSolidTexturesAreShared(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	cfg, err := options.DefaultScene()
	require.NoError(t, err)
	cfg.Materials = append(cfg.Materials, options.MaterialConfig{
		Name:          "twin",
		DiffuseColor:  cfg.Materials[0].DiffuseColor,
		SpecularColor: cfg.Materials[0].SpecularColor,
		Shininess:     8,
	})
	require.NoError(t, r.InitScene(cfg, t.TempDir()))

	s := r.scene
	assert.Same(t, s.Materials["crate"].Diffuse, s.Materials["twin"].Diffuse)
	assert.Same(t, s.Materials["crate"].Specular, s.Materials["twin"].Specular)
}

func TestLightUniforms(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	cfg := loadDefault(t, r)
	r.RenderFrame(0)

	prog := r.scene.ObjectPass.Program.ID()
	get := func(name string) any {
		v, ok := dev.Uniform(prog, name)
		require.True(t, ok, name)
		return v
	}
	assert.Equal(t, int32(0), get("light.directional"))
	assert.Equal(t, [3]float32{1.2, 1.0, 2.0}, get("light.pos"))
	assert.Equal(t, cfg.Light.Quadratic, get("light.light.quadratic"))
	assert.InDelta(t, math32.Cos(mgl32.DegToRad(cfg.Light.CutOff)), get("light.cut_off"), 1e-6)
	assert.InDelta(t, math32.Cos(mgl32.DegToRad(cfg.Light.OuterCutOff)), get("light.outer_cut_off"), 1e-6)
	assert.Equal(t, [3]float32{0, 0, 3}, get("camera_pos"))
}

func TestDirectionalLightHasNoLamp(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	cfg, err := options.DefaultScene()
	require.NoError(t, err)
	cfg.Light.Type = options.LightDirectional
	require.NoError(t, r.InitScene(cfg, t.TempDir()))

	r.RenderFrame(0)
	assert.Empty(t, dev.Violations)
	assert.Empty(t, drawsWith(dev, r.scene.LampPass.Program.ID()))
	v, _ := dev.Uniform(r.scene.ObjectPass.Program.ID(), "light.directional")
	assert.Equal(t, int32(1), v)
}

func TestTextPassRestoresState(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	loadDefault(t, r)

	r.Update(graphics.InputEvents{Pressed: graphics.KeySet(0).With(graphics.KeyP)}, 0)
	require.Equal(t, graphics.PolygonLine, r.PolygonMode())
	r.RenderFrame(0)

	text := drawsWith(dev, r.scene.TextPass.Program.ID())
	require.NotEmpty(t, text)
	for _, d := range text {
		assert.False(t, d.DepthTest)
		assert.True(t, d.Blending)
		assert.Equal(t, graphics.PolygonFill, d.Mode)
	}
	for _, d := range drawsWith(dev, r.scene.ObjectPass.Program.ID()) {
		assert.Equal(t, graphics.PolygonLine, d.Mode)
	}
	assert.True(t, dev.DepthTest)
	assert.False(t, dev.Blending)
	assert.Equal(t, graphics.PolygonLine, dev.PolygonMode)
}

func TestSceneWithoutLabel(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	cfg, err := options.DefaultScene()
	require.NoError(t, err)
	cfg.Label.Text = ""
	require.NoError(t, r.InitScene(cfg, t.TempDir()))

	assert.Nil(t, r.scene.TextPass)
	r.RenderFrame(0)
	assert.Empty(t, dev.Violations)
	assert.Len(t, dev.Draws, len(cfg.Objects)+1)
}

func TestUpdateKeys(t *testing.T) {
	r, dev, ctx := newTestRenderer(t)
	loadDefault(t, r)

	var keys graphics.KeySet
	r.Update(graphics.InputEvents{Pressed: keys.With(graphics.KeyP)}, 0)
	r.Update(graphics.InputEvents{Pressed: keys.With(graphics.KeyP)}, 0)
	assert.Equal(t, graphics.PolygonPoint, dev.PolygonMode)
	r.Update(graphics.InputEvents{Pressed: keys.With(graphics.KeyP)}, 0)
	assert.Equal(t, graphics.PolygonFill, dev.PolygonMode)

	assert.False(t, ctx.shouldClose)
	r.Update(graphics.InputEvents{Pressed: keys.With(graphics.KeyEscape)}, 0)
	assert.True(t, ctx.shouldClose)
}

func TestUpdateMovesCamera(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	loadDefault(t, r)

	r.Update(graphics.InputEvents{Held: graphics.KeySet(0).With(graphics.KeyW)}, 0.5)
	assert.InDelta(t, 2.0, r.Camera().Position.Z(), 1e-5)

	r.Update(graphics.InputEvents{Held: graphics.KeySet(0).With(graphics.KeyW).With(graphics.KeyS)}, 0.5)
	assert.InDelta(t, 2.0, r.Camera().Position.Z(), 1e-5)
}

func TestFirstPointerSampleIsSuppressed(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	loadDefault(t, r)
	cam := r.Camera()
	yaw, pitch := cam.Yaw, cam.Pitch

	r.Update(graphics.InputEvents{CursorMoved: true, CursorX: 500, CursorY: 400}, 0)
	assert.Equal(t, yaw, cam.Yaw)
	assert.Equal(t, pitch, cam.Pitch)

	r.Update(graphics.InputEvents{CursorMoved: true, CursorX: 510, CursorY: 400}, 0)
	assert.InDelta(t, yaw+10*cam.Sensitivity, cam.Yaw, 1e-4)
	assert.Equal(t, pitch, cam.Pitch)
}

func TestScrollZooms(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	loadDefault(t, r)
	before := r.Camera().FovY
	r.Update(graphics.InputEvents{Scrolled: true, ScrollY: 5}, 0)
	assert.Less(t, r.Camera().FovY, before)
}

func TestResize(t *testing.T) {
	r, dev, _ := newTestRenderer(t)

	r.Update(graphics.InputEvents{Resized: true, Width: 1024, Height: 512}, 0)
	assert.Equal(t, [4]int32{0, 0, 1024, 512}, dev.ViewportRect)
	assert.Equal(t, float32(2), r.aspect)

	r.Update(graphics.InputEvents{Resized: true, Width: 0, Height: 0}, 0)
	assert.Equal(t, [4]int32{0, 0, 1024, 512}, dev.ViewportRect)
	assert.Equal(t, float32(2), r.aspect)
}

func TestRunStopsWhenContextCloses(t *testing.T) {
	r, dev, ctx := newTestRenderer(t)
	loadDefault(t, r)
	ctx.closeAfter = 3

	r.Run()
	assert.Equal(t, 3, ctx.frames)
	assert.Equal(t, 3, dev.Clears)
	assert.Empty(t, dev.Violations)
}

func TestShutdownReleasesEverything(t *testing.T) {
	r, dev, ctx := newTestRenderer(t)
	loadDefault(t, r)
	r.RenderFrame(0)

	r.Shutdown()
	shaders, programs, textures := dev.Live()
	assert.Zero(t, shaders)
	assert.Zero(t, programs)
	assert.Zero(t, textures)
	for id, vao := range dev.VertexArrays {
		assert.True(t, vao.Deleted, "vertex array %d", id)
	}
	for id, buf := range dev.Buffers {
		assert.True(t, buf.Deleted, "buffer %d", id)
	}
	assert.True(t, ctx.shutdown)
}

func TestSetSceneDestroysPrevious(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	loadDefault(t, r)
	first := r.scene
	loadDefault(t, r)

	assert.NotSame(t, first, r.scene)
	deleted := 0
	for _, vao := range dev.VertexArrays {
		if vao.Deleted {
			deleted++
		}
	}
	// The cube and the label quad of the first scene.
	assert.Equal(t, 2, deleted)
	assert.Same(t, first.ObjectPass.Program, r.scene.ObjectPass.Program)
}

func TestLoadSceneMissingTexture(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	cfg, err := options.DefaultScene()
	require.NoError(t, err)
	cfg.Materials[0].Diffuse = "missing.png"

	_, err = r.LoadScene(cfg, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crate")
	for id, vao := range dev.VertexArrays {
		assert.True(t, vao.Deleted, "vertex array %d", id)
	}
}

func TestLoadSceneTextureFromDisk(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{uint8(60 * x), uint8(60 * y), 0, 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "checker.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	r, dev, _ := newTestRenderer(t)
	cfg, err := options.DefaultScene()
	require.NoError(t, err)
	cfg.Materials[0].Diffuse = "checker.png"
	require.NoError(t, r.InitScene(cfg, dir))

	tex := r.scene.Materials["crate"].Diffuse
	assert.True(t, tex.Mipmapped())
	w, h := tex.Size()
	assert.Equal(t, int32(4), w)
	assert.Equal(t, int32(4), h)
	r.RenderFrame(0)
	assert.Empty(t, dev.Violations)
}

func TestLoadSceneLinkFailure(t *testing.T) {
	r, dev, _ := newTestRenderer(t)
	dev.LinkFailure = "error: out of registers"
	cfg, err := options.DefaultScene()
	require.NoError(t, err)

	_, err = r.LoadScene(cfg, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of registers")
	shaders, programs, _ := dev.Live()
	assert.Zero(t, shaders)
	assert.Zero(t, programs)
}
