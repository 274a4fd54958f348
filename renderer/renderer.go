package renderer

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/revenant/asset"
	"github.com/richinsley/revenant/camera"
	"github.com/richinsley/revenant/graphics"
	"github.com/richinsley/revenant/options"
)

const (
	nearPlane = 0.1
	farPlane  = 100
)

var moveKeys = []struct {
	key graphics.Key
	dir camera.Direction
}{
	{graphics.KeyW, camera.Forward},
	{graphics.KeyS, camera.Backward},
	{graphics.KeyA, camera.Left},
	{graphics.KeyD, camera.Right},
	{graphics.KeySpace, camera.Up},
	{graphics.KeyLeftControl, camera.Down},
}

type Renderer struct {
	context graphics.Context
	device  graphics.Device
	assets  *asset.Manager

	scene   *Scene
	camera  *camera.Camera
	pointer camera.PointerTracker

	polygonMode graphics.PolygonMode
	width       int
	height      int
	aspect      float32
	translate   bool
}

// NewRenderer prepares dev for drawing into ctx's framebuffer. The context
// must be current on the calling thread.
func NewRenderer(ctx graphics.Context, dev graphics.Device, opts *options.ViewerOptions) *Renderer {
	r := &Renderer{
		context:   ctx,
		device:    dev,
		assets:    asset.NewManager(),
		camera:    camera.New(mgl32.Vec3{0, 0, 3}),
		aspect:    1,
		translate: opts.Translate != nil && *opts.Translate,
	}

	dev.SetDepthTest(true)
	dev.SetBlending(false)
	dev.SetPolygonMode(graphics.PolygonFill)
	r.resize(ctx.GetFramebufferSize())
	return r
}

// Assets returns the manager that owns every texture and program.
func (r *Renderer) Assets() *asset.Manager { return r.assets }

func (r *Renderer) Camera() *camera.Camera { return r.camera }

func (r *Renderer) PolygonMode() graphics.PolygonMode { return r.polygonMode }

// SetScene makes s the scene drawn by RenderFrame, destroying the previous
// one, and places the camera as s describes.
func (r *Renderer) SetScene(s *Scene) {
	if r.scene != nil && r.scene != s {
		r.scene.Destroy()
	}
	r.scene = s

	cfg := s.Camera
	r.camera = camera.New(vec3(cfg.Position))
	if cfg.FovY != 0 {
		r.camera.FovY = mgl32.Clamp(cfg.FovY, r.camera.FovYMin, r.camera.FovYMax)
	}
	if cfg.SpeedFactor != 0 {
		r.camera.SpeedFactor = cfg.SpeedFactor
	}
	if cfg.Sensitivity != 0 {
		r.camera.Sensitivity = cfg.Sensitivity
	}
	r.pointer.Reset()

	c := s.ClearColor
	r.device.ClearColor(c[0], c[1], c[2], c[3])
}

// InitScene loads cfg and makes it current.
func (r *Renderer) InitScene(cfg *options.Scene, assetDir string) error {
	s, err := r.LoadScene(cfg, assetDir)
	if err != nil {
		return err
	}
	r.SetScene(s)
	return nil
}

func (r *Renderer) resize(width, height int) {
	// A minimized window reports 0x0; keep the last usable size.
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.aspect = float32(width) / float32(height)
	r.device.Viewport(0, 0, int32(width), int32(height))
}

// Update applies one frame of input. dt is the frame time in seconds.
func (r *Renderer) Update(ev graphics.InputEvents, dt float32) {
	if ev.Pressed.Has(graphics.KeyEscape) {
		r.context.SetShouldClose(true)
	}
	if ev.Pressed.Has(graphics.KeyP) {
		r.polygonMode = r.polygonMode.Next()
		r.device.SetPolygonMode(r.polygonMode)
		log.Printf("Polygon mode: %s", r.polygonMode)
	}

	var dirs camera.Direction
	for _, m := range moveKeys {
		if ev.Held.Has(m.key) {
			dirs |= m.dir
		}
	}
	if dirs != 0 {
		r.camera.Move(dirs, dt)
	}

	if ev.CursorMoved {
		if dx, dy, ok := r.pointer.Sample(ev.CursorX, ev.CursorY); ok {
			r.camera.Look(dx, dy)
		}
	}
	if ev.Scrolled {
		r.camera.Zoom(float32(ev.ScrollY))
	}
	if ev.Resized {
		r.resize(ev.Width, ev.Height)
	}
}

// RenderFrame draws the current scene at t seconds since start.
func (r *Renderer) RenderFrame(t float32) {
	dev := r.device
	dev.Clear()
	s := r.scene
	if s == nil {
		return
	}

	view := r.camera.ViewMatrix()
	projection := r.camera.ProjectionMatrix(r.aspect, nearPlane, farPlane)

	obj := s.ObjectPass.Program
	obj.Use()
	obj.SetMat4("view", view)
	obj.SetMat4("projection", projection)
	obj.SetVec3("camera_pos", r.camera.Position)
	s.Light.Upload(obj, "light")

	var current *Material
	for i := range s.objects {
		o := &s.objects[i]
		if o.material != current {
			o.material.Apply(obj)
			current = o.material
		}
		obj.SetMat4("model", o.model(t))
		s.Cube.Draw()
	}

	if s.Light.HasLamp() {
		lamp := s.LampPass.Program
		lamp.Use()
		p := s.Light.Position
		lamp.SetMat4("view", view)
		lamp.SetMat4("projection", projection)
		lamp.SetMat4("model", mgl32.Translate3D(p[0], p[1], p[2]).Mul4(mgl32.Scale3D(lampScale, lampScale, lampScale)))
		lamp.SetVec3("lamp_color", s.Light.LampColor)
		s.Cube.Draw()
	}

	if s.Label != nil {
		dev.SetDepthTest(false)
		dev.SetBlending(true)
		if r.polygonMode != graphics.PolygonFill {
			dev.SetPolygonMode(graphics.PolygonFill)
		}

		text := s.TextPass.Program
		text.Use()
		s.Label.Draw(text, r.width, r.height)

		if r.polygonMode != graphics.PolygonFill {
			dev.SetPolygonMode(r.polygonMode)
		}
		dev.SetBlending(false)
		dev.SetDepthTest(true)
	}
}

// Run drives the frame loop until the window is asked to close.
func (r *Renderer) Run() {
	startTime := r.context.Time()
	last := startTime
	var frameCount int

	for !r.context.ShouldClose() {
		now := r.context.Time()
		dt := float32(now - last)
		last = now

		r.Update(r.context.Input(), dt)
		r.RenderFrame(float32(now - startTime))
		r.context.EndFrame()
		frameCount++
	}

	if elapsed := last - startTime; elapsed > 0 {
		log.Printf("Rendered %d frames in %.1fs (%.1f fps)", frameCount, elapsed, float64(frameCount)/elapsed)
	}
}

// Shutdown releases the scene and every cached asset, then the window.
func (r *Renderer) Shutdown() {
	r.scene.Destroy()
	r.scene = nil
	r.assets.Destroy()
	r.context.Shutdown()
}
