package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/revenant/glyph"
	"github.com/richinsley/revenant/graphics"
	"github.com/richinsley/revenant/options"
	"github.com/richinsley/revenant/shader"
)

const lampScale = 0.1

type sceneObject struct {
	material *Material
	position mgl32.Vec3
	axis     mgl32.Vec3
	spin     float32
	phase    float32
	scale    float32
}

// model places the object at time t seconds.
func (o *sceneObject) model(t float32) mgl32.Mat4 {
	angle := mgl32.DegToRad(o.spin*t + o.phase)
	return mgl32.Translate3D(o.position[0], o.position[1], o.position[2]).
		Mul4(mgl32.HomogRotate3D(angle, o.axis)).
		Mul4(mgl32.Scale3D(o.scale, o.scale, o.scale))
}

// Scene encapsulates the passes, geometry, materials and light of one scene
// description. Programs and textures belong to the renderer's asset manager
// and outlive the scene.
type Scene struct {
	ObjectPass *RenderPass
	LampPass   *RenderPass
	TextPass   *RenderPass

	Cube       *Mesh
	Materials  map[string]*Material
	Light      Light
	Label      *Label
	ClearColor mgl32.Vec4

	Camera  options.CameraConfig
	objects []sceneObject
	raster  *glyph.Rasterizer
}

// Destroy releases the GPU objects the scene owns.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	log.Printf("Destroying scene with %d objects", len(s.objects))
	s.Label.Destroy()
	s.Cube.Destroy()
	if s.raster != nil {
		s.raster.Close()
	}
}

// LoadScene creates the GPU resources for cfg. Texture paths are resolved
// against assetDir.
func (r *Renderer) LoadScene(cfg *options.Scene, assetDir string) (*Scene, error) {
	scene := &Scene{
		Materials:  make(map[string]*Material),
		ClearColor: mgl32.Vec4{0, 0, 0, 1},
		Camera:     cfg.Camera,
	}
	copy(scene.ClearColor[:], cfg.ClearColor)

	var err error
	if scene.ObjectPass, err = r.createRenderPass("object", shader.ObjectVertex, shader.ObjectFragment); err != nil {
		scene.Destroy()
		return nil, fmt.Errorf("failed to create object pass: %w", err)
	}
	if scene.LampPass, err = r.createRenderPass("lamp", shader.LampVertex, shader.LampFragment); err != nil {
		scene.Destroy()
		return nil, fmt.Errorf("failed to create lamp pass: %w", err)
	}

	if scene.Cube, err = NewMesh(r.device, cubeVertices, cubeLayout, graphics.StaticDraw); err != nil {
		scene.Destroy()
		return nil, fmt.Errorf("failed to create cube mesh: %w", err)
	}

	if scene.Light, err = newLight(cfg.Light); err != nil {
		scene.Destroy()
		return nil, err
	}

	for _, mc := range cfg.Materials {
		m, err := loadMaterial(r.device, r.assets, assetDir, mc)
		if err != nil {
			scene.Destroy()
			return nil, err
		}
		scene.Materials[mc.Name] = m
	}

	for i, oc := range cfg.Objects {
		m, ok := scene.Materials[oc.Material]
		if !ok {
			scene.Destroy()
			return nil, fmt.Errorf("object %d: unknown material %q", i, oc.Material)
		}
		scene.objects = append(scene.objects, sceneObject{
			material: m,
			position: vec3(oc.Position),
			axis:     vec3(oc.Axis).Normalize(),
			spin:     oc.Spin,
			phase:    oc.Phase,
			scale:    oc.Scale,
		})
	}

	if cfg.Label.Text != "" {
		if scene.TextPass, err = r.createRenderPass("text", shader.TextVertex, shader.TextFragment); err != nil {
			scene.Destroy()
			return nil, fmt.Errorf("failed to create text pass: %w", err)
		}
		if scene.raster, err = glyph.NewRasterizer(nil, float64(cfg.Label.Size)); err != nil {
			scene.Destroy()
			return nil, err
		}
		if scene.Label, err = newLabel(r.device, r.assets, scene.raster, cfg.Label); err != nil {
			scene.Destroy()
			return nil, fmt.Errorf("failed to create label: %w", err)
		}
	}

	textures, programs := r.assets.Len()
	log.Printf("Scene loaded: %d objects, %d materials (%d textures, %d programs cached)",
		len(scene.objects), len(scene.Materials), textures, programs)
	return scene, nil
}

// Objects returns the number of objects drawn per frame.
func (s *Scene) Objects() int { return len(s.objects) }
