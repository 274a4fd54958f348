package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/revenant/options"
	"github.com/richinsley/revenant/shader"
)

type LightKind uint8

const (
	DirectionalLight LightKind = iota
	PointLight
	SpotLight
)

// noCone is a cut-off cosine below any dot product, so the cone never
// attenuates.
const noCone = -2

// Light is the single light of a scene. CutOff and OuterCutOff are cosines
// of the cone half-angles.
type Light struct {
	Kind        LightKind
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32

	Ambient, Diffuse, Specular  mgl32.Vec3
	Constant, Linear, Quadratic float32

	LampColor mgl32.Vec3
}

func newLight(cfg options.LightConfig) (Light, error) {
	l := Light{
		Position:    vec3(cfg.Position),
		Direction:   vec3(cfg.Direction),
		CutOff:      noCone,
		OuterCutOff: noCone,
		Ambient:     vec3(cfg.Ambient),
		Diffuse:     vec3(cfg.Diffuse),
		Specular:    vec3(cfg.Specular),
		Constant:    cfg.Constant,
		Linear:      cfg.Linear,
		Quadratic:   cfg.Quadratic,
		LampColor:   vec3(cfg.LampColor),
	}
	switch cfg.Type {
	case options.LightDirectional:
		l.Kind = DirectionalLight
	case options.LightPoint:
		l.Kind = PointLight
		l.Direction = mgl32.Vec3{0, -1, 0}
	case options.LightSpot:
		l.Kind = SpotLight
		l.CutOff = math32.Cos(mgl32.DegToRad(cfg.CutOff))
		l.OuterCutOff = math32.Cos(mgl32.DegToRad(cfg.OuterCutOff))
	default:
		return Light{}, fmt.Errorf("unknown light type %q", cfg.Type)
	}
	if l.Direction.Len() == 0 {
		return Light{}, fmt.Errorf("%s light has a zero direction", cfg.Type)
	}
	return l, nil
}

// HasLamp reports whether the light has a position to draw a lamp at.
func (l *Light) HasLamp() bool { return l.Kind != DirectionalLight }

// Upload sets the light uniforms under prefix on p, which must be in use.
func (l *Light) Upload(p *shader.Program, prefix string) {
	directional := int32(0)
	if l.Kind == DirectionalLight {
		directional = 1
	}
	p.SetInt(prefix+".directional", directional)
	p.SetVec3(prefix+".pos", l.Position)
	p.SetVec3(prefix+".dir", l.Direction)
	p.SetFloat(prefix+".cut_off", l.CutOff)
	p.SetFloat(prefix+".outer_cut_off", l.OuterCutOff)
	p.SetVec3(prefix+".light.ambient", l.Ambient)
	p.SetVec3(prefix+".light.diffuse", l.Diffuse)
	p.SetVec3(prefix+".light.specular", l.Specular)
	p.SetFloat(prefix+".light.constant", l.Constant)
	p.SetFloat(prefix+".light.linear", l.Linear)
	p.SetFloat(prefix+".light.quadratic", l.Quadratic)
}

func vec3(v []float32) mgl32.Vec3 {
	var out mgl32.Vec3
	copy(out[:], v)
	return out
}
