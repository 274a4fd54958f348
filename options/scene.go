package options

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default_scene.toml
var defaultScene []byte

// Scene describes what the viewer draws. Vectors are plain slices so the
// same struct decodes from TOML and YAML; Validate checks their lengths.
type Scene struct {
	ClearColor []float32        `toml:"clear_color" yaml:"clear_color"`
	Camera     CameraConfig     `toml:"camera" yaml:"camera"`
	Light      LightConfig      `toml:"light" yaml:"light"`
	Materials  []MaterialConfig `toml:"materials" yaml:"materials"`
	Objects    []ObjectConfig   `toml:"objects" yaml:"objects"`
	Label      LabelConfig      `toml:"label" yaml:"label"`
}

type CameraConfig struct {
	Position []float32 `toml:"position" yaml:"position"`
	// FovY is in degrees; zero keeps the camera default.
	FovY        float32 `toml:"fov_y" yaml:"fov_y"`
	SpeedFactor float32 `toml:"speed_factor" yaml:"speed_factor"`
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`
}

const (
	LightDirectional = "directional"
	LightPoint       = "point"
	LightSpot        = "spot"
)

type LightConfig struct {
	Type      string    `toml:"type" yaml:"type"`
	Position  []float32 `toml:"position" yaml:"position"`
	Direction []float32 `toml:"direction" yaml:"direction"`
	// CutOff and OuterCutOff are spot cone half-angles in degrees.
	CutOff      float32   `toml:"cut_off" yaml:"cut_off"`
	OuterCutOff float32   `toml:"outer_cut_off" yaml:"outer_cut_off"`
	Ambient     []float32 `toml:"ambient" yaml:"ambient"`
	Diffuse     []float32 `toml:"diffuse" yaml:"diffuse"`
	Specular    []float32 `toml:"specular" yaml:"specular"`
	Constant    float32   `toml:"constant" yaml:"constant"`
	Linear      float32   `toml:"linear" yaml:"linear"`
	Quadratic   float32   `toml:"quadratic" yaml:"quadratic"`
	LampColor   []float32 `toml:"lamp_color" yaml:"lamp_color"`
}

// MaterialConfig names a texture pair. A map given as a path is loaded
// from disk; otherwise the matching color becomes a 1x1 texture.
type MaterialConfig struct {
	Name          string    `toml:"name" yaml:"name"`
	Diffuse       string    `toml:"diffuse" yaml:"diffuse"`
	Specular      string    `toml:"specular" yaml:"specular"`
	DiffuseColor  []float32 `toml:"diffuse_color" yaml:"diffuse_color"`
	SpecularColor []float32 `toml:"specular_color" yaml:"specular_color"`
	Shininess     float32   `toml:"shininess" yaml:"shininess"`
}

type ObjectConfig struct {
	Material string    `toml:"material" yaml:"material"`
	Position []float32 `toml:"position" yaml:"position"`
	Axis     []float32 `toml:"axis" yaml:"axis"`
	// Spin is in degrees per second, Phase in degrees.
	Spin  float32 `toml:"spin" yaml:"spin"`
	Phase float32 `toml:"phase" yaml:"phase"`
	Scale float32 `toml:"scale" yaml:"scale"`
}

type LabelConfig struct {
	Text string `toml:"text" yaml:"text"`
	// Position is the baseline origin in pixels from the bottom-left corner.
	Position []float32 `toml:"position" yaml:"position"`
	Size     float32   `toml:"size" yaml:"size"`
	Color    []float32 `toml:"color" yaml:"color"`
}

// DefaultScene returns the built-in scene.
func DefaultScene() (*Scene, error) {
	return ParseScene(defaultScene, "toml")
}

// LoadScene reads a scene file, choosing the decoder by extension.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	scene, err := ParseScene(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scene, nil
}

// ParseScene decodes data as "toml", "yaml" or "yml", fills defaults and
// validates the result.
func ParseScene(data []byte, format string) (*Scene, error) {
	var scene Scene
	switch strings.ToLower(format) {
	case "toml":
		if err := toml.Unmarshal(data, &scene); err != nil {
			return nil, fmt.Errorf("failed to parse TOML scene: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &scene); err != nil {
			return nil, fmt.Errorf("failed to parse YAML scene: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scene format %q", format)
	}
	scene.setDefaults()
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

func (s *Scene) setDefaults() {
	if s.ClearColor == nil {
		s.ClearColor = []float32{0.3, 0.3, 0.5, 1}
	}
	if s.Camera.Position == nil {
		s.Camera.Position = []float32{0, 0, 3}
	}
	if s.Light.Type == "" {
		s.Light.Type = LightSpot
	}
	if s.Light.Ambient == nil {
		s.Light.Ambient = []float32{0.2, 0.2, 0.2}
	}
	if s.Light.Diffuse == nil {
		s.Light.Diffuse = []float32{0.5, 0.5, 0.5}
	}
	if s.Light.Specular == nil {
		s.Light.Specular = []float32{1, 1, 1}
	}
	if s.Light.Constant == 0 {
		s.Light.Constant = 1
	}
	if s.Light.LampColor == nil {
		s.Light.LampColor = []float32{1, 1, 1}
	}
	for i := range s.Materials {
		m := &s.Materials[i]
		if m.DiffuseColor == nil {
			m.DiffuseColor = []float32{1, 1, 1}
		}
		if m.SpecularColor == nil {
			m.SpecularColor = []float32{1, 1, 1}
		}
		if m.Shininess == 0 {
			m.Shininess = 32
		}
	}
	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Axis == nil {
			o.Axis = []float32{1, 0.3, 0.5}
		}
		if o.Scale == 0 {
			o.Scale = 1
		}
	}
	if s.Label.Position == nil {
		s.Label.Position = []float32{16, 16}
	}
	if s.Label.Size == 0 {
		s.Label.Size = 24
	}
	if s.Label.Color == nil {
		s.Label.Color = []float32{1, 1, 1}
	}
}

// Validate checks vector lengths, the light type and material references.
func (s *Scene) Validate() error {
	if n := len(s.ClearColor); n != 3 && n != 4 {
		return fmt.Errorf("clear_color: want 3 or 4 components, got %d", n)
	}
	if err := checkVec("camera.position", s.Camera.Position, 3); err != nil {
		return err
	}

	l := &s.Light
	switch l.Type {
	case LightDirectional:
		if err := checkVec("light.direction", l.Direction, 3); err != nil {
			return err
		}
	case LightPoint:
		if err := checkVec("light.position", l.Position, 3); err != nil {
			return err
		}
	case LightSpot:
		if err := checkVec("light.position", l.Position, 3); err != nil {
			return err
		}
		if err := checkVec("light.direction", l.Direction, 3); err != nil {
			return err
		}
		if l.OuterCutOff < l.CutOff {
			return fmt.Errorf("light: outer_cut_off %v is narrower than cut_off %v", l.OuterCutOff, l.CutOff)
		}
	default:
		return fmt.Errorf("light.type: unknown type %q", l.Type)
	}
	for name, v := range map[string][]float32{
		"light.ambient":    l.Ambient,
		"light.diffuse":    l.Diffuse,
		"light.specular":   l.Specular,
		"light.lamp_color": l.LampColor,
	} {
		if err := checkVec(name, v, 3); err != nil {
			return err
		}
	}

	materials := make(map[string]bool, len(s.Materials))
	for i, m := range s.Materials {
		if m.Name == "" {
			return fmt.Errorf("materials[%d]: missing name", i)
		}
		if materials[m.Name] {
			return fmt.Errorf("materials[%d]: duplicate name %q", i, m.Name)
		}
		materials[m.Name] = true
		if err := checkVec(fmt.Sprintf("materials[%d].diffuse_color", i), m.DiffuseColor, 3); err != nil {
			return err
		}
		if err := checkVec(fmt.Sprintf("materials[%d].specular_color", i), m.SpecularColor, 3); err != nil {
			return err
		}
	}

	for i, o := range s.Objects {
		if !materials[o.Material] {
			return fmt.Errorf("objects[%d]: unknown material %q", i, o.Material)
		}
		if err := checkVec(fmt.Sprintf("objects[%d].position", i), o.Position, 3); err != nil {
			return err
		}
		if err := checkVec(fmt.Sprintf("objects[%d].axis", i), o.Axis, 3); err != nil {
			return err
		}
		if o.Axis[0] == 0 && o.Axis[1] == 0 && o.Axis[2] == 0 {
			return fmt.Errorf("objects[%d].axis: must not be zero", i)
		}
	}

	if s.Label.Text != "" {
		if err := checkVec("label.position", s.Label.Position, 2); err != nil {
			return err
		}
		if err := checkVec("label.color", s.Label.Color, 3); err != nil {
			return err
		}
		if s.Label.Size < 0 {
			return fmt.Errorf("label.size: must be positive, got %v", s.Label.Size)
		}
	}
	return nil
}

func checkVec(name string, v []float32, n int) error {
	if len(v) != n {
		return fmt.Errorf("%s: want %d components, got %d", name, n, len(v))
	}
	return nil
}
