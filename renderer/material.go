package renderer

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/revenant/asset"
	"github.com/richinsley/revenant/graphics"
	"github.com/richinsley/revenant/options"
	"github.com/richinsley/revenant/shader"
	"github.com/richinsley/revenant/texture"
)

const (
	diffuseUnit  = 0
	specularUnit = 1
)

// Material is a diffuse and specular texture pair with a shininess
// exponent. The textures are owned by the asset manager.
type Material struct {
	Name      string
	Diffuse   *texture.Texture
	Specular  *texture.Texture
	Shininess float32
}

func loadMaterial(dev graphics.Device, assets *asset.Manager, dir string, cfg options.MaterialConfig) (*Material, error) {
	diffuse, err := materialTexture(dev, assets, dir, cfg.Diffuse, cfg.DiffuseColor, texture.Diffuse)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", cfg.Name, err)
	}
	specular, err := materialTexture(dev, assets, dir, cfg.Specular, cfg.SpecularColor, texture.Specular)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", cfg.Name, err)
	}
	return &Material{
		Name:      cfg.Name,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: cfg.Shininess,
	}, nil
}

// materialTexture loads path relative to dir, or a 1x1 texture of color
// when path is empty.
func materialTexture(dev graphics.Device, assets *asset.Manager, dir, path string, color []float32, kind texture.Kind) (*texture.Texture, error) {
	if path == "" {
		return solidTexture(dev, assets, vec3(color), kind)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return assets.Texture(path, func() (*texture.Texture, error) {
		return texture.FromImageFile(dev, path, texture.DefaultConfig(kind))
	})
}

func solidTexture(dev graphics.Device, assets *asset.Manager, color mgl32.Vec3, kind texture.Kind) (*texture.Texture, error) {
	pixel := []byte{channel(color[0]), channel(color[1]), channel(color[2])}
	key := fmt.Sprintf("solid:%02x%02x%02x", pixel[0], pixel[1], pixel[2])
	return assets.Texture(key, func() (*texture.Texture, error) {
		return texture.Create(dev, pixel, 1, 1, texture.RGB, texture.Config{
			Kind:      kind,
			WrapS:     graphics.WrapRepeat,
			WrapT:     graphics.WrapRepeat,
			MinFilter: graphics.FilterNearest,
			MagFilter: graphics.FilterNearest,
		})
	})
}

func channel(v float32) byte {
	return byte(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}

// Apply binds the textures to their units and points the sampler uniforms
// at them. p must be in use.
func (m *Material) Apply(p *shader.Program) {
	m.Diffuse.Bind(diffuseUnit)
	m.Specular.Bind(specularUnit)
	p.SetInt("material.diffuse_map", diffuseUnit)
	p.SetInt("material.specular_map", specularUnit)
	p.SetFloat("material.specular_strength", m.Shininess)
}
