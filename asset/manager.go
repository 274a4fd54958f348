package asset

import (
	"log"

	"github.com/richinsley/revenant/shader"
	"github.com/richinsley/revenant/texture"
)

// Manager caches textures and programs for the lifetime of a scene.
type Manager struct {
	textures *Cache[*texture.Texture]
	programs *Cache[*shader.Program]
}

func NewManager() *Manager {
	return &Manager{
		textures: NewCache[*texture.Texture]("texture"),
		programs: NewCache[*shader.Program]("program"),
	}
}

// Texture returns the texture loaded under key, loading it on first use.
func (m *Manager) Texture(key string, load func() (*texture.Texture, error)) (*texture.Texture, error) {
	return m.textures.GetOrLoad(key, load)
}

// Program returns the program loaded under key, loading it on first use.
func (m *Manager) Program(key string, load func() (*shader.Program, error)) (*shader.Program, error) {
	return m.programs.GetOrLoad(key, load)
}

// Len returns the number of cached textures and programs.
func (m *Manager) Len() (textures, programs int) {
	return m.textures.Len(), m.programs.Len()
}

// Destroy releases every cached resource.
func (m *Manager) Destroy() {
	textures, programs := m.Len()
	m.programs.Destroy()
	m.textures.Destroy()
	log.Printf("Released %d textures and %d programs", textures, programs)
}
