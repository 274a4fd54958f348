package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeySet(t *testing.T) {
	var s KeySet
	s = s.With(KeyW).With(KeyEscape)
	assert.True(t, s.Has(KeyW))
	assert.True(t, s.Has(KeyEscape))
	assert.False(t, s.Has(KeyA))

	s = s.Without(KeyW)
	assert.False(t, s.Has(KeyW))
	assert.True(t, s.Has(KeyEscape))
}

func TestPolygonModeCycle(t *testing.T) {
	m := PolygonFill
	seen := []PolygonMode{m}
	for i := 0; i < 3; i++ {
		m = m.Next()
		seen = append(seen, m)
	}
	assert.Equal(t, []PolygonMode{PolygonFill, PolygonLine, PolygonPoint, PolygonFill}, seen)
}

func TestPixelFormatChannels(t *testing.T) {
	assert.Equal(t, 1, PixelRed.Channels())
	assert.Equal(t, 3, PixelRGB.Channels())
	assert.Equal(t, 4, PixelRGBA.Channels())
}

func TestFilterUsesMipmaps(t *testing.T) {
	assert.False(t, FilterNearest.UsesMipmaps())
	assert.False(t, FilterLinear.UsesMipmaps())
	assert.True(t, FilterNearestMipmapLinear.UsesMipmaps())
	assert.True(t, FilterLinearMipmapLinear.UsesMipmaps())
}
