package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.Front)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up)
	assert.True(t, c.Right.ApproxEqual(mgl32.Vec3{1, 0, 0}))
	assert.Equal(t, float32(45), c.FovY)
	assert.Equal(t, float32(2), c.SpeedFactor)

	// Recomputing from the default yaw and pitch lands on the same Front.
	c.Look(0, 0)
	assert.True(t, c.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-6), "%v", c.Front)
}

func TestPitchClampIsTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := New(mgl32.Vec3{})
	for i := 0; i < 5000; i++ {
		c.Look(0, float32(rng.NormFloat64()*2000))
		require.GreaterOrEqual(t, c.Pitch, float32(-MaxPitch))
		require.LessOrEqual(t, c.Pitch, float32(MaxPitch))
	}
}

func TestPitchFollowsPointer(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.Look(0, -100)
	assert.InDelta(t, 3, c.Pitch, 1e-5, "pointer up raises pitch")
	assert.Greater(t, c.Front.Y(), float32(0))

	c.Look(0, 1e6)
	assert.Equal(t, float32(-MaxPitch), c.Pitch)
}

func TestYawWrapIsTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	c := New(mgl32.Vec3{})
	for i := 0; i < 5000; i++ {
		c.Look(float32(rng.NormFloat64()*50000), 0)
		require.GreaterOrEqual(t, c.Yaw, float32(0))
		require.Less(t, c.Yaw, float32(360))
	}
}

func TestYawWrapsPast360(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.Yaw = 350
	c.Look(20/c.Sensitivity, 0)
	assert.InDelta(t, 10, c.Yaw, 1e-3)

	c.Yaw = 5
	c.Look(-10/c.Sensitivity, 0)
	assert.InDelta(t, 355, c.Yaw, 1e-3)
}

func TestWrapDegrees(t *testing.T) {
	assert.Equal(t, float32(0), wrapDegrees(360))
	assert.Equal(t, float32(0), wrapDegrees(-1e-9))
	assert.Equal(t, float32(90), wrapDegrees(-270))
	assert.Equal(t, float32(1), wrapDegrees(721))
}

func TestFrontStaysUnitLength(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := New(mgl32.Vec3{})
	for i := 0; i < 10000; i++ {
		c.Look(float32(rng.Float64()*40-20), float32(rng.Float64()*40-20))
		require.InDelta(t, 1, c.Front.Len(), 1e-5)
		require.InDelta(t, 1, c.Right.Len(), 1e-5)
	}
}

func TestMoveDisplacement(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})
	c.Move(Forward, 0.016)
	assert.InDelta(t, 0.032, c.Speed, 1e-6)
	assert.True(t, c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 3 - 0.032}, 1e-6), "%v", c.Position)

	start := c.Position
	c.Move(Right, 0.5)
	assert.InDelta(t, 1, c.Position.Sub(start).Len(), 1e-5)
	assert.InDelta(t, 1, c.Position.X()-start.X(), 1e-5)

	start = c.Position
	c.Move(Up|Down, 0.5)
	assert.True(t, c.Position.ApproxEqual(start), "opposite directions cancel")

	c.Move(Backward|Left|Down, 0)
	assert.Zero(t, c.Speed)
}

func TestZoomClamp(t *testing.T) {
	c := New(mgl32.Vec3{})
	c.Zoom(1e6)
	assert.Equal(t, c.FovYMin, c.FovY)
	c.Zoom(-1e6)
	assert.Equal(t, c.FovYMax, c.FovY)

	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 1000; i++ {
		c.Zoom(float32(rng.NormFloat64() * 30))
		require.GreaterOrEqual(t, c.FovY, c.FovYMin)
		require.LessOrEqual(t, c.FovY, c.FovYMax)
	}
}

func TestMatrices(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3})

	view := c.ViewMatrix()
	translation := view.Col(3)
	assert.InDelta(t, 0, translation.X(), 1e-5)
	assert.InDelta(t, 0, translation.Y(), 1e-5)
	assert.InDelta(t, -3, translation.Z(), 1e-5)
	assert.InDelta(t, 1, translation.W(), 1e-5)

	proj := c.ProjectionMatrix(4.0/3.0, 0.1, 100)
	f := 1 / math.Tan(45*math.Pi/180/2)
	assert.InDelta(t, f/(4.0/3.0), proj.At(0, 0), 1e-5)
	assert.InDelta(t, f, proj.At(1, 1), 1e-5)
	assert.InDelta(t, (100+0.1)/(0.1-100), proj.At(2, 2), 1e-5)
	assert.InDelta(t, -1, proj.At(3, 2), 1e-6)
}

func TestPointerTracker(t *testing.T) {
	var p PointerTracker
	_, _, ok := p.Sample(500, 400)
	assert.False(t, ok, "first sample has no delta")

	dx, dy, ok := p.Sample(510, 390)
	assert.True(t, ok)
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(-10), dy)

	p.Reset()
	_, _, ok = p.Sample(0, 0)
	assert.False(t, ok)
}
