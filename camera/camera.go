// Package camera implements a first-person fly camera driven by held keys,
// pointer motion and scrolling.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxPitch keeps the camera off the poles, where Front would be parallel
	// to Up and the view matrix degenerate.
	MaxPitch = 89.9

	DefaultSpeedFactor = 2
	DefaultFovY        = 45
	DefaultFovYMin     = 1
	DefaultFovYMax     = 90
	DefaultSensitivity = 0.03
	// DefaultYaw faces -Z.
	DefaultYaw = 270
)

// Direction is a set of movement directions active for one frame.
type Direction uint8

const (
	Forward Direction = 1 << iota
	Backward
	Up
	Down
	Left
	Right
)

// Camera is a position plus a yaw/pitch orientation, both in degrees. Front
// is recomputed from Yaw and Pitch on every look update rather than rotated
// incrementally, so it cannot drift away from unit length.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3

	Yaw   float32
	Pitch float32

	FovY    float32
	FovYMin float32
	FovYMax float32

	SpeedFactor float32
	// Speed is the distance covered by the last Move.
	Speed       float32
	Sensitivity float32
}

// New returns a camera at position looking down -Z with +Y up.
func New(position mgl32.Vec3) *Camera {
	c := &Camera{
		Position:    position,
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         DefaultYaw,
		FovY:        DefaultFovY,
		FovYMin:     DefaultFovYMin,
		FovYMax:     DefaultFovYMax,
		SpeedFactor: DefaultSpeedFactor,
		Sensitivity: DefaultSensitivity,
	}
	c.Right = c.Front.Cross(c.Up).Normalize()
	return c
}

// Move steps the camera once along every direction in dirs, scaled by the
// frame time dt in seconds.
func (c *Camera) Move(dirs Direction, dt float32) {
	c.Speed = c.SpeedFactor * dt
	step := func(v mgl32.Vec3) { c.Position = c.Position.Add(v.Mul(c.Speed)) }

	if dirs&Forward != 0 {
		step(c.Front)
	}
	if dirs&Backward != 0 {
		step(c.Front.Mul(-1))
	}
	if dirs&Up != 0 {
		step(c.Up)
	}
	if dirs&Down != 0 {
		step(c.Up.Mul(-1))
	}
	if dirs&Right != 0 {
		step(c.Right)
	}
	if dirs&Left != 0 {
		step(c.Right.Mul(-1))
	}
}

// Look turns the camera by a pointer delta in screen pixels. Screen y grows
// downward, so moving the pointer up raises the pitch.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw = wrapDegrees(c.Yaw + dx*c.Sensitivity)
	c.Pitch = mgl32.Clamp(c.Pitch-dy*c.Sensitivity, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// Zoom narrows the field of view by the scroll amount.
func (c *Camera) Zoom(scrollY float32) {
	c.FovY = mgl32.Clamp(c.FovY-scrollY, c.FovYMin, c.FovYMax)
}

func (c *Camera) updateVectors() {
	yaw, pitch := mgl32.DegToRad(c.Yaw), mgl32.DegToRad(c.Pitch)
	sinYaw, cosYaw := math32.Sincos(yaw)
	sinPitch, cosPitch := math32.Sincos(pitch)
	c.Front = mgl32.Vec3{cosYaw * cosPitch, sinPitch, sinYaw * cosPitch}.Normalize()
	c.Right = c.Front.Cross(c.Up).Normalize()
}

// ViewMatrix looks from Position along Front.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix is a perspective projection with vertical field of view
// FovY.
func (c *Camera) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, near, far)
}

// wrapDegrees maps a into [0, 360).
func wrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// A tiny negative a rounds up to exactly 360 above.
	if a >= 360 {
		a -= 360
	}
	return a
}
