package camera

// PointerTracker turns absolute pointer positions into deltas.
type PointerTracker struct {
	lastX, lastY float64
	primed       bool
}

// Sample records the pointer at (x, y) and returns the motion since the
// previous sample. The first sample after construction or Reset has no
// predecessor and returns ok == false.
func (p *PointerTracker) Sample(x, y float64) (dx, dy float32, ok bool) {
	if p.primed {
		dx, dy, ok = float32(x-p.lastX), float32(y-p.lastY), true
	}
	p.lastX, p.lastY = x, y
	p.primed = true
	return dx, dy, ok
}

// Reset forgets the last position, e.g. after the cursor was recaptured.
func (p *PointerTracker) Reset() {
	p.primed = false
}
