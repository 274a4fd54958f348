package graphics

// Context defines the interface for the window that owns the OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// IsGLES reports whether the context speaks OpenGL ES rather than
	// desktop GL; it picks the shader dialect.
	IsGLES() bool
	// Input returns the input gathered since the previous call and resets
	// the per-frame fields (pointer, scroll, resize, presses).
	Input() InputEvents
}

// Key identifies the keys the frame loop reacts to.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyLeftControl
	KeyP
	KeyEscape
)

// KeySet is a bit set of Keys.
type KeySet uint32

func (s KeySet) Has(k Key) bool { return s&(1<<k) != 0 }

func (s KeySet) With(k Key) KeySet { return s | 1<<k }

func (s KeySet) Without(k Key) KeySet { return s &^ (1 << k) }

// InputEvents is one frame's worth of input delivered by the window.
type InputEvents struct {
	// Held is the set of keys down at the end of the frame.
	Held KeySet
	// Pressed is the set of keys that went down during the frame.
	Pressed KeySet

	CursorMoved bool
	CursorX     float64
	CursorY     float64

	Scrolled bool
	ScrollY  float64

	Resized bool
	Width   int
	Height  int
}
