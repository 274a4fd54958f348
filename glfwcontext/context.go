package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/revenant/graphics"
	options "github.com/richinsley/revenant/options"
)

var keyMap = map[glfw.Key]graphics.Key{
	glfw.KeyW:           graphics.KeyW,
	glfw.KeyA:           graphics.KeyA,
	glfw.KeyS:           graphics.KeyS,
	glfw.KeyD:           graphics.KeyD,
	glfw.KeySpace:       graphics.KeySpace,
	glfw.KeyLeftControl: graphics.KeyLeftControl,
	glfw.KeyP:           graphics.KeyP,
	glfw.KeyEscape:      graphics.KeyEscape,
}

// Context is a GLFW window with its GL context. Window callbacks accumulate
// into a pending InputEvents that Input hands out once per frame.
type Context struct {
	window  *glfw.Window
	pending graphics.InputEvents
}

var _ graphics.Context = (*Context)(nil)

// New creates the window, makes its context current and captures the
// cursor. InitGraphics must have been called on this thread.
func New(opts *options.ViewerOptions) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, "revenant", nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()

	if *opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	c := &Context{window: win}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetScrollCallback(c.glfwScrollCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	w, h := win.GetFramebufferSize()
	log.Printf("Created %dx%d window (framebuffer %dx%d)", *opts.Width, *opts.Height, w, h)
	return c, nil
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	k, ok := keyMap[key]
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		c.pending.Pressed = c.pending.Pressed.With(k)
		c.pending.Held = c.pending.Held.With(k)
	case glfw.Release:
		c.pending.Held = c.pending.Held.Without(k)
	}
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, x, y float64) {
	c.pending.CursorMoved = true
	c.pending.CursorX, c.pending.CursorY = x, y
}

func (c *Context) glfwScrollCallback(w *glfw.Window, xoff, yoff float64) {
	c.pending.Scrolled = true
	c.pending.ScrollY += yoff
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	c.pending.Resized = true
	c.pending.Width, c.pending.Height = width, height
}

// Input returns the events gathered since the last call. Held keys carry
// over; everything else is reset.
func (c *Context) Input() graphics.InputEvents {
	ev := c.pending
	c.pending = graphics.InputEvents{Held: ev.Held}
	return ev
}

func (c *Context) IsGLES() bool {
	// GLFW does not provide a direct way to check if the context is GLES.
	return false
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

// EndFrame presents the frame and polls events, which fires the callbacks
// that fill the next Input.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
