//go:build !js

package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goflower/options"
	"go.uber.org/zap"
)

// Context is a GLFW window with its GL context.
type Context struct {
	window *glfw.Window
	gles   bool
}

// New creates the window. With an "es" API it requests an OpenGL ES 3.0
// context, otherwise a forward-compatible 4.1 core profile. The window has a
// fixed size.
func New(opts *options.FlowerOptions, log *zap.Logger) (*Context, error) {
	glfw.DefaultWindowHints()
	gles := *opts.API == options.APIES
	if gles {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 0)
	} else {
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, *opts.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	log.Info("window created",
		zap.Int("width", *opts.Width),
		zap.Int("height", *opts.Height),
		zap.String("api", *opts.API),
	)

	return &Context{window: win, gles: gles}, nil
}

func (c *Context) IsGLES() bool {
	return c.gles
}

// MakeCurrent makes the context current for the calling goroutine and turns
// on vsync.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
	glfw.SwapInterval(1)
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

// WaitEvents blocks until at least one event is processed.
func (c *Context) WaitEvents() {
	glfw.WaitEvents()
}

// PostEmptyEvent wakes a blocked WaitEvents. It may be called from any goroutine.
func (c *Context) PostEmptyEvent() {
	glfw.PostEmptyEvent()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics(log *zap.Logger) error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Info("GLFW Initialized", zap.String("version", glfw.GetVersionString()))
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics(log *zap.Logger) {
	glfw.Terminate()
	log.Info("GLFW Terminated")
}
