package graphics

// Context defines the interface for a window or surface that owns a GL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	IsGLES() bool
}
