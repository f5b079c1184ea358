package frameloop

import (
	"context"

	"github.com/richinsley/goflower/graphics"
)

// Continuous draws a frame on every iteration and lets the host poll events
// in between. Presentation is throttled by the host's swap interval.
// MaxFrames stops the loop after that many frames; zero means no limit.
type Continuous struct {
	Host      graphics.Context
	MaxFrames int
}

// Drive draws and presents frames until the host closes, ctx is done or the
// frame budget runs out.
func (c *Continuous) Drive(ctx context.Context, frame func()) error {
	for n := 0; c.MaxFrames == 0 || n < c.MaxFrames; n++ {
		if c.Host.ShouldClose() || ctx.Err() != nil {
			return nil
		}
		frame()
		c.Host.EndFrame()
	}
	return nil
}

// EventHost is a window that can block for input events.
type EventHost interface {
	ShouldClose() bool
	SwapBuffers()
	WaitEvents()
	PostEmptyEvent()
}

// OnEvent blocks until the window receives an event and then draws a single
// frame, so the animation only advances while events arrive. The close event
// ends the loop without drawing.
type OnEvent struct {
	Host      EventHost
	MaxFrames int
}

// Drive draws one frame per wake-up from WaitEvents. Cancelling ctx posts an
// empty event so a blocked wait returns; the host is never touched after Drive
// returns.
func (e *OnEvent) Drive(ctx context.Context, frame func()) error {
	done := make(chan struct{})
	exited := make(chan struct{})
	defer func() {
		close(done)
		<-exited
	}()
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			e.Host.PostEmptyEvent()
		case <-done:
		}
	}()

	for n := 0; e.MaxFrames == 0 || n < e.MaxFrames; n++ {
		e.Host.WaitEvents()
		if e.Host.ShouldClose() || ctx.Err() != nil {
			return nil
		}
		frame()
		e.Host.SwapBuffers()
	}
	return nil
}
