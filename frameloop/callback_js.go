//go:build js && wasm

package frameloop

import (
	"context"
	"syscall/js"
)

// AnimationFrame schedules frames with window.requestAnimationFrame. The
// browser presents the canvas after each callback and decides the cadence.
type AnimationFrame struct{}

func (AnimationFrame) Drive(ctx context.Context, frame func()) error {
	var tick js.Func
	tick = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if ctx.Err() != nil {
			return nil
		}
		frame()
		js.Global().Call("requestAnimationFrame", tick)
		return nil
	})
	defer tick.Release()

	js.Global().Call("requestAnimationFrame", tick)
	<-ctx.Done()
	return nil
}
