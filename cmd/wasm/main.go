//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"github.com/richinsley/goflower/frameloop"
	"github.com/richinsley/goflower/glbinding/webgl"
	"github.com/richinsley/goflower/logger"
	"github.com/richinsley/goflower/options"
	"github.com/richinsley/goflower/renderer"
	"go.uber.org/zap"
)

const (
	canvasID     = "flower"
	canvasWidth  = 800
	canvasHeight = 600
)

func main() {
	log, err := logger.New(logger.Config{LogLevel: "info", Encoding: "json"})
	if err != nil {
		panic(err)
	}

	document := js.Global().Get("document")
	document.Set("title", options.DefaultTitle)
	canvas := document.Call("getElementById", canvasID)
	if canvas.IsNull() {
		canvas = document.Call("createElement", "canvas")
		canvas.Set("id", canvasID)
		document.Get("body").Call("appendChild", canvas)
	}
	canvas.Set("width", canvasWidth)
	canvas.Set("height", canvasHeight)

	gl, err := webgl.New(canvas.Call("getContext", "webgl2"))
	if err != nil {
		log.Fatal("Failed to create WebGL 2.0 context", zap.Error(err))
	}

	r := renderer.NewRenderer(gl, log, nil, canvasWidth, canvasHeight)
	if err := r.InitScene(); err != nil {
		log.Fatal("Failed to initialize scene", zap.Error(err))
	}

	// The browser owns the page lifetime, so the loop never returns and no
	// teardown runs.
	loop := frameloop.New(r, log)
	if err := loop.Run(context.Background(), frameloop.AnimationFrame{}); err != nil {
		log.Error("Frame loop failed", zap.Error(err))
	}
}
