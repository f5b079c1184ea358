//go:build !js

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/richinsley/goflower/frameloop"
	"github.com/richinsley/goflower/glbinding/glcore"
	"github.com/richinsley/goflower/glbinding/gles"
	"github.com/richinsley/goflower/glfwcontext"
	"github.com/richinsley/goflower/graphics"
	"github.com/richinsley/goflower/headless"
	"github.com/richinsley/goflower/logger"
	"github.com/richinsley/goflower/options"
	"github.com/richinsley/goflower/renderer"
	"github.com/richinsley/goflower/shader"
	"github.com/richinsley/goflower/translator"
	"go.uber.org/zap"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := options.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *opts.Help {
		fmt.Println("Six triangle flower")
		flag.PrintDefaults()
		return
	}

	log, err := logger.New(logger.Config{LogLevel: *opts.LogLevel, Encoding: *opts.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *opts.Check {
		err = checkShaders(ctx, log)
	} else {
		err = runFlower(ctx, opts, log)
	}
	if err != nil {
		var ce *shader.CompileError
		var le *shader.LinkError
		switch {
		case errors.As(err, &ce):
			log.Fatal("Shader compilation failed", zap.Stringer("stage", ce.Stage), zap.String("log", ce.Log))
		case errors.As(err, &le):
			log.Fatal("Program link failed", zap.String("log", le.Log))
		default:
			log.Fatal("Flower failed", zap.Error(err))
		}
	}
}

func checkShaders(ctx context.Context, log *zap.Logger) error {
	tr, err := translator.New(ctx)
	if err != nil {
		return err
	}
	if err := tr.Check(); err != nil {
		return err
	}
	log.Info("Shaders translated successfully")
	return nil
}

func runFlower(ctx context.Context, opts *options.FlowerOptions, log *zap.Logger) error {
	var host graphics.Context
	var driver frameloop.Driver

	if *opts.Headless {
		h, err := headless.NewHeadless(*opts.Width, *opts.Height, log)
		if err != nil {
			return fmt.Errorf("failed to create headless context: %w", err)
		}
		host = h
		driver = &frameloop.Continuous{Host: h, MaxFrames: *opts.Frames}
	} else {
		if err := glfwcontext.InitGraphics(log); err != nil {
			return fmt.Errorf("failed to initialize glfw: %w", err)
		}
		defer glfwcontext.TerminateGraphics(log)

		win, err := glfwcontext.New(opts, log)
		if err != nil {
			return fmt.Errorf("failed to initialize glfw context: %w", err)
		}
		host = win
		if *opts.Redraw == options.RedrawEvents {
			driver = &frameloop.OnEvent{Host: win, MaxFrames: *opts.Frames}
		} else {
			driver = &frameloop.Continuous{Host: win, MaxFrames: *opts.Frames}
		}
	}
	defer host.Shutdown()

	host.MakeCurrent()

	var gl graphics.GL
	var tr renderer.SourceTranslator
	if host.IsGLES() {
		b, err := gles.New()
		if err != nil {
			return err
		}
		gl = b
	} else {
		b, err := glcore.New()
		if err != nil {
			return err
		}
		gl = b
		t, err := translator.New(ctx)
		if err != nil {
			return err
		}
		tr = t
	}

	width, height := host.GetFramebufferSize()
	r := renderer.NewRenderer(gl, log, tr, width, height)
	if err := r.InitScene(); err != nil {
		return err
	}
	defer r.Shutdown()

	loop := frameloop.New(r, log)
	var verifyErr error
	if *opts.Verify {
		loop.AfterFrame = func(anim renderer.Animation) {
			if loop.Frames()+1 == *opts.Frames {
				verifyErr = r.Verify(anim)
				if verifyErr == nil {
					log.Info("Frame verified", zap.Float32("red", anim.Value()))
				}
			}
		}
	}

	if err := loop.Run(ctx, driver); err != nil {
		return err
	}
	if *opts.Verify {
		if err := loop.Completed(*opts.Frames); err != nil {
			return fmt.Errorf("verification skipped: %w", err)
		}
	}
	return verifyErr
}
