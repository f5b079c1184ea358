package renderer

import (
	"errors"
	"fmt"

	"github.com/richinsley/goflower/geometry"
	"go.uber.org/zap"
)

// pixelTolerance is the largest per-channel difference, in 8-bit units,
// accepted between an expected color and the framebuffer.
const pixelTolerance = 3

// backgroundProbe is a point in normalized device coordinates that no
// triangle covers.
var backgroundProbe = [2]float32{0.95, 0.95}

// Verify reads back the current framebuffer and checks the background against
// anim's clear color and each triangle's centroid against its vertex color.
// It must run after RenderFrame(anim) and before the frame is presented.
func (r *Renderer) Verify(anim Animation) error {
	var errs []error

	c := anim.ClearColor()
	x, y := geometry.PixelAt(backgroundProbe[0], backgroundProbe[1], r.width, r.height)
	if err := r.probe("background", x, y, [3]float32{c[0], c[1], c[2]}); err != nil {
		errs = append(errs, err)
	}

	for i, tri := range geometry.Triangles() {
		cx, cy := tri.Centroid()
		x, y := geometry.PixelAt(cx, cy, r.width, r.height)
		if err := r.probe(fmt.Sprintf("triangle %d", i), x, y, tri.Color); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Renderer) probe(what string, x, y int32, want [3]float32) error {
	got := r.gl.ReadPixel(x, y)
	r.log.Debug("probe",
		zap.String("target", what),
		zap.Int32("x", x),
		zap.Int32("y", y),
		zap.Uint8s("rgba", got[:]),
	)
	for ch := 0; ch < 3; ch++ {
		expect := int(want[ch]*255 + 0.5)
		diff := int(got[ch]) - expect
		if diff < -pixelTolerance || diff > pixelTolerance {
			return fmt.Errorf("%s at (%d,%d): got rgb(%d,%d,%d), want rgb(%d,%d,%d)",
				what, x, y, got[0], got[1], got[2],
				int(want[0]*255+0.5), int(want[1]*255+0.5), int(want[2]*255+0.5))
		}
	}
	return nil
}
