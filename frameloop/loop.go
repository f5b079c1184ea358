// Package frameloop runs the per-frame update and hands frame scheduling to a
// Driver chosen for the host: a native event loop, a fixed frame budget, or a
// browser animation-frame callback.
package frameloop

import (
	"context"
	"errors"
	"fmt"

	"github.com/richinsley/goflower/renderer"
	"go.uber.org/zap"
)

// ErrIncomplete is returned by Completed when a run stopped early.
var ErrIncomplete = errors.New("frame loop stopped early")

// State is the loop's lifecycle state.
type State int

const (
	Running State = iota
	Closing
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Closing:
		return "closing"
	}
	return "unknown"
}

// Driver decides when frames happen. Drive calls frame once per frame and
// presents the result, and returns when the host asks to close or ctx is done.
type Driver interface {
	Drive(ctx context.Context, frame func()) error
}

// Scene is what the loop draws each frame.
type Scene interface {
	RenderFrame(anim renderer.Animation)
}

// Loop owns the animation state and threads it through every frame.
type Loop struct {
	scene  Scene
	log    *zap.Logger
	anim   renderer.Animation
	state  State
	frames int
	// AfterFrame, when set, runs after the scene is drawn and before the
	// driver presents the frame.
	AfterFrame func(anim renderer.Animation)
}

func New(scene Scene, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{scene: scene, log: log, state: Closing}
}

// Run enters Running and drives frames until the driver returns, then moves
// to Closing.
func (l *Loop) Run(ctx context.Context, d Driver) error {
	l.state = Running
	l.log.Info("frame loop started")
	err := d.Drive(ctx, l.step)
	l.state = Closing
	l.log.Info("frame loop stopped", zap.Int("frames", l.frames), zap.Error(err))
	return err
}

func (l *Loop) step() {
	l.anim = l.anim.Advance()
	l.scene.RenderFrame(l.anim)
	if l.AfterFrame != nil {
		l.AfterFrame(l.anim)
	}
	l.frames++
}

// Completed reports an error when the last Run drew fewer than want frames,
// for example because it was cancelled early.
func (l *Loop) Completed(want int) error {
	if l.frames < want {
		return fmt.Errorf("%w: drew %d of %d frames", ErrIncomplete, l.frames, want)
	}
	return nil
}

func (l *Loop) State() State                  { return l.state }
func (l *Loop) Frames() int                   { return l.frames }
func (l *Loop) Animation() renderer.Animation { return l.anim }
