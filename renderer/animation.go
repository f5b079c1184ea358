package renderer

const (
	AnimationStep  = 0.001
	AnimationLimit = 0.9
)

// Background green, blue and alpha. Red comes from the animation.
const (
	clearGreen = 0.3
	clearBlue  = 0.3
	clearAlpha = 1.0
)

// Animation is the background pulse. The zero value is the first state.
type Animation struct {
	value float32
}

// Advance returns the next state: value+step, or exactly zero once that
// exceeds the limit.
func (a Animation) Advance() Animation {
	v := a.value + AnimationStep
	if v > AnimationLimit {
		v = 0
	}
	return Animation{value: v}
}

func (a Animation) Value() float32 {
	return a.value
}

// ClearColor is the RGBA the framebuffer is cleared to for this state.
func (a Animation) ClearColor() [4]float32 {
	return [4]float32{a.value, clearGreen, clearBlue, clearAlpha}
}
