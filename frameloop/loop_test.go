package frameloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/richinsley/goflower/graphics"
	"github.com/richinsley/goflower/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordingScene struct {
	frames []renderer.Animation
}

func (s *recordingScene) RenderFrame(anim renderer.Animation) {
	s.frames = append(s.frames, anim)
}

// fakeHost closes after closeAfter presented frames. Zero never closes.
type fakeHost struct {
	closeAfter int
	presented  int
	polls      int
	waits      int
	wakeups    chan struct{}
}

var (
	_ graphics.Context = (*fakeHost)(nil)
	_ EventHost        = (*fakeHost)(nil)
)

func (h *fakeHost) MakeCurrent()                   {}
func (h *fakeHost) Shutdown()                      {}
func (h *fakeHost) GetFramebufferSize() (int, int) { return 800, 600 }
func (h *fakeHost) IsGLES() bool                   { return true }

func (h *fakeHost) ShouldClose() bool {
	return h.closeAfter > 0 && h.presented >= h.closeAfter
}

func (h *fakeHost) EndFrame() {
	h.presented++
	h.polls++
}

func (h *fakeHost) SwapBuffers() { h.presented++ }

func (h *fakeHost) WaitEvents() {
	h.waits++
	if h.wakeups != nil {
		<-h.wakeups
	}
}

func (h *fakeHost) PostEmptyEvent() {
	if h.wakeups != nil {
		h.wakeups <- struct{}{}
	}
}

func TestLoopStates(t *testing.T) {
	scene := &recordingScene{}
	l := New(scene, zaptest.NewLogger(t))
	assert.Equal(t, Closing, l.State())

	host := &fakeHost{closeAfter: 3}
	var during State
	l.AfterFrame = func(renderer.Animation) { during = l.State() }

	require.NoError(t, l.Run(context.Background(), &Continuous{Host: host}))

	assert.Equal(t, Running, during)
	assert.Equal(t, Closing, l.State())
	assert.Equal(t, 3, l.Frames())
	assert.Equal(t, 3, host.presented)
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "closing", Closing.String())
}

func TestLoopThreadsAnimation(t *testing.T) {
	scene := &recordingScene{}
	l := New(scene, nil)

	require.NoError(t, l.Run(context.Background(), &Continuous{Host: &fakeHost{}, MaxFrames: 1000}))
	require.Len(t, scene.frames, 1000)

	want := renderer.Animation{}
	for i, got := range scene.frames {
		want = want.Advance()
		require.Equal(t, want, got, "frame %d", i)
	}
	assert.Equal(t, want, l.Animation())
	// first frame already advanced once
	assert.InDelta(t, 0.001, scene.frames[0].Value(), 1e-7)
}

func TestContinuousStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	scene := &recordingScene{}
	l := New(scene, nil)
	l.AfterFrame = func(renderer.Animation) {
		if l.Frames() == 4 {
			cancel()
		}
	}

	require.NoError(t, l.Run(ctx, &Continuous{Host: &fakeHost{}}))
	assert.Len(t, scene.frames, 5)
}

func TestContinuousClosedBeforeFirstFrame(t *testing.T) {
	host := &fakeHost{closeAfter: 1, presented: 1}
	scene := &recordingScene{}
	require.NoError(t, New(scene, nil).Run(context.Background(), &Continuous{Host: host}))
	assert.Empty(t, scene.frames)
}

func TestOnEventDrawsOncePerWake(t *testing.T) {
	host := &fakeHost{closeAfter: 2}
	scene := &recordingScene{}

	require.NoError(t, New(scene, nil).Run(context.Background(), &OnEvent{Host: host}))

	// two frames, then the third wake sees the close request
	assert.Len(t, scene.frames, 2)
	assert.Equal(t, 3, host.waits)
	assert.Zero(t, host.polls)
}

func TestOnEventMaxFrames(t *testing.T) {
	host := &fakeHost{}
	scene := &recordingScene{}
	require.NoError(t, New(scene, nil).Run(context.Background(), &OnEvent{Host: host, MaxFrames: 7}))
	assert.Len(t, scene.frames, 7)
}

func TestOnEventWakesOnCancel(t *testing.T) {
	host := &fakeHost{wakeups: make(chan struct{})}
	scene := &recordingScene{}
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		errc <- New(scene, nil).Run(ctx, &OnEvent{Host: host})
	}()
	cancel()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	assert.Empty(t, scene.frames)
}

// closingHost reports a close request on its first wake while cancelling the
// context at the same moment, and counts wake-ups posted after Drive returned.
type closingHost struct {
	cancel   context.CancelFunc
	returned atomic.Bool
	late     atomic.Int32
}

func (h *closingHost) ShouldClose() bool { return true }
func (h *closingHost) SwapBuffers()      {}
func (h *closingHost) WaitEvents()       { h.cancel() }

func (h *closingHost) PostEmptyEvent() {
	if h.returned.Load() {
		h.late.Add(1)
	}
}

func TestOnEventNoWakeAfterReturn(t *testing.T) {
	hosts := make([]*closingHost, 500)
	for i := range hosts {
		ctx, cancel := context.WithCancel(context.Background())
		h := &closingHost{cancel: cancel}
		hosts[i] = h

		require.NoError(t, New(&recordingScene{}, nil).Run(ctx, &OnEvent{Host: h}))
		h.returned.Store(true)
	}

	// give any stray goroutine time to run
	time.Sleep(50 * time.Millisecond)
	for i, h := range hosts {
		assert.Zero(t, h.late.Load(), "run %d", i)
	}
}

func TestCompleted(t *testing.T) {
	l := New(&recordingScene{}, nil)
	require.NoError(t, l.Run(context.Background(), &Continuous{Host: &fakeHost{}, MaxFrames: 5}))
	assert.NoError(t, l.Completed(5))

	ctx, cancel := context.WithCancel(context.Background())
	l = New(&recordingScene{}, nil)
	l.AfterFrame = func(renderer.Animation) {
		if l.Frames() == 1 {
			cancel()
		}
	}
	require.NoError(t, l.Run(ctx, &Continuous{Host: &fakeHost{}, MaxFrames: 5}))
	assert.Equal(t, 2, l.Frames())

	err := l.Completed(5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "2 of 5")
}
