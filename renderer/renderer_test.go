package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/richinsley/goflower/geometry"
	"github.com/richinsley/goflower/graphics"
	"github.com/richinsley/goflower/graphics/fakegl"
	"github.com/richinsley/goflower/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type prefixTranslator struct {
	fail   shader.Stage
	stages []shader.Stage
}

func (p *prefixTranslator) Translate(source string, stage shader.Stage) (string, error) {
	p.stages = append(p.stages, stage)
	if stage == p.fail {
		return "", &shader.CompileError{Stage: stage, Log: "translation failed"}
	}
	return strings.Replace(source, "#version 300 es", "#version 410 core", 1), nil
}

func newTestRenderer(t *testing.T, gl *fakegl.GL, tr SourceTranslator) (*Renderer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return NewRenderer(gl, zap.New(core), tr, 800, 600), logs
}

func TestInitScene(t *testing.T) {
	gl := fakegl.New()
	r, logs := newTestRenderer(t, gl, nil)

	require.NoError(t, r.InitScene())

	require.NotNil(t, r.program)
	require.NotNil(t, r.mesh)
	assert.Equal(t, r.program.ID, gl.BoundProgram)
	assert.True(t, gl.Programs[r.program.ID].Linked)
	assert.Equal(t, shader.VertexSource(), gl.Shaders[r.program.Vertex].Source)
	assert.Equal(t, shader.FragmentSource(), gl.Shaders[r.program.Fragment].Source)
	assert.Equal(t, geometry.Vertices(), gl.Buffers[r.mesh.VBO])

	assert.Equal(t, 1, logs.FilterMessage("Program linked").Len())
	assert.Equal(t, 1, logs.FilterMessage("Data uploaded").Len())
	assert.Equal(t, 2, logs.FilterMessage("attribute").Len())
}

func TestInitSceneTranslates(t *testing.T) {
	gl := fakegl.New()
	tr := &prefixTranslator{}
	r, _ := newTestRenderer(t, gl, tr)

	require.NoError(t, r.InitScene())
	assert.Equal(t, []shader.Stage{shader.Vertex, shader.Fragment}, tr.stages)
	assert.True(t, strings.HasPrefix(gl.Shaders[r.program.Vertex].Source, "#version 410 core"))
}

func TestAttributeLogQueriesOnlyUntranslatedPrograms(t *testing.T) {
	gl := fakegl.New()
	r, logs := newTestRenderer(t, gl, nil)
	require.NoError(t, r.InitScene())

	entries := logs.FilterMessage("attribute").All()
	require.Len(t, entries, 2)
	for i, e := range entries {
		fields := e.ContextMap()
		assert.Equal(t, geometry.Layout[i].Name, fields["name"])
		assert.EqualValues(t, geometry.Layout[i].Location, fields["reported"])
	}
	assert.Contains(t, gl.CallNames(), "GetAttribLocation")

	gl = fakegl.New()
	r, logs = newTestRenderer(t, gl, &prefixTranslator{})
	require.NoError(t, r.InitScene())

	entries = logs.FilterMessage("attribute").All()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotContains(t, e.ContextMap(), "reported")
		assert.Contains(t, e.ContextMap(), "layout")
	}
	assert.NotContains(t, gl.CallNames(), "GetAttribLocation")
}

func TestInitSceneTranslationFailure(t *testing.T) {
	gl := fakegl.New()
	r, _ := newTestRenderer(t, gl, &prefixTranslator{fail: shader.Fragment})

	err := r.InitScene()
	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, shader.Fragment, ce.Stage)
	assert.Empty(t, gl.Shaders)
}

func TestInitSceneCompileFailure(t *testing.T) {
	gl := fakegl.New()
	gl.FailCompile = "out_color"
	gl.CompileLog = "0:4: 'out_color' : syntax error"
	r, _ := newTestRenderer(t, gl, nil)

	err := r.InitScene()
	var ce *shader.CompileError
	require.True(t, errors.As(err, &ce))
	assert.NotEmpty(t, ce.Log)
	assert.Nil(t, r.mesh)
}

func TestRenderFrame(t *testing.T) {
	gl := fakegl.New()
	r, _ := newTestRenderer(t, gl, nil)
	require.NoError(t, r.InitScene())

	gl.Calls = nil
	r.RenderFrame(Animation{value: 0.25})

	assert.Equal(t, []string{"ClearColor", "Clear", "BindVertexArray", "DrawArrays"}, gl.CallNames())
	assert.Equal(t, [4]float32{0.25, 0.3, 0.3, 1}, gl.ClearRGBA)
	assert.Equal(t, [3]int32{graphics.TRIANGLES, 0, 18}, gl.LastDraw)
}

func TestShutdownReleasesEverything(t *testing.T) {
	gl := fakegl.New()
	r, _ := newTestRenderer(t, gl, nil)
	require.NoError(t, r.InitScene())

	gl.Calls = nil
	r.Shutdown()
	assert.Equal(t, []string{"DeleteProgram", "DeleteShader", "DeleteShader", "DeleteBuffer", "DeleteVertexArray"}, gl.CallNames())

	// a second call is a no-op
	gl.Calls = nil
	r.Shutdown()
	assert.Empty(t, gl.Calls)
}

func TestVerify(t *testing.T) {
	gl := fakegl.New()
	r, _ := newTestRenderer(t, gl, nil)
	require.NoError(t, r.InitScene())

	anim := Animation{value: 0.4}
	r.RenderFrame(anim)

	gl.Pixel = framebufferFor(r, anim)

	assert.NoError(t, r.Verify(anim))
}

func TestVerifyReportsMismatch(t *testing.T) {
	gl := fakegl.New()
	r, _ := newTestRenderer(t, gl, nil)
	require.NoError(t, r.InitScene())

	anim := Animation{value: 0.4}
	r.RenderFrame(anim)
	// only the clear color, no triangles drawn
	err := r.Verify(anim)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triangle 0")
	assert.NotContains(t, err.Error(), "background")
}

func TestVerifyTolerance(t *testing.T) {
	gl := fakegl.New()
	r, _ := newTestRenderer(t, gl, nil)
	require.NoError(t, r.InitScene())

	anim := Animation{value: 0.4}
	r.RenderFrame(anim)
	exact := framebufferFor(r, anim)

	// every channel used by the flower stays within [4, 251] after rounding
	shifted := func(delta int) func(x, y int32) [4]uint8 {
		return func(x, y int32) [4]uint8 {
			px := exact(x, y)
			for i := 0; i < 3; i++ {
				if px[i] >= 128 {
					px[i] = uint8(int(px[i]) - delta)
				} else {
					px[i] = uint8(int(px[i]) + delta)
				}
			}
			return px
		}
	}

	gl.Pixel = shifted(pixelTolerance)
	assert.NoError(t, r.Verify(anim))

	gl.Pixel = shifted(pixelTolerance + 1)
	assert.Error(t, r.Verify(anim))
}

// framebufferFor returns a pixel source that shows the expected image at the
// probe points.
func framebufferFor(r *Renderer, anim Animation) func(x, y int32) [4]uint8 {
	pixels := map[[2]int32][4]uint8{}
	for _, tri := range geometry.Triangles() {
		cx, cy := tri.Centroid()
		x, y := geometry.PixelAt(cx, cy, r.width, r.height)
		pixels[[2]int32{x, y}] = rgba8(tri.Color[0], tri.Color[1], tri.Color[2])
	}
	c := anim.ClearColor()
	bg := rgba8(c[0], c[1], c[2])
	return func(x, y int32) [4]uint8 {
		if px, ok := pixels[[2]int32{x, y}]; ok {
			return px
		}
		return bg
	}
}

func rgba8(r, g, b float32) [4]uint8 {
	return [4]uint8{uint8(r*255 + 0.5), uint8(g*255 + 0.5), uint8(b*255 + 0.5), 255}
}
