package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/richinsley/goflower/graphics"
	"github.com/richinsley/goflower/graphics/fakegl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSuccess(t *testing.T) {
	gl := fakegl.New()

	vs, err := Compile(gl, VertexSource(), Vertex)
	require.NoError(t, err)
	require.NotZero(t, vs)

	s := gl.Shaders[vs]
	assert.Equal(t, uint32(graphics.VERTEX_SHADER), s.Type)
	assert.Equal(t, VertexSource(), s.Source)
	assert.True(t, s.Compiled)
}

func TestCompileFailureCarriesDiagnostic(t *testing.T) {
	gl := fakegl.New()
	gl.FailCompile = "bogus"
	gl.CompileLog = "0:1: S0001: syntax error near 'bogus'"

	_, err := Compile(gl, "#version 300 es\nbogus", Fragment)
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Fragment, ce.Stage)
	assert.Equal(t, gl.CompileLog, ce.Log)
	assert.Contains(t, err.Error(), "fragment")
	assert.Contains(t, gl.CallNames(), "GetShaderInfoLog")
}

func TestCompileFailureWithEmptyLog(t *testing.T) {
	gl := fakegl.New()
	gl.FailCompile = "bogus"

	_, err := Compile(gl, "bogus", Vertex)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.NotEmpty(t, ce.Log)
}

func TestLinkFailure(t *testing.T) {
	gl := fakegl.New()
	gl.FailLink = true
	gl.LinkLog = "error: varying 'color' not written\n"

	_, err := NewProgram(gl, VertexSource(), FragmentSource())

	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "error: varying 'color' not written", le.Log)
	// Nothing is released on the failure path.
	assert.NotContains(t, gl.CallNames(), "DeleteShader")
	assert.NotContains(t, gl.CallNames(), "DeleteProgram")
}

func TestNewProgramStopsAtFirstCompileError(t *testing.T) {
	gl := fakegl.New()
	gl.FailCompile = "gl_Position"
	gl.CompileLog = "bad vertex"

	_, err := NewProgram(gl, VertexSource(), FragmentSource())

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Vertex, ce.Stage)
	assert.Len(t, gl.Shaders, 1)
	assert.Empty(t, gl.Programs)
}

func TestProgramDelete(t *testing.T) {
	gl := fakegl.New()

	p, err := NewProgram(gl, VertexSource(), FragmentSource())
	require.NoError(t, err)
	assert.Equal(t, []uint32{p.Vertex, p.Fragment}, gl.Programs[p.ID].Attached)
	assert.False(t, gl.Shaders[p.Vertex].Deleted)

	gl.Calls = nil
	p.Delete(gl)

	assert.Equal(t, []string{"DeleteProgram", "DeleteShader", "DeleteShader"}, gl.CallNames())
	assert.True(t, gl.Programs[p.ID].Deleted)
	assert.True(t, gl.Shaders[p.Vertex].Deleted)
	assert.True(t, gl.Shaders[p.Fragment].Deleted)
}

func TestSourcesDeclareFixedLocations(t *testing.T) {
	vs := VertexSource()
	assert.True(t, strings.HasPrefix(vs, "#version 300 es"))
	assert.Contains(t, vs, "layout (location = 0) in vec2 position;")
	assert.Contains(t, vs, "layout (location = 1) in vec3 aColor;")
	assert.Contains(t, vs, "gl_Position = vec4(position, 0.0, 1.0);")
	assert.Contains(t, FragmentSource(), "out_color = vec4(color, 1.0);")

	assert.Equal(t, vs, Source(Vertex))
	assert.Equal(t, FragmentSource(), Source(Fragment))
	assert.Equal(t, "vertex", Vertex.String())
	assert.Equal(t, "unknown", Stage(0).String())
}
